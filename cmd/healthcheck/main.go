// Команда healthcheck опрашивает gRPC health-сервис портала и завершается
// с кодом 1, если портал не готов. Используется как HEALTHCHECK контейнера.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/deuxal/insurance-portal/internal/grpc/client"
	"github.com/deuxal/insurance-portal/internal/grpc/server"
)

func main() {
	addr := flag.String("addr", envOr("GRPC_ADDRESS", "localhost:50051"), "адрес gRPC health-сервиса")
	service := flag.String("service", server.ServiceName, "имя проверяемого сервиса")
	timeout := flag.Duration("timeout", 3*time.Second, "таймаут проверки")
	flag.Parse()

	if err := check(*addr, *service, *timeout); err != nil {
		fmt.Fprintln(os.Stderr, "healthcheck:", err)
		os.Exit(1)
	}
	fmt.Println("ok")
}

func check(addr, service string, timeout time.Duration) error {
	c, err := client.NewHealthClient(addr)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return c.Check(ctx, service)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
