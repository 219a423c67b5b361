// Package config описывает настройки портала и загружает их из YAML-файла
// с переопределением через переменные окружения.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	HTTPServer              `yaml:"http_server"`
	GRPCServer              `yaml:"grpc_server"`
	RedisConnection         `yaml:"redis_connection"`
	JWTToken                `yaml:"jwttoken"`
	Backend                 `yaml:"backend"`
	RabbitMQ                `yaml:"rabbitmq"`
	Souscription            `yaml:"souscription"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// GRPCServer - адрес gRPC health-сервиса; пустой адрес отключает сервис.
type GRPCServer struct {
	AddressGRPC string `yaml:"addressgrpc" env:"GRPC_ADDRESS"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY" env-required:"true"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Backend - проект управляемого бэкенда, в хранилище которого лежат документы.
type Backend struct {
	URL    string `yaml:"url" env:"BACKEND_URL" env-required:"true"`
	APIKey string `yaml:"api_key" env:"BACKEND_API_KEY" env-required:"true"`
	Bucket string `yaml:"bucket" env-default:"documents"`
}

// RabbitMQ - брокер уведомлений. Пустой URL включает уведомления только в лог.
type RabbitMQ struct {
	URL      string `yaml:"url" env:"RABBITMQ_URL"`
	Exchange string `yaml:"exchange" env-default:"notifications"`
}

// Souscription - настройки мастера оформления.
type Souscription struct {
	DraftTTL        time.Duration `yaml:"draft_ttl" env-default:"24h"`
	MaxDocumentSize int64         `yaml:"max_document_size" env-default:"10485760"`
}

// Load читает .env (если он есть) и затем конфиг по указанному пути.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"
	_ = godotenv.Load()

	if configPath == "" {
		return nil, fmt.Errorf("%s: config path is empty", op)
	}
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и завершает процесс при ошибке.
func MustLoad() *Config {
	_ = godotenv.Load()
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// String печатает конфиг без секретов.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer: %s (timeout %s, idle %s)\n"+
			"GRPCServer: %s\n"+
			"Redis: %s db=%d\n"+
			"Backend: %s bucket=%s\n"+
			"RabbitMQ exchange: %s (enabled: %t)\n"+
			"Souscription: draft_ttl=%s max_document_size=%d\n"+
			"TokenTTL: %s\n",
		c.Env,
		c.AddressHTTP, c.TimeoutHTTP, c.IdleTimeout,
		c.AddressGRPC,
		c.AddressRedis, c.DB,
		c.Backend.URL, c.Bucket,
		c.Exchange, c.RabbitMQ.URL != "",
		c.DraftTTL, c.MaxDocumentSize,
		c.TokenTTL,
	)
}
