// Package notify доставляет уведомления об успехе и ошибках операций портала.
//
// Уведомление всегда пишется в лог; при настроенном брокере оно дополнительно
// публикуется в RabbitMQ с ключом маршрутизации, равным Event.Kind.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/deuxal/insurance-portal/internal/lib/rabbitmq"
	"github.com/deuxal/insurance-portal/internal/lib/sl"
)

const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelInfo    = "info"
)

// Event - одно уведомление пользователю.
type Event struct {
	Kind     string         `json:"kind"`
	Level    string         `json:"level"`
	UserID   string         `json:"user_id,omitempty"`
	Message  string         `json:"message"`
	Data     map[string]any `json:"data,omitempty"`
	IssuedAt time.Time      `json:"issued_at"`
}

// Notifier доставляет события. Ошибка доставки не влияет на исход операции.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// LogNotifier пишет события в лог.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, ev Event) error {
	level := slog.LevelInfo
	if ev.Level == LevelError {
		level = slog.LevelWarn
	}
	n.log.LogAttrs(ctx, level, "notification",
		slog.String("kind", ev.Kind),
		slog.String("level", ev.Level),
		sl.UserID(ev.UserID),
		slog.String("message", ev.Message),
	)
	return nil
}

// BrokerNotifier публикует события в обменник и дублирует их в лог.
type BrokerNotifier struct {
	ch       *amqp.Channel
	exchange string
	logger   *LogNotifier
	log      *slog.Logger
}

func NewBrokerNotifier(ch *amqp.Channel, exchange string, log *slog.Logger) *BrokerNotifier {
	return &BrokerNotifier{
		ch:       ch,
		exchange: exchange,
		logger:   NewLogNotifier(log),
		log:      log,
	}
}

func (n *BrokerNotifier) Notify(ctx context.Context, ev Event) error {
	_ = n.logger.Notify(ctx, ev)
	if ev.IssuedAt.IsZero() {
		ev.IssuedAt = time.Now().UTC()
	}
	if err := rabbitmq.PublishMessage(n.ch, n.exchange, ev.Kind, ev); err != nil {
		n.log.Error("failed to publish notification", slog.String("kind", ev.Kind), sl.Err(err))
		return err
	}
	return nil
}

// Success и Failure собирают события с соответствующим уровнем.
func Success(kind, userID, message string) Event {
	return Event{Kind: kind, Level: LevelSuccess, UserID: userID, Message: message, IssuedAt: time.Now().UTC()}
}

func Failure(kind, userID, message string) Event {
	return Event{Kind: kind, Level: LevelError, UserID: userID, Message: message, IssuedAt: time.Now().UTC()}
}
