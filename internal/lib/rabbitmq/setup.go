package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// Ключи маршрутизации событий портала.
const (
	RoutingSubscriptionCreated       = "subscription.created"
	RoutingSubscriptionFailed        = "subscription.failed"
	RoutingSubscriptionStatusUpdated = "subscription.status_updated"
	RoutingRequestCreated            = "request.created"
	RoutingRequestUpdated            = "request.updated"
)

type QueueConfig struct {
	QueueName   string
	RoutingKeys []string
}

// PortalQueues возвращает очереди, которые читают воркеры уведомлений.
func PortalQueues() []QueueConfig {
	return []QueueConfig{
		{
			QueueName: "portal.subscriptions",
			RoutingKeys: []string{
				RoutingSubscriptionCreated,
				RoutingSubscriptionFailed,
				RoutingSubscriptionStatusUpdated,
			},
		},
		{
			QueueName:   "portal.requests",
			RoutingKeys: []string{RoutingRequestCreated, RoutingRequestUpdated},
		},
	}
}

// SetupChannel открывает канал, объявляет durable direct-обменник и привязывает к нему очереди.
func SetupChannel(conn *amqp.Connection, exchange string, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	fail := func(err error) (*amqp.Channel, error) {
		_ = ch.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = ch.ExchangeDeclare(exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return fail(err)
	}
	for _, q := range queues {
		if _, err = ch.QueueDeclare(q.QueueName, true, false, false, false, nil); err != nil {
			return fail(fmt.Errorf("declare queue %s: %w", q.QueueName, err))
		}
		for _, key := range q.RoutingKeys {
			if err = ch.QueueBind(q.QueueName, key, exchange, false, nil); err != nil {
				return fail(fmt.Errorf("bind queue %s to %s: %w", q.QueueName, key, err))
			}
		}
	}
	return ch, nil
}
