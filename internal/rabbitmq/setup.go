// Package rabbitmq публикует события, требующие ручной сверки профилей:
// частично выполненную регистрацию и неразрешённую гонку записи.
package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

const (
	// RoutingKeyPartialSignup: пользователь создан у провайдера, профиль не сохранён.
	RoutingKeyPartialSignup = "signup.partial_failure"
	// RoutingKeyRaceEscalated: повторная запись после гонки не удалась.
	RoutingKeyRaceEscalated = "profile.race_escalated"
)

// QueueConfig связывает очередь с ключом маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetReconciliationQueues возвращает очереди для событий ручной сверки.
func GetReconciliationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "profiles.reconciliation", RoutingKey: RoutingKeyPartialSignup},
		{QueueName: "profiles.reconciliation", RoutingKey: RoutingKeyRaceEscalated},
	}
}

// SetupChannel открывает канал, объявляет exchange и привязывает очереди.
func SetupChannel(conn *amqp.Connection, exchange string, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, q := range queues {
		_, err := ch.QueueDeclare(
			q.QueueName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, q.QueueName, err)
		}

		err = ch.QueueBind(
			q.QueueName,
			q.RoutingKey,
			exchange,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to bind queue %s with routing key %s: %w", op, q.QueueName, q.RoutingKey, err)
		}
	}

	return ch, nil
}
