package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PurgeEvent asks the worker to drop every image blob attached to an article.
type PurgeEvent struct {
	ArticleID uint `json:"article_id"`
}

type PurgePublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewPurgePublisher(conn *amqp.Connection, queueName string) *PurgePublisher {
	return &PurgePublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *PurgePublisher) Publish(ctx context.Context, articleID uint) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	payload, err := json.Marshal(PurgeEvent{ArticleID: articleID})
	if err != nil {
		return fmt.Errorf("marshal purge event failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish purge event failed: %w", err)
	}
	return nil
}
