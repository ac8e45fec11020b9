package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"pressfeed/internal/imagestore"
	"pressfeed/internal/platform/rabbitmq"
)

// ImagePurgeWorker drains article-delete events and drops the orphaned
// image blobs. Delivery is at-least-once; DeleteAll is idempotent, so a
// redelivered event is harmless.
type ImagePurgeWorker struct {
	conn      *amqp.Connection
	store     *imagestore.Store
	queueName string
	log       *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewImagePurgeWorker(conn *amqp.Connection, store *imagestore.Store, queueName string, log *zap.Logger) *ImagePurgeWorker {
	return &ImagePurgeWorker{
		conn:      conn,
		store:     store,
		queueName: queueName,
		log:       log,
	}
}

func (w *ImagePurgeWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var event rabbitmq.PurgeEvent
				if err := json.Unmarshal(d.Body, &event); err != nil {
					w.log.Error("decode purge event failed", zap.Error(err))
					_ = d.Nack(false, false)
					continue
				}

				if err := w.store.DeleteAll(workerCtx, event.ArticleID); err != nil {
					w.log.Error("purge article images failed",
						zap.Uint("article_id", event.ArticleID),
						zap.Error(err))
					_ = d.Nack(false, true)
					continue
				}

				w.log.Debug("purged article images", zap.Uint("article_id", event.ArticleID))
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *ImagePurgeWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
