package queue

import (
	"context"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler processes one backfill request. A non-nil error is logged by the
// consumer; the message is acknowledged either way, so every delivery gets
// exactly one processing attempt.
type Handler func(ctx context.Context, date string) error

// Consumer reads backfill requests from a shared durable queue. Multiple
// worker instances consuming the same queue split the messages between them.
type Consumer struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	queueName string
	tag       string
	logger    *slog.Logger
}

func NewConsumer(cfg Config, logger *slog.Logger) (*Consumer, error) {
	conn, ch, err := declareTopology(cfg)
	if err != nil {
		return nil, err
	}

	// One unacked message per worker keeps deliveries spread across instances.
	if err := ch.Qos(1, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("set qos: %w", err)
	}

	logger.Info("consuming from rabbitmq",
		"queue", cfg.QueueName,
		"consumer_tag", cfg.ConsumerTag,
	)

	return &Consumer{
		conn:      conn,
		channel:   ch,
		queueName: cfg.QueueName,
		tag:       cfg.ConsumerTag,
		logger:    logger,
	}, nil
}

// Start blocks consuming deliveries until ctx is cancelled or the delivery
// channel closes.
func (c *Consumer) Start(ctx context.Context, handler Handler) error {
	deliveries, err := c.channel.Consume(
		c.queueName,
		c.tag,
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("consumer stopped")
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			c.handleDelivery(ctx, delivery, handler)
		}
	}
}

func (c *Consumer) handleDelivery(ctx context.Context, delivery amqp.Delivery, handler Handler) {
	date := string(delivery.Body)

	if err := handler(ctx, date); err != nil {
		c.logger.Error("backfill processing failed", "date", date, "error", err)
	}

	// Ack regardless of the handler outcome: failed requests are dropped, a
	// later lookup for the same date re-enqueues them.
	if err := delivery.Ack(false); err != nil {
		c.logger.Error("failed to ack delivery", "date", date, "error", err)
	}
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
