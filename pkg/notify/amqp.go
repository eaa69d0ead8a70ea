package notify

import (
	"context"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// DefaultExchange is the topic exchange admins subscribe to
const DefaultExchange = "admin_msg"

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPNotifier publishes events as JSON to a durable topic exchange
type AMQPNotifier struct {
	conn     io.Closer
	ch       publisher
	exchange string
	log      *zap.Logger
}

func NewAMQPNotifier(url, exchange string, log *zap.Logger) (*AMQPNotifier, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return newAMQPNotifier(conn, ch, exchange, log), nil
}

func newAMQPNotifier(conn io.Closer, ch publisher, exchange string, log *zap.Logger) *AMQPNotifier {
	return &AMQPNotifier{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
		log:      log.With(zap.String("notifier", "amqp"), zap.String("exchange", exchange)),
	}
}

func (n *AMQPNotifier) Notify(ctx context.Context, event Event) error {
	body, err := jsoniter.ConfigFastest.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.ID, err)
	}

	err = n.ch.PublishWithContext(ctx, n.exchange, event.RoutingKey(), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID.String(),
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish event %s: %w", event.RoutingKey(), err)
	}

	n.log.Debug("Event published",
		zap.String("routing_key", event.RoutingKey()),
		zap.Int64("booking_id", event.BookingID),
	)
	return nil
}

func (n *AMQPNotifier) Close() error {
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
