package producer

import (
	"context"
	"encoding/json"
	"time"

	"distributor-service/internal/service"

	"github.com/segmentio/kafka-go"
)

// OrderEventProducer публикует события жизненного цикла заказа в Kafka.
// Реализует service.EventBus.
type OrderEventProducer struct {
	writer *kafka.Writer
}

func NewOrderEventProducer(brokers []string, topic string) *OrderEventProducer {
	return &OrderEventProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

type envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func (p *OrderEventProducer) publish(ctx context.Context, key string, env envelope) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	value, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

func (p *OrderEventProducer) PublishOrderPlaced(ctx context.Context, e service.OrderPlacedEvent) error {
	return p.publish(ctx, e.OrderID.String(), envelope{Type: "order_placed", Payload: e})
}

func (p *OrderEventProducer) PublishOrderStatusChanged(ctx context.Context, e service.OrderStatusChangedEvent) error {
	return p.publish(ctx, e.OrderID.String(), envelope{Type: "order_status_changed", Payload: e})
}

func (p *OrderEventProducer) Close() error {
	return p.writer.Close()
}
