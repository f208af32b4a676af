// Package notify publishes order lifecycle events to Kafka. Publishing
// happens after the database transaction commits and is best-effort: the
// caller logs a failed publish and moves on, it never unwinds a committed
// order.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
)

const (
	EventCreated   = "created"
	EventStatus    = "status"
	EventCancelled = "cancelled"
)

// OrderEvent is the payload consumed by the stock worker and any mail
// pipeline listening on the order topic. Items carry the pricing
// breakdown snapshotted at checkout.
type OrderEvent struct {
	OrderID  int64              `json:"order_id"`
	Event    string             `json:"event"`
	Status   entity.OrderStatus `json:"status"`
	Amount   float64            `json:"amount"`
	Email    string             `json:"email,omitempty"`
	Items    []entity.OrderItem `json:"items,omitempty"`
	Delivery *entity.Delivery   `json:"delivery,omitempty"`
}

type KafkaNotifier struct {
	writer *kafka.Writer
}

func NewKafkaNotifier(writer *kafka.Writer) *KafkaNotifier {
	return &KafkaNotifier{writer: writer}
}

// PublishOrderEvent writes one message keyed "order.<event>.<id>" so
// consumers can route on the key without decoding the payload.
func (n *KafkaNotifier) PublishOrderEvent(ctx context.Context, order *entity.Order, event string) error {
	payload := OrderEvent{
		OrderID:  order.ID,
		Event:    event,
		Status:   order.Status,
		Amount:   order.Amount,
		Items:    order.Items,
		Delivery: order.Delivery,
	}
	if order.Delivery != nil {
		payload.Email = order.Delivery.Email
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order.%s.%d", event, order.ID)),
		Value: value,
	}

	return n.writer.WriteMessages(ctx, msg)
}
