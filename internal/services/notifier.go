package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"orchard_back_end/internal/database"
	"orchard_back_end/internal/models"
)

// OrderEvent is the payload published on order lifecycle changes. Websocket
// subscribers receive it verbatim.
type OrderEvent struct {
	Type       string  `json:"type"`
	OrderID    string  `json:"orderId"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"totalPrice"`
}

// RedisNotifier fans order events out over Redis pub/sub, one channel per
// user, so every API instance can serve the websocket feed.
type RedisNotifier struct{}

func NewRedisNotifier() *RedisNotifier {
	return &RedisNotifier{}
}

// OrderEventsChannel names the pub/sub channel carrying a user's order events.
func OrderEventsChannel(userID string) string {
	return fmt.Sprintf("orders:%s", userID)
}

func (n *RedisNotifier) OrderCreated(order models.Order) {
	n.publish("order.created", order)
}

func (n *RedisNotifier) OrderStatusChanged(order models.Order) {
	n.publish("order.statusChanged", order)
}

func (n *RedisNotifier) publish(eventType string, order models.Order) {
	if database.Redis == nil {
		return
	}

	payload, err := json.Marshal(OrderEvent{
		Type:       eventType,
		OrderID:    order.ID.Hex(),
		Status:     order.Status,
		TotalPrice: order.TotalPrice,
	})
	if err != nil {
		return
	}

	channel := OrderEventsChannel(order.User.Hex())
	if err := database.Redis.Publish(context.Background(), channel, payload).Err(); err != nil {
		log.Println("⚠️ Failed to publish order event:", err)
	}
}
