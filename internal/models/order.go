package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// OrderStatusValues lists every status the change-status endpoint accepts.
var OrderStatusValues = []string{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatusValues {
		if s == status {
			return true
		}
	}
	return false
}

func OrderStatusList() string {
	return strings.Join(OrderStatusValues, ", ")
}

// OrderItem carries the unit price captured at order time. The price is a
// snapshot and must never be recomputed from the live product.
type OrderItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Price    float64            `bson:"price" json:"price"`

	// Resolved for display, never persisted.
	ProductTitle string `bson:"-" json:"productTitle,omitempty"`
	ProductImage string `bson:"-" json:"productImage,omitempty"`
}

type Order struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User       primitive.ObjectID `bson:"user" json:"user"`
	Items      []OrderItem        `bson:"items" json:"items"`
	TotalPrice float64            `bson:"totalPrice" json:"totalPrice"`
	Status     string             `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Resolved for display, never persisted.
	UserName  string `bson:"-" json:"userName,omitempty"`
	UserEmail string `bson:"-" json:"userEmail,omitempty"`
}

// OrderItemInput is the shape clients send when placing an order.
type OrderItemInput struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}
