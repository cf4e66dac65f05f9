package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// MaxCountInStock caps the stock counter per product.
	MaxCountInStock = 1000
)

type Rating struct {
	Average float64 `bson:"average" json:"average"`
	Count   int     `bson:"count" json:"count"`
}

type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Category     primitive.ObjectID `bson:"category" json:"category"`
	Price        float64            `bson:"price" json:"price"`
	Description  string             `bson:"description" json:"description"`
	Images       []string           `bson:"images" json:"images"`
	CountInStock int                `bson:"countInStock" json:"countInStock"`
	Rating       Rating             `bson:"rating" json:"rating"`
	Views        int                `bson:"views" json:"views"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// CategoryName is resolved for display, never persisted.
	CategoryName string `bson:"-" json:"categoryName,omitempty"`
}

// ProductUpdate names exactly the mutable product fields. Only non-nil
// fields are written back; images are handled separately (replace or
// append semantics decided by the caller).
type ProductUpdate struct {
	Title        *string  `json:"title,omitempty" form:"title" binding:"omitempty,min=3,max=100"`
	Category     *string  `json:"category,omitempty" form:"category"`
	Price        *float64 `json:"price,omitempty" form:"price" binding:"omitempty,gte=0"`
	Description  *string  `json:"description,omitempty" form:"description" binding:"omitempty,min=5,max=1000"`
	CountInStock *int     `json:"countInStock,omitempty" form:"countInStock" binding:"omitempty,gte=0,lte=1000"`
}
