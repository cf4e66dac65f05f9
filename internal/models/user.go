package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	Password     string             `bson:"password" json:"-"`
	Role         string             `bson:"role" json:"role"`
	UserName     string             `bson:"userName" json:"userName"`
	City         string             `bson:"city" json:"city"`
	PostalCode   string             `bson:"postalCode" json:"postalCode"`
	AddressLine1 string             `bson:"addressLine1" json:"addressLine1"`
	AddressLine2 string             `bson:"addressLine2" json:"addressLine2"`
	PhoneNumber  string             `bson:"phoneNumber" json:"phoneNumber"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserUpdate names exactly the mutable profile fields. Only non-nil
// fields are written back.
type UserUpdate struct {
	Email        *string `json:"email,omitempty" binding:"omitempty,email"`
	Password     *string `json:"password,omitempty" binding:"omitempty,min=6"`
	UserName     *string `json:"userName,omitempty" binding:"omitempty,min=3,max=50"`
	City         *string `json:"city,omitempty" binding:"omitempty,min=2,max=100"`
	PostalCode   *string `json:"postalCode,omitempty" binding:"omitempty,min=3,max=20"`
	AddressLine1 *string `json:"addressLine1,omitempty" binding:"omitempty,min=5,max=200"`
	AddressLine2 *string `json:"addressLine2,omitempty" binding:"omitempty,max=200"`
	PhoneNumber  *string `json:"phoneNumber,omitempty" binding:"omitempty,min=10,max=20"`
}
