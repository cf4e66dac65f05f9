package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"orchard_back_end/internal/models"
)

const tokenLifetime = 7 * 24 * time.Hour

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}
	return []byte(secret)
}

// AuthClaims is what a verified bearer token yields.
type AuthClaims struct {
	ID          string
	Email       string
	Role        string
	UserName    string
	PhoneNumber string
}

// GenerateJWT signs a 7-day HS256 token embedding the user's identity.
func GenerateJWT(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":          user.ID.Hex(),
		"email":       user.Email,
		"role":        user.Role,
		"userName":    user.UserName,
		"phoneNumber": user.PhoneNumber,
		"exp":         time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// VerifyJWT parses and validates a bearer token.
func VerifyJWT(tokenString string) (*AuthClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	id, _ := claims["id"].(string)
	if id == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	userName, _ := claims["userName"].(string)
	phone, _ := claims["phoneNumber"].(string)

	return &AuthClaims{
		ID:          id,
		Email:       email,
		Role:        role,
		UserName:    userName,
		PhoneNumber: phone,
	}, nil
}
