package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"orchard_back_end/internal/apperrors"
	"orchard_back_end/internal/models"
	"orchard_back_end/internal/repository"
	"orchard_back_end/internal/utils"
)

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	EmailTaken(ctx context.Context, email string, exclude primitive.ObjectID) (bool, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error)
}

type RegisterInput struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	Role         string `json:"role" binding:"omitempty,oneof=user admin"`
	UserName     string `json:"userName" binding:"required,min=3,max=50"`
	City         string `json:"city" binding:"required,min=2,max=100"`
	PostalCode   string `json:"postalCode" binding:"required,min=3,max=20"`
	AddressLine1 string `json:"addressLine1" binding:"required,min=5,max=200"`
	AddressLine2 string `json:"addressLine2" binding:"omitempty,max=200"`
	PhoneNumber  string `json:"phoneNumber" binding:"required,min=10,max=20"`
}

type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	_, err := s.users.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, apperrors.ErrUserExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		Email:        input.Email,
		Password:     string(hash),
		Role:         role,
		UserName:     input.UserName,
		City:         input.City,
		PostalCode:   input.PostalCode,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		PhoneNumber:  input.PhoneNumber,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login deliberately answers unknown email and wrong password with the same
// error so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	user, err := s.users.FindByID(ctx, oid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, id string, patch models.UserUpdate) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	if patch.Email != nil {
		taken, err := s.users.EmailTaken(ctx, *patch.Email, oid)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.ErrEmailExists
		}
	}

	set := bson.M{}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		set["password"] = string(hash)
	}
	if patch.UserName != nil {
		set["userName"] = *patch.UserName
	}
	if patch.City != nil {
		set["city"] = *patch.City
	}
	if patch.PostalCode != nil {
		set["postalCode"] = *patch.PostalCode
	}
	if patch.AddressLine1 != nil {
		set["addressLine1"] = *patch.AddressLine1
	}
	if patch.AddressLine2 != nil {
		set["addressLine2"] = *patch.AddressLine2
	}
	if patch.PhoneNumber != nil {
		set["phoneNumber"] = *patch.PhoneNumber
	}

	if len(set) == 0 {
		return s.GetByID(ctx, id)
	}

	user, err := s.users.Update(ctx, oid, set)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
