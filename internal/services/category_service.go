package services

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"orchard_back_end/internal/apperrors"
	"orchard_back_end/internal/models"
	"orchard_back_end/internal/repository"
)

type CategoryStore interface {
	Insert(ctx context.Context, category *models.Category) error
	FindAll(ctx context.Context) ([]models.Category, error)
	UpdateName(ctx context.Context, id primitive.ObjectID, name string) (*models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
}

// ProductCounter breaks the delete/orphan tie: a category with products
// still referencing it cannot be removed.
type ProductCounter interface {
	CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error)
}

type CategoryService struct {
	categories CategoryStore
	products   ProductCounter
}

func NewCategoryService(categories CategoryStore, products ProductCounter) *CategoryService {
	return &CategoryService{categories: categories, products: products}
}

func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 3 {
		return nil, apperrors.ErrCategoryNameLength
	}

	category := &models.Category{Name: trimmed}
	if err := s.categories.Insert(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.FindAll(ctx)
}

func (s *CategoryService) Update(ctx context.Context, id, name string) (*models.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrCategoryNotFound
	}

	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 3 {
		return nil, apperrors.ErrCategoryNameLength
	}

	category, err := s.categories.UpdateName(ctx, oid, trimmed)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) (*models.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrCategoryNotFound
	}

	if s.products != nil {
		count, err := s.products.CountByCategory(ctx, oid)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperrors.ErrCategoryInUse
		}
	}

	category, err := s.categories.Delete(ctx, oid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}
