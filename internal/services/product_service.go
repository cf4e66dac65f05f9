package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"orchard_back_end/internal/apperrors"
	"orchard_back_end/internal/models"
	"orchard_back_end/internal/repository"
)

const (
	defaultPage    = 1
	defaultPerPage = 5
)

type ProductStore interface {
	Insert(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByIDAndIncrementViews(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Find(ctx context.Context, filter repository.ProductFilter) ([]models.Product, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

// CategoryFinder resolves category names for display.
type CategoryFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
}

// ProductIndexer mirrors products into the search index. Indexing is a
// best-effort side effect; a nil indexer disables it.
type ProductIndexer interface {
	IndexProduct(product models.Product)
	RemoveProduct(id string)
}

type CreateProductInput struct {
	Title        string  `form:"title" binding:"required,min=3,max=100"`
	Category     string  `form:"category" binding:"required"`
	Price        float64 `form:"price" binding:"gte=0"`
	Description  string  `form:"description" binding:"required,min=5,max=1000"`
	CountInStock int     `form:"countInStock" binding:"gte=0,lte=1000"`
}

type ListProductsParams struct {
	Search     string
	CategoryID string
	Page       int
	PerPage    int
}

type ProductService struct {
	products   ProductStore
	categories CategoryFinder
	indexer    ProductIndexer
}

func NewProductService(products ProductStore, categories CategoryFinder, indexer ProductIndexer) *ProductService {
	return &ProductService{products: products, categories: categories, indexer: indexer}
}

// Create persists a product whose images were already uploaded by the
// boundary layer.
func (s *ProductService) Create(ctx context.Context, input CreateProductInput, images []string) (*models.Product, error) {
	if len(images) == 0 {
		return nil, apperrors.ErrProductImagesRequired
	}

	categoryID, err := primitive.ObjectIDFromHex(input.Category)
	if err != nil {
		return nil, apperrors.ErrCategoryNotFound
	}
	if s.categories != nil {
		if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.ErrCategoryNotFound
			}
			return nil, err
		}
	}

	product := &models.Product{
		Title:        input.Title,
		Category:     categoryID,
		Price:        input.Price,
		Description:  input.Description,
		Images:       images,
		CountInStock: input.CountInStock,
		Rating:       models.Rating{Average: 5, Count: 0},
	}
	if err := s.products.Insert(ctx, product); err != nil {
		return nil, err
	}

	if s.indexer != nil {
		go s.indexer.IndexProduct(*product)
	}

	s.resolveCategoryName(ctx, product)
	return product, nil
}

func (s *ProductService) List(ctx context.Context, params ListProductsParams) ([]models.Product, models.Pagination, error) {
	page := params.Page
	if page < 1 {
		page = defaultPage
	}
	perPage := params.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}

	filter := repository.ProductFilter{
		Search:  params.Search,
		Page:    page,
		PerPage: perPage,
	}
	if params.CategoryID != "" {
		categoryID, err := primitive.ObjectIDFromHex(params.CategoryID)
		if err != nil {
			return nil, models.Pagination{}, apperrors.ErrCategoryNotFound
		}
		filter.Category = &categoryID
	}

	products, total, err := s.products.Find(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	for i := range products {
		s.resolveCategoryName(ctx, &products[i])
	}
	return products, models.NewPagination(total, page, perPage), nil
}

// GetByID optionally bumps the view counter as a side effect of the read.
func (s *ProductService) GetByID(ctx context.Context, id string, incrementViews bool) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrProductNotFound
	}

	var product *models.Product
	if incrementViews {
		product, err = s.products.FindByIDAndIncrementViews(ctx, oid)
	} else {
		product, err = s.products.FindByID(ctx, oid)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	s.resolveCategoryName(ctx, product)
	return product, nil
}

// Update applies only the defined fields of patch. newImages either replace
// the list wholesale or are appended, per replaceImages.
func (s *ProductService) Update(ctx context.Context, id string, patch models.ProductUpdate, replaceImages bool, newImages []string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrProductNotFound
	}

	existing, err := s.products.FindByID(ctx, oid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Category != nil {
		categoryID, err := primitive.ObjectIDFromHex(*patch.Category)
		if err != nil {
			return nil, apperrors.ErrCategoryNotFound
		}
		set["category"] = categoryID
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.CountInStock != nil {
		set["countInStock"] = *patch.CountInStock
	}
	if len(newImages) > 0 {
		if replaceImages {
			set["images"] = newImages
		} else {
			set["images"] = append(append([]string{}, existing.Images...), newImages...)
		}
	}

	product, err := s.products.Update(ctx, oid, set)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.indexer != nil {
		go s.indexer.IndexProduct(*product)
	}

	s.resolveCategoryName(ctx, product)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrProductNotFound
	}

	product, err := s.products.Delete(ctx, oid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.indexer != nil {
		go s.indexer.RemoveProduct(id)
	}
	return product, nil
}

func (s *ProductService) resolveCategoryName(ctx context.Context, product *models.Product) {
	if s.categories == nil {
		return
	}
	if category, err := s.categories.FindByID(ctx, product.Category); err == nil {
		product.CategoryName = category.Name
	}
}
