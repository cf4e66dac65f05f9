package cache

import (
	"context"
	"encoding/json"
	"time"

	"orchard_back_end/internal/database"
	"orchard_back_end/internal/models"
)

const (
	CategoryCacheTTL = 10 * time.Minute
	ProductCacheTTL  = 5 * time.Minute
)

const categoriesKey = "categories:all"

func productKey(id string) string {
	return "product:" + id
}

// GetCategories returns the cached category list, or false on a miss.
func GetCategories(ctx context.Context) ([]models.Category, bool) {
	if database.Redis == nil {
		return nil, false
	}
	data, err := database.Redis.Get(ctx, categoriesKey).Result()
	if err != nil {
		return nil, false
	}
	var categories []models.Category
	if json.Unmarshal([]byte(data), &categories) != nil {
		return nil, false
	}
	return categories, true
}

func SetCategories(ctx context.Context, categories []models.Category) {
	if database.Redis == nil {
		return
	}
	data, err := json.Marshal(categories)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, categoriesKey, data, CategoryCacheTTL)
}

// InvalidateCategories drops the category list after any write.
func InvalidateCategories(ctx context.Context) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(ctx, categoriesKey)
}

// GetProduct returns a cached product by hex id, or false on a miss.
func GetProduct(ctx context.Context, id string) (*models.Product, bool) {
	if database.Redis == nil {
		return nil, false
	}
	data, err := database.Redis.Get(ctx, productKey(id)).Result()
	if err != nil {
		return nil, false
	}
	var product models.Product
	if json.Unmarshal([]byte(data), &product) != nil {
		return nil, false
	}
	return &product, true
}

func SetProduct(ctx context.Context, product *models.Product) {
	if database.Redis == nil || product == nil {
		return
	}
	data, err := json.Marshal(product)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, productKey(product.ID.Hex()), data, ProductCacheTTL)
}

func InvalidateProduct(ctx context.Context, id string) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(ctx, productKey(id))
}
