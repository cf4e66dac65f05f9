package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"orchard_back_end/internal/i18n"
	"orchard_back_end/internal/models"
	"orchard_back_end/internal/repository"
	"orchard_back_end/internal/services"
	"orchard_back_end/internal/utils"
)

type memCategoryStore struct {
	categories map[primitive.ObjectID]*models.Category
}

func (m *memCategoryStore) Insert(ctx context.Context, category *models.Category) error {
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	clone := *category
	m.categories[category.ID] = &clone
	return nil
}

func (m *memCategoryStore) FindAll(ctx context.Context) ([]models.Category, error) {
	out := make([]models.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memCategoryStore) UpdateName(ctx context.Context, id primitive.ObjectID, name string) (*models.Category, error) {
	category, ok := m.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	category.Name = name
	clone := *category
	return &clone, nil
}

func (m *memCategoryStore) Delete(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	category, ok := m.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(m.categories, id)
	return category, nil
}

func categoryRouter(t *testing.T) (*gin.Engine, *memCategoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &memCategoryStore{categories: map[primitive.ObjectID]*models.Category{}}
	handler := NewCategoryHandler(services.NewCategoryService(store, nil))

	r := gin.New()
	r.Use(i18n.Middleware(i18n.MustLoad()))
	r.GET("/categories", handler.List)
	r.POST("/categories", handler.Create)
	r.PUT("/categories/:id", handler.Update)
	return r, store
}

type envelope struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Data    json.RawMessage    `json:"data"`
	Errors  []utils.FieldError `json:"errors"`
}

func doJSON(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var resp envelope
	json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestCreateCategoryEnvelope(t *testing.T) {
	r, store := categoryRouter(t)

	w, resp := doJSON(r, "POST", "/categories", `{"name":"Fruit"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "Category created successfully", resp.Message)
	assert.Len(t, store.categories, 1)
}

func TestCreateCategoryValidationErrors(t *testing.T) {
	r, _ := categoryRouter(t)

	w, resp := doJSON(r, "POST", "/categories", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Validation failed", resp.Message)
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "name", resp.Errors[0].Field)
}

func TestUpdateCategoryErrorMapping(t *testing.T) {
	r, _ := categoryRouter(t)

	w, resp := doJSON(r, "PUT", "/categories/"+primitive.NewObjectID().Hex(), `{"name":"Fruit"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Category not found", resp.Message)
}

func TestUpdateCategoryTranslatesErrors(t *testing.T) {
	r, _ := categoryRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/categories/"+primitive.NewObjectID().Hex(), strings.NewReader(`{"name":"Fruit"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "fr")
	r.ServeHTTP(w, req)

	var resp envelope
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEqual(t, "Category not found", resp.Message)
}

func TestListCategoriesEnvelope(t *testing.T) {
	r, store := categoryRouter(t)
	store.Insert(context.Background(), &models.Category{Name: "Fruit"})

	w, resp := doJSON(r, "GET", "/categories", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
}
