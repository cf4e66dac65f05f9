package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orchard_back_end/internal/cache"
	"orchard_back_end/internal/i18n"
	"orchard_back_end/internal/services"
	"orchard_back_end/internal/utils"
)

type CategoryHandler struct {
	categories *services.CategoryService
}

func NewCategoryHandler(categories *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type categoryInput struct {
	Name string `json:"name" binding:"required"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failValidation(c, err)
		return
	}

	category, err := h.categories.Create(c.Request.Context(), input.Name)
	if err != nil {
		fail(c, err)
		return
	}

	cache.InvalidateCategories(c.Request.Context())
	t := i18n.FromContext(c)
	utils.SuccessResponse(c, http.StatusCreated, t("category.created", nil), category)
}

// List serves the category list from Redis when possible.
func (h *CategoryHandler) List(c *gin.Context) {
	t := i18n.FromContext(c)
	ctx := c.Request.Context()

	if categories, ok := cache.GetCategories(ctx); ok {
		utils.SuccessResponse(c, http.StatusOK, t("category.fetched", nil), categories)
		return
	}

	categories, err := h.categories.List(ctx)
	if err != nil {
		fail(c, err)
		return
	}

	cache.SetCategories(ctx, categories)
	utils.SuccessResponse(c, http.StatusOK, t("category.fetched", nil), categories)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failValidation(c, err)
		return
	}

	category, err := h.categories.Update(c.Request.Context(), c.Param("id"), input.Name)
	if err != nil {
		fail(c, err)
		return
	}

	cache.InvalidateCategories(c.Request.Context())
	t := i18n.FromContext(c)
	utils.SuccessResponse(c, http.StatusOK, t("category.updated", nil), category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	category, err := h.categories.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	cache.InvalidateCategories(c.Request.Context())
	t := i18n.FromContext(c)
	utils.SuccessResponse(c, http.StatusOK, t("category.deleted", nil), category)
}
