package handlers

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"orchard_back_end/internal/cache"
	"orchard_back_end/internal/i18n"
	"orchard_back_end/internal/models"
	"orchard_back_end/internal/services"
	"orchard_back_end/internal/utils"
)

type ProductHandler struct {
	products *services.ProductService
	search   *services.SearchService
}

func NewProductHandler(products *services.ProductService, search *services.SearchService) *ProductHandler {
	return &ProductHandler{products: products, search: search}
}

// Create takes a multipart form: product fields plus one or more files under
// "images". Images are uploaded to object storage before the product is
// persisted.
func (h *ProductHandler) Create(c *gin.Context) {
	var input services.CreateProductInput
	if err := c.ShouldBind(&input); err != nil {
		failValidation(c, err)
		return
	}

	urls, err := h.uploadImages(c)
	if err != nil {
		t := i18n.FromContext(c)
		utils.ErrorResponse(c, http.StatusInternalServerError, t("product.createFailed", nil), nil)
		return
	}

	product, err := h.products.Create(c.Request.Context(), input, urls)
	if err != nil {
		fail(c, err)
		return
	}

	t := i18n.FromContext(c)
	utils.SuccessResponse(c, http.StatusCreated, t("product.created", nil), product)
}

func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "5"))

	products, pagination, err := h.products.List(c.Request.Context(), services.ListProductsParams{
		Search:     c.Query("search"),
		CategoryID: c.Query("category"),
		Page:       page,
		PerPage:    perPage,
	})
	if err != nil {
		fail(c, err)
		return
	}

	t := i18n.FromContext(c)
	utils.SuccessResponse(c, http.StatusOK, t("product.fetchedAll", nil), gin.H{
		"products":   products,
		"pagination": pagination,
	})
}

// Get returns one product and bumps its view counter. Reads go through the
// Redis cache; a cached hit still counts the view, just off the request path.
func (h *ProductHandler) Get(c *gin.Context) {
	t := i18n.FromContext(c)
	id := c.Param("id")

	if product, ok := cache.GetProduct(c.Request.Context(), id); ok {
		go h.products.GetByID(context.Background(), id, true)
		utils.SuccessResponse(c, http.StatusOK, t("product.fetched", nil), product)
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), id, true)
	if err != nil {
		fail(c, err)
		return
	}

	cache.SetProduct(c.Request.Context(), product)
	utils.SuccessResponse(c, http.StatusOK, t("product.fetched", nil), product)
}

// Update patches a product. Accepts JSON, or a multipart form when new
// images come along; "replaceImages=true" swaps the image list instead of
// appending.
func (h *ProductHandler) Update(c *gin.Context) {
	var patch models.ProductUpdate
	var urls []string
	replaceImages := false

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBind(&patch); err != nil {
			failValidation(c, err)
			return
		}
		replaceImages = c.PostForm("replaceImages") == "true"
		var err error
		urls, err = h.uploadImages(c)
		if err != nil {
			t := i18n.FromContext(c)
			utils.ErrorResponse(c, http.StatusInternalServerError, t("product.updateFailed", nil), nil)
			return
		}
	} else if err := c.ShouldBindJSON(&patch); err != nil {
		failValidation(c, err)
		return
	}

	product, err := h.products.Update(c.Request.Context(), c.Param("id"), patch, replaceImages, urls)
	if err != nil {
		fail(c, err)
		return
	}

	cache.InvalidateProduct(c.Request.Context(), c.Param("id"))
	t := i18n.FromContext(c)
	utils.SuccessResponse(c, http.StatusOK, t("product.updated", nil), product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	product, err := h.products.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	cache.InvalidateProduct(c.Request.Context(), c.Param("id"))
	t := i18n.FromContext(c)
	utils.SuccessResponse(c, http.StatusOK, t("product.deleted", nil), product)
}

// Search queries Elasticsearch, falling back to the Mongo regex search when
// the cluster is unavailable.
func (h *ProductHandler) Search(c *gin.Context) {
	t := i18n.FromContext(c)
	query := c.Query("q")

	if h.search != nil {
		if results, err := h.search.SearchProducts(c.Request.Context(), query); err == nil {
			utils.SuccessResponse(c, http.StatusOK, t("product.fetchedAll", nil), results)
			return
		}
	}

	products, _, err := h.products.List(c.Request.Context(), services.ListProductsParams{
		Search:  query,
		Page:    1,
		PerPage: 50,
	})
	if err != nil {
		fail(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, t("product.fetchedAll", nil), products)
}

func (h *ProductHandler) uploadImages(c *gin.Context) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	files := form.File["images"]
	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := h.uploadImage(c, file)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (h *ProductHandler) uploadImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
	return services.UploadProductImage(c.Request.Context(), file)
}
