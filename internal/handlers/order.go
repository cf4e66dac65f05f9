package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"orchard_back_end/internal/i18n"
	"orchard_back_end/internal/middleware"
	"orchard_back_end/internal/models"
	"orchard_back_end/internal/services"
	"orchard_back_end/internal/utils"
)

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderInput struct {
	Items []models.OrderItemInput `json:"items"`
}

type changeStatusInput struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		t := i18n.FromContext(c)
		utils.ErrorResponse(c, http.StatusUnauthorized, t("common.unauthorized", nil), nil)
		return
	}

	var input createOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failValidation(c, err)
		return
	}

	order, err := h.orders.Create(c.Request.Context(), userID, input.Items)
	if err != nil {
		fail(c, err)
		return
	}

	t := i18n.FromContext(c)
	utils.SuccessResponse(c, http.StatusCreated, t("order.created", nil), order)
}

func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		t := i18n.FromContext(c)
		utils.ErrorResponse(c, http.StatusUnauthorized, t("common.unauthorized", nil), nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "5"))

	orders, pagination, err := h.orders.List(c.Request.Context(), userID, middleware.IsAdmin(c), services.ListOrdersParams{
		StatusSearch: c.Query("search"),
		Page:         page,
		PerPage:      perPage,
	})
	if err != nil {
		fail(c, err)
		return
	}

	t := i18n.FromContext(c)
	utils.SuccessResponse(c, http.StatusOK, t("order.fetchedAll", nil), gin.H{
		"orders":     orders,
		"pagination": pagination,
	})
}

func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		t := i18n.FromContext(c)
		utils.ErrorResponse(c, http.StatusUnauthorized, t("common.unauthorized", nil), nil)
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), c.Param("id"), userID, middleware.IsAdmin(c))
	if err != nil {
		fail(c, err)
		return
	}

	t := i18n.FromContext(c)
	utils.SuccessResponse(c, http.StatusOK, t("order.fetched", nil), order)
}

// ChangeStatus is the admin transition to any valid status.
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	var input changeStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failValidation(c, err)
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		fail(c, err)
		return
	}

	t := i18n.FromContext(c)
	utils.SuccessResponse(c, http.StatusOK, t("order.updated", nil), order)
}

// Cancel lets the owner cancel a pending or processing order. Stock goes
// back; admins use ChangeStatus or Delete instead.
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		t := i18n.FromContext(c)
		utils.ErrorResponse(c, http.StatusUnauthorized, t("common.unauthorized", nil), nil)
		return
	}

	order, err := h.orders.Cancel(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		fail(c, err)
		return
	}

	t := i18n.FromContext(c)
	utils.SuccessResponse(c, http.StatusOK, t("order.cancelled", nil), order)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	order, err := h.orders.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	t := i18n.FromContext(c)
	utils.SuccessResponse(c, http.StatusOK, t("order.deleted", nil), order)
}
