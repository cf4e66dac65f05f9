package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orchard_back_end/internal/i18n"
	"orchard_back_end/internal/models"
	"orchard_back_end/internal/services"
	"orchard_back_end/internal/utils"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a user account and returns it with a fresh token.
func (h *AuthHandler) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failValidation(c, err)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), input)
	if err != nil {
		fail(c, err)
		return
	}

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		fail(c, err)
		return
	}

	t := i18n.FromContext(c)
	utils.SuccessResponse(c, http.StatusCreated, t("auth.userCreated", nil), gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failValidation(c, err)
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		fail(c, err)
		return
	}

	t := i18n.FromContext(c)
	utils.SuccessResponse(c, http.StatusOK, t("auth.loginSuccess", nil), gin.H{
		"user":  user,
		"token": token,
	})
}

// Profile returns the authenticated user's profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.auth.GetByID(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		fail(c, err)
		return
	}

	t := i18n.FromContext(c)
	utils.SuccessResponse(c, http.StatusOK, t("auth.profileFetched", nil), user)
}

// UpdateProfile patches the authenticated user's profile. Only the
// allow-listed fields of models.UserUpdate can change.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var patch models.UserUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		failValidation(c, err)
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), c.GetString("user_id"), patch)
	if err != nil {
		fail(c, err)
		return
	}

	t := i18n.FromContext(c)
	utils.SuccessResponse(c, http.StatusOK, t("auth.profileUpdated", nil), user)
}
