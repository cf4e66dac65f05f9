package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orchard_back_end/internal/apperrors"
	"orchard_back_end/internal/i18n"
	"orchard_back_end/internal/utils"
)

// fail maps a service error to the response envelope. Tagged errors carry
// their own status and translation key; anything else is a 500.
func fail(c *gin.Context, err error) {
	t := i18n.FromContext(c)
	if appErr, ok := apperrors.From(err); ok {
		utils.ErrorResponse(c, appErr.Status, t(appErr.Tag, appErr.Params), nil)
		return
	}
	utils.ErrorResponse(c, http.StatusInternalServerError, t("common.error", nil), nil)
}

// failValidation shapes a bind error into field-level messages.
func failValidation(c *gin.Context, err error) {
	t := i18n.FromContext(c)
	utils.ErrorResponse(c, http.StatusBadRequest, t("common.validationFailed", nil), utils.FieldErrors(err))
}
