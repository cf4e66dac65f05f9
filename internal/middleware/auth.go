package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"orchard_back_end/internal/i18n"
	"orchard_back_end/internal/models"
	"orchard_back_end/internal/utils"
)

const (
	ctxUserID   = "user_id"
	ctxEmail    = "email"
	ctxRole     = "role"
	ctxUserName = "user_name"
)

// AuthRequired validates the Bearer token and puts the caller's identity in
// the gin context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		t := i18n.FromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, t("common.unauthorized", nil), nil)
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, t("common.invalidToken", nil), nil)
			c.Abort()
			return
		}

		claims, err := utils.VerifyJWT(parts[1])
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, t("common.invalidToken", nil), nil)
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.ID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxRole, claims.Role)
		c.Set(ctxUserName, claims.UserName)
		c.Next()
	}
}

// RequireAdmin allows only callers whose token carries the admin role. Must
// run after AuthRequired.
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get(ctxRole)
	if !exists || role != models.RoleAdmin {
		t := i18n.FromContext(c)
		utils.ErrorResponse(c, http.StatusForbidden, t("common.forbidden", nil), nil)
		c.Abort()
		return
	}
	c.Next()
}

// CurrentUserID returns the authenticated caller's id.
func CurrentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	raw, exists := c.Get(ctxUserID)
	if !exists {
		return primitive.NilObjectID, false
	}
	hex, ok := raw.(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// IsAdmin reports whether the authenticated caller has the admin role.
func IsAdmin(c *gin.Context) bool {
	role, exists := c.Get(ctxRole)
	return exists && role == models.RoleAdmin
}
