package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"orchard_back_end/internal/models"
	"orchard_back_end/internal/utils"
)

func authContext(t *testing.T, authorization string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	if authorization != "" {
		c.Request.Header.Set("Authorization", authorization)
	}
	return c, w
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	user := models.User{
		ID:       primitive.NewObjectID(),
		Email:    "alice@example.com",
		Role:     models.RoleAdmin,
		UserName: "alice",
	}
	token, err := utils.GenerateJWT(user)
	require.NoError(t, err)

	c, w := authContext(t, "Bearer "+token)
	AuthRequired()(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, w.Code)

	id, ok := CurrentUserID(c)
	require.True(t, ok)
	assert.Equal(t, user.ID, id)
	assert.True(t, IsAdmin(c))
}

func TestAuthRequiredRejectsMissingAndMalformedHeaders(t *testing.T) {
	cases := []string{
		"",
		"Bearer",
		"Basic abc123",
		"Bearer not-a-jwt",
	}
	for _, header := range cases {
		c, w := authContext(t, header)
		AuthRequired()(c)

		assert.True(t, c.IsAborted(), "header %q", header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestRequireAdminBlocksPlainUsers(t *testing.T) {
	user := models.User{ID: primitive.NewObjectID(), Email: "bob@example.com", Role: models.RoleUser}
	token, err := utils.GenerateJWT(user)
	require.NoError(t, err)

	c, w := authContext(t, "Bearer "+token)
	AuthRequired()(c)
	require.False(t, c.IsAborted())

	RequireAdmin(c)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, IsAdmin(c))
}

func TestCurrentUserIDWithoutAuth(t *testing.T) {
	c, _ := authContext(t, "")
	_, ok := CurrentUserID(c)
	assert.False(t, ok)
}
