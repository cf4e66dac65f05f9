package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslatorLocalesAndFallback(t *testing.T) {
	bundle, err := Load()
	require.NoError(t, err)

	en := bundle.Translator("en")
	assert.Equal(t, "Order not found", en("order.notFound", nil))

	fr := bundle.Translator("fr")
	assert.NotEqual(t, en("order.notFound", nil), fr("order.notFound", nil))

	// unknown locale falls back to english
	de := bundle.Translator("de")
	assert.Equal(t, "Order not found", de("order.notFound", nil))

	// unknown key echoes the key so missing entries are visible
	assert.Equal(t, "order.doesNotExist", en("order.doesNotExist", nil))
}

func TestTranslatorInterpolatesParams(t *testing.T) {
	bundle := MustLoad()
	en := bundle.Translator("en")

	msg := en("order.cannotCancel", map[string]string{"status": "shipped"})
	assert.Equal(t, "Order cannot be cancelled while shipped", msg)
}

func TestMiddlewarePicksLanguageFromHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	bundle := MustLoad()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.Header.Set("Accept-Language", "fr-BE;q=0.9,en;q=0.8")

	Middleware(bundle)(c)

	translate := FromContext(c)
	assert.Equal(t, bundle.Translator("fr")("order.notFound", nil), translate("order.notFound", nil))
}

func TestFromContextWithoutMiddlewareEchoesKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)

	translate := FromContext(c)
	assert.Equal(t, "common.error", translate("common.error", nil))
}
