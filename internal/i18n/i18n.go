// Package i18n holds the embedded message catalogs and hands a translation
// function to the HTTP boundary. Nothing here is global; the bundle is built
// once at startup and injected.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	fallbackLang = "en"
	contextKey   = "i18n_translator"
)

// Translator resolves a message key, interpolating {{param}} placeholders.
type Translator func(key string, params map[string]string) string

type Bundle struct {
	catalogs map[string]map[string]string
}

func Load() (*Bundle, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}

	b := &Bundle{catalogs: make(map[string]map[string]string)}
	for _, entry := range entries {
		lang := strings.TrimSuffix(entry.Name(), ".json")
		data, err := localeFS.ReadFile("locales/" + entry.Name())
		if err != nil {
			return nil, err
		}
		var catalog map[string]string
		if err := json.Unmarshal(data, &catalog); err != nil {
			return nil, fmt.Errorf("locale %s: %w", lang, err)
		}
		b.catalogs[lang] = catalog
	}

	if _, ok := b.catalogs[fallbackLang]; !ok {
		return nil, fmt.Errorf("missing fallback locale %q", fallbackLang)
	}
	return b, nil
}

func MustLoad() *Bundle {
	b, err := Load()
	if err != nil {
		panic(err)
	}
	return b
}

// Translator returns the lookup function for lang, falling back to English
// for unknown languages and missing keys. Unknown keys come back verbatim.
func (b *Bundle) Translator(lang string) Translator {
	catalog, ok := b.catalogs[lang]
	if !ok {
		catalog = b.catalogs[fallbackLang]
	}
	fallback := b.catalogs[fallbackLang]

	return func(key string, params map[string]string) string {
		msg, ok := catalog[key]
		if !ok {
			msg, ok = fallback[key]
		}
		if !ok {
			return key
		}
		for name, value := range params {
			msg = strings.ReplaceAll(msg, "{{"+name+"}}", value)
		}
		return msg
	}
}

// Middleware picks the language from Accept-Language and stores the
// translator in the request context.
func Middleware(b *Bundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := parseAcceptLanguage(c.GetHeader("Accept-Language"))
		c.Set(contextKey, b.Translator(lang))
		c.Next()
	}
}

// FromContext fetches the request translator; a key-echoing fallback keeps
// responses usable if the middleware was not installed.
func FromContext(c *gin.Context) Translator {
	if v, ok := c.Get(contextKey); ok {
		if t, ok := v.(Translator); ok {
			return t
		}
	}
	return func(key string, params map[string]string) string { return key }
}

func parseAcceptLanguage(header string) string {
	if header == "" {
		return fallbackLang
	}
	// First tag wins; quality weights are not worth honoring for two locales.
	first := strings.TrimSpace(strings.Split(header, ",")[0])
	if i := strings.IndexAny(first, "-;"); i > 0 {
		first = first[:i]
	}
	return strings.ToLower(first)
}
