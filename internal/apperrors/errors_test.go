package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorsMatchByTag(t *testing.T) {
	assert.ErrorIs(t, ErrOrderNotFound, ErrOrderNotFound)
	assert.NotErrorIs(t, ErrOrderNotFound, ErrProductNotFound)

	wrapped := fmt.Errorf("loading order: %w", ErrOrderNotFound)
	assert.ErrorIs(t, wrapped, ErrOrderNotFound)
}

func TestCannotCancelCarriesStatusParam(t *testing.T) {
	err := CannotCancel("shipped")

	assert.ErrorIs(t, err, ErrOrderCannotCancel)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "shipped", err.Params["status"])
}

func TestInvalidStatusCarriesValidList(t *testing.T) {
	err := InvalidStatus("pending, processing")

	assert.ErrorIs(t, err, ErrOrderInvalidStatus)
	assert.Equal(t, "pending, processing", err.Params["statuses"])
}

func TestFromUnwrapsTaggedErrors(t *testing.T) {
	appErr, ok := From(fmt.Errorf("context: %w", ErrCategoryInUse))
	require.True(t, ok)
	assert.Equal(t, "category.inUse", appErr.Tag)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)

	_, ok = From(errors.New("plain failure"))
	assert.False(t, ok)
}
