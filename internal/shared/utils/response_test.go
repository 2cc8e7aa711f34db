package utils

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orris-inc/fitment/internal/shared/errors"
)

func TestErrorInfoFrom(t *testing.T) {
	status, info := errorInfoFrom(errors.NewNotFoundError("unknown report \"x\""))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", info.Type)

	wrapped := fmt.Errorf("handler: %w", errors.NewValidationError("invalid request body", "make_id"))
	status, info = errorInfoFrom(wrapped)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "make_id", info.Details)

	status, info = errorInfoFrom(fmt.Errorf("dial tcp 10.0.0.5:3306: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.NotContains(t, info.Message, "10.0.0.5")
}
