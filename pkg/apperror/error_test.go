package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("handoff refused")
	err := Conflict("busy", cause)

	assert.Equal(t, http.StatusConflict, err.Code)
	assert.Equal(t, "busy", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestWithDetails(t *testing.T) {
	err := BadRequest("invalid").WithDetails([]string{"Nume: Câmp obligatoriu"})

	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, []string{"Nume: Câmp obligatoriu"}, err.Details)
}
