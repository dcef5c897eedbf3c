package apperr

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusOK, Status(nil))
	assert.Equal(t, http.StatusNotFound, Status(errors.Wrap(gorm.ErrRecordNotFound, "find lead")))
	assert.Equal(t, http.StatusNotFound, Status(fmt.Errorf("delete: %w", ErrNotFound)))
	assert.Equal(t, http.StatusBadRequest, Status(errors.Wrap(Invalid("name is required"), "save")))
	assert.Equal(t, http.StatusUnprocessableEntity, Status(Unprocessable("area must be greater than zero")))
	assert.Equal(t, http.StatusUnauthorized, Status(ErrUnauthorized))
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("disk full")))
}

func TestKindsDoNotOverlap(t *testing.T) {
	t.Parallel()

	assert.False(t, errors.Is(Invalid("x"), ErrUnprocessable))
	assert.False(t, errors.Is(Unprocessable("x"), ErrInvalid))
}

func TestMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "name is required", Message(errors.Wrap(Invalid("name is required"), "save lead")))
	assert.Equal(t, "tank volume must be greater than zero", Message(errors.Wrap(Unprocessable("tank volume must be greater than zero"), "calculate")))
	assert.Equal(t, "not found", Message(errors.Wrap(gorm.ErrRecordNotFound, "get")))
	assert.Equal(t, "save: disk full", Message(errors.Wrap(errors.New("disk full"), "save")))
}

func TestRespond(t *testing.T) {
	t.Parallel()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, Respond(c, errors.Wrap(Unprocessable("area must be greater than zero"), "calculate")))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":"area must be greater than zero"}`, rec.Body.String())
}
