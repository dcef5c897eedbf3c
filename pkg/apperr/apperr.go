package apperr

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalid       = errors.New("invalid input")
	ErrUnprocessable = errors.New("not computable")
	ErrUnauthorized  = errors.New("unauthorized")
)

// userError carries a message that is shown to the user as-is.
type userError struct {
	kind error
	msg  string
}

func (e *userError) Error() string        { return e.msg }
func (e *userError) Is(target error) bool { return target == e.kind }

// Invalid returns a validation error for malformed or incomplete input.
func Invalid(msg string) error { return &userError{kind: ErrInvalid, msg: msg} }

// Unprocessable is for well-formed input that still cannot produce a result,
// such as a spray plan with a zero area.
func Unprocessable(msg string) error { return &userError{kind: ErrUnprocessable, msg: msg} }

// Status maps an error chain to the HTTP status the controllers answer with.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnprocessable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Message is the text placed in the {"error": ...} body. User errors keep
// their own wording even when wrapped.
func Message(err error) string {
	var ue *userError
	if errors.As(err, &ue) {
		return ue.msg
	}
	if Status(err) == http.StatusNotFound {
		return "not found"
	}
	return err.Error()
}

// Respond writes err as {"error": ...} with its mapped status. Server errors
// are logged with their full chain.
func Respond(c echo.Context, err error) error {
	status := Status(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[http] %s %s: %+v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(status, map[string]string{"error": Message(err)})
}
