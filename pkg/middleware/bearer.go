package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type TokenParser interface {
	Parse(token string) (string, error)
}

// Bearer requires "Authorization: Bearer <token>" and sets uid from the
// token subject. ?access_token= is accepted for EventSource clients, which
// cannot set headers.
func Bearer(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(echo.HeaderAuthorization)
			tok := ""
			if scheme, rest, ok := strings.Cut(raw, " "); ok && strings.EqualFold(scheme, "Bearer") {
				tok = strings.TrimSpace(rest)
			}
			if tok == "" {
				tok = c.QueryParam("access_token")
			}
			if tok == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			uid, err := tokens.Parse(tok)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}

type Signer interface {
	TokenParser
	Enabled() bool
}

// Identity picks Bearer when tokens are configured and DevLogin otherwise.
func Identity(tokens Signer) echo.MiddlewareFunc {
	if tokens != nil && tokens.Enabled() {
		return Bearer(tokens)
	}
	return DevLogin()
}
