package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	UIDCookie  = "AGRO_UID"
	DefaultUID = "U_DEV_DEFAULT"
)

// DevLogin trusts the AGRO_UID cookie, then ?uid=, then a fixed default user.
// Only for local use when no token secret is configured.
func DevLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := ""
			if ck, err := c.Cookie(UIDCookie); err == nil {
				uid = ck.Value
			}
			if uid == "" {
				uid = c.QueryParam("uid")
				if uid == "" {
					uid = DefaultUID
				}
				c.SetCookie(&http.Cookie{Name: UIDCookie, Value: uid, Path: "/", HttpOnly: true})
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}
