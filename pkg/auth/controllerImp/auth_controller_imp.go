package controllerImp

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"agrocrm/pkg/apperr"
	"agrocrm/pkg/auth"
	"agrocrm/pkg/auth/controller"
	"agrocrm/pkg/middleware"
)

type authCtrl struct{ tokens *auth.Tokens }

func NewAuthController(tokens *auth.Tokens) controller.AuthController { return &authCtrl{tokens: tokens} }

// DevLogin sets the dev identity cookie and, when signing is configured,
// also returns a bearer token for that uid.
func (h *authCtrl) DevLogin(c echo.Context) error {
	uid := strings.TrimSpace(c.QueryParam("uid"))
	if uid == "" {
		uid = middleware.DefaultUID
	}
	c.SetCookie(&http.Cookie{Name: middleware.UIDCookie, Value: uid, Path: "/", HttpOnly: true})
	if !h.tokens.Enabled() {
		return c.JSON(http.StatusOK, map[string]string{"uid": uid})
	}
	tok, exp, err := h.tokens.Issue(uid)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"uid":        uid,
		"token":      tok,
		"expires_at": exp.Format(time.RFC3339),
	})
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	v := c.Get("uid")
	uid, _ := v.(string)
	return c.JSON(http.StatusOK, map[string]string{"uid": uid})
}
