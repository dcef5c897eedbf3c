package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"agrocrm/pkg/apperr"
	"agrocrm/pkg/weather"
)

type WeatherCtrl struct {
	svc *weather.Service
	loc *time.Location
}

func New(svc *weather.Service, loc *time.Location) *WeatherCtrl {
	if loc == nil {
		loc = time.Local
	}
	return &WeatherCtrl{svc: svc, loc: loc}
}

// Get handles GET /weather?city=&date=YYYY-MM-DD&time=HH:MM. Without a date
// it reports current conditions; time defaults to 12:00.
func (h *WeatherCtrl) Get(c echo.Context) error {
	var at *time.Time
	if d := c.QueryParam("date"); d != "" {
		hm := c.QueryParam("time")
		if hm == "" {
			hm = "12:00"
		}
		t, err := time.ParseInLocation("2006-01-02 15:04", d+" "+hm, h.loc)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD and time HH:MM"})
		}
		at = &t
	}
	rep, err := h.svc.Lookup(c.Request().Context(), c.QueryParam("city"), at)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, rep)
}
