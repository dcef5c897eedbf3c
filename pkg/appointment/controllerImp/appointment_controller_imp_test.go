package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrocrm/database"
	"agrocrm/entities"
	"agrocrm/pkg/appointment/repositoryImp"
	"agrocrm/pkg/appointment/serviceImp"
)

func TestAppointmentRoutesPresentShortTimes(t *testing.T) {
	t.Parallel()

	db, err := database.Open(filepath.Join(t.TempDir(), "appointments.db"))
	require.NoError(t, err)
	h := New(serviceImp.NewAppointmentService(repositoryImp.New(db), nil, nil), time.UTC)
	h.now = func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) }

	e := echo.New()
	g := e.Group("", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("uid", "U_TEST")
			return next(c)
		}
	})
	g.GET("/appointments", h.List)
	g.POST("/appointments", h.Create)
	g.GET("/appointments/today", h.Today)
	g.GET("/appointments/upcoming", h.Upcoming)
	g.PATCH("/appointments/:id", h.Patch)
	g.DELETE("/appointments/:id", h.Delete)

	call := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	rec := call(http.MethodPost, "/appointments", `{"title":"Visita Fazenda Sol","type":"visita","date":"2026-10-16","time":"14:00","end_time":"15:30"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created entities.Appointment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "14:00", created.Time)
	assert.Equal(t, "15:30", *created.EndTime)

	rec = call(http.MethodPost, "/appointments", `{"title":"Suporte","type":"suporte","date":"2026-10-20","time":"08:00"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = call(http.MethodGet, "/appointments/today", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var today []entities.Appointment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &today))
	require.Len(t, today, 1)
	assert.Equal(t, "Visita Fazenda Sol", today[0].Title)

	rec = call(http.MethodGet, "/appointments/upcoming", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var upcoming []entities.Appointment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &upcoming))
	require.Len(t, upcoming, 1)
	assert.Equal(t, "08:00", upcoming[0].Time)

	rec = call(http.MethodPatch, "/appointments/1", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"concluida"`)

	rec = call(http.MethodGet, "/appointments?from=bad", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(http.MethodDelete, "/appointments/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
