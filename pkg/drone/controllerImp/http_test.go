package controllerImp

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrocrm/database"
	"agrocrm/entities"
	"agrocrm/pkg/drone/repositoryImp"
	"agrocrm/pkg/drone/serviceImp"
	"agrocrm/pkg/storage"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	dir := t.TempDir()
	db, err := database.Open(filepath.Join(dir, "drone.db"))
	require.NoError(t, err)
	disk, err := storage.NewDisk(filepath.Join(dir, "uploads"), "/files")
	require.NoError(t, err)

	e := echo.New()
	g := e.Group("", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("uid", "U_TEST")
			return next(c)
		}
	})
	New(serviceImp.New(repositoryImp.New(db), disk), time.UTC).Register(g)
	return e
}

func TestFlightRoutes(t *testing.T) {
	t.Parallel()
	e := newServer(t)

	body := `{"flight_date":"2026-10-14","culture":"Soja","flight_height":3,"speed":5,"application_width":6,"droplet_type":"média","flow_rate":1.5,
		"products":[{"name":"Fungicida","dosage":0.5,"unit":"L/ha"},{"name":"","dosage":1,"unit":"L/ha"}]}`
	req := httptest.NewRequest(http.MethodPost, "/drone/flights", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created entities.DroneFlight
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "2026-10-14", created.FlightDate.Format("2006-01-02"))
	assert.Len(t, created.Products, 1)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="talhao.png"`)
	hdr.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, _ = part.Write([]byte("\x89PNG fake"))
	require.NoError(t, mw.Close())

	req = httptest.NewRequest(http.MethodPost, "/drone/flights/1/attachments", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var att entities.Attachment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &att))
	assert.Equal(t, "image/png", att.Type)

	req = httptest.NewRequest(http.MethodGet, "/drone/flights/export?format=csv", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "historico-voos-")
	assert.Contains(t, rec.Body.String(), "Fungicida (0.5L/ha)")

	req = httptest.NewRequest(http.MethodDelete, "/drone/flights/1/attachments?path="+att.Path, nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPatch, "/drone/flights/1", strings.NewReader(`{"culture":""}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/drone/flights/1", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
