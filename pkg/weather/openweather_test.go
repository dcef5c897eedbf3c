package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrocrm/pkg/apperr"
)

const currentJSON = `{
  "name": "Londrina", "sys": {"country": "BR"}, "dt": 1792152000,
  "main": {"temp": 27.6, "feels_like": 28.4, "humidity": 38, "pressure": 1012},
  "wind": {"speed": 4.5, "deg": 200}, "visibility": 9500,
  "weather": [{"description": "nuvens dispersas", "icon": "03d"}]
}`

const forecastJSON = `{
  "city": {"name": "Londrina", "country": "BR"},
  "list": [
    {"dt": 1792159200, "main": {"temp": 29.4, "feels_like": 30, "humidity": 45, "pressure": 1011}, "wind": {"speed": 2, "deg": 90}, "visibility": 10000, "weather": [{"description": "céu limpo", "icon": "01d"}], "pop": 0.12},
    {"dt": 1792170000, "main": {"temp": 24.5, "feels_like": 24, "humidity": 60, "pressure": 1012}, "wind": {"speed": 5, "deg": 350}, "visibility": 10000, "weather": [{"description": "chuva leve", "icon": "10n"}], "pop": 0.68, "rain": {"3h": 1.4}},
    {"dt": 1792180800, "main": {"temp": 20.2, "feels_like": 20, "humidity": 80, "pressure": 1013}, "wind": {"speed": 1, "deg": 40}, "visibility": 8000, "weather": [], "pop": 0},
    {"dt": 1792191600, "main": {"temp": 18, "feels_like": 18, "humidity": 85, "pressure": 1013}, "wind": {"speed": 1, "deg": 0}, "visibility": 8000, "weather": [{"description": "nublado", "icon": "04n"}], "pop": 0}
  ]
}`

func newProvider(t *testing.T) (Client, *[]string) {
	t.Helper()
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.Path+"?"+r.URL.RawQuery)
		if r.URL.Query().Get("q") == "Atlantida" {
			http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
			return
		}
		switch r.URL.Path {
		case "/data/2.5/weather":
			_, _ = w.Write([]byte(currentJSON))
		case "/data/2.5/forecast":
			_, _ = w.Write([]byte(forecastJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return NewOpenWeather(srv.URL+"/", "k3y", ""), &seen
}

func TestOpenWeatherCurrent(t *testing.T) {
	c, seen := newProvider(t)

	got, err := c.Current(context.Background(), "Londrina")
	require.NoError(t, err)
	assert.Equal(t, "Londrina, BR", got.Location)
	assert.Equal(t, 28, got.Temperature)
	assert.Equal(t, 28, got.FeelsLike)
	assert.Equal(t, 38, got.Humidity)
	assert.Equal(t, 16, got.WindSpeed)
	assert.Equal(t, "S", got.WindDirection)
	assert.Equal(t, 10, got.Visibility)
	assert.Equal(t, "nuvens dispersas", got.Condition)
	assert.Nil(t, got.RainProbability)

	require.Len(t, *seen, 1)
	assert.Equal(t, "/data/2.5/weather?appid=k3y&lang=pt_br&q=Londrina&units=metric", (*seen)[0])
}

func TestOpenWeatherForecast(t *testing.T) {
	c, _ := newProvider(t)

	fc, err := c.Forecast(context.Background(), "Londrina")
	require.NoError(t, err)
	require.Len(t, fc.Steps, 4)

	wet := fc.Steps[1]
	assert.Equal(t, 18, wet.WindSpeed)
	assert.Equal(t, "N", wet.WindDirection)
	require.NotNil(t, wet.RainProbability)
	assert.Equal(t, 68, *wet.RainProbability)
	assert.Equal(t, 1.4, *wet.RainAmount)

	assert.Equal(t, "01d", fc.Steps[2].Icon, "missing weather keeps the default icon")
	assert.Equal(t, "NE", fc.Steps[2].WindDirection)
}

func TestOpenWeatherCityNotFound(t *testing.T) {
	c, _ := newProvider(t)

	_, err := c.Current(context.Background(), "Atlantida")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestServiceLookup(t *testing.T) {
	c, _ := newProvider(t)
	svc := NewService(c, DefaultThresholds())
	ctx := context.Background()

	rep, err := svc.Lookup(ctx, "Londrina", nil)
	require.NoError(t, err)
	assert.Equal(t, 28, rep.Conditions.Temperature)
	assert.Len(t, rep.Next, 3)
	assert.Equal(t, []string{"wind", "humidity"}, kinds(rep.Advisories))

	at := time.Unix(1792170000, 0).Add(50 * time.Minute)
	rep, err = svc.Lookup(ctx, "Londrina", &at)
	require.NoError(t, err)
	assert.Equal(t, "chuva leve", rep.Conditions.Condition)
	assert.Equal(t, []string{"wind"}, kinds(rep.Advisories))

	_, err = svc.Lookup(ctx, "  ", nil)
	assert.ErrorIs(t, err, apperr.ErrInvalid)
}

func kinds(as []Advisory) []string {
	out := make([]string, 0, len(as))
	for _, a := range as {
		out = append(out, a.Kind)
	}
	return out
}
