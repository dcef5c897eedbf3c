package realtime

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamFiltersByUserAndTable(t *testing.T) {
	t.Parallel()

	b := NewBroker(8)
	e := echo.New()
	e.GET("/realtime", NewStreamHandler(b).Stream, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("uid", "u1")
			return next(c)
		}
	})
	srv := httptest.NewServer(e)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/realtime?table=leads", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	r := bufio.NewReader(resp.Body)
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: ready\n", line)

	require.Eventually(t, func() bool { return b.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	b.Publish(ctx, NewEvent("leads", Insert, "u2", 1, nil))
	b.Publish(ctx, NewEvent("appointments", Insert, "u1", 2, nil))
	b.Publish(ctx, NewEvent("leads", Update, "u1", 3, map[string]string{"name": "Ana"}))

	var data string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: ") && line != "data: {}\n" {
			data = strings.TrimPrefix(strings.TrimSpace(line), "data: ")
			break
		}
	}
	assert.Contains(t, data, `"type":"UPDATE"`)
	assert.Contains(t, data, `"id":3`)
	assert.Contains(t, data, `"user_id":"u1"`)
}

func TestStreamEndsWhenBrokerCloses(t *testing.T) {
	t.Parallel()

	b := NewBroker(8)
	e := echo.New()
	e.GET("/realtime", NewStreamHandler(b).Stream)
	srv := httptest.NewServer(e)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/realtime", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Eventually(t, func() bool { return b.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	b.Close()

	rest, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "event: ready\ndata: {}\n\n", string(rest))
}
