package realtime

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// StreamHandler serves GET /realtime as server-sent events. Each client only
// sees its own rows, optionally narrowed with ?table=.
type StreamHandler struct {
	broker    *Broker
	heartbeat time.Duration
}

func NewStreamHandler(b *Broker) *StreamHandler {
	return &StreamHandler{broker: b, heartbeat: 25 * time.Second}
}

func (h *StreamHandler) Stream(c echo.Context) error {
	if h == nil || h.broker == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "stream not ready"})
	}
	uid, _ := c.Get("uid").(string)
	table := c.QueryParam("table")

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ch := h.broker.Subscribe()
	defer h.broker.Unsubscribe(ch)

	if _, err := fmt.Fprint(w, "event: ready\ndata: {}\n\n"); err != nil {
		return nil
	}
	w.Flush()

	tick := time.NewTicker(h.heartbeat)
	defer tick.Stop()

	done := c.Request().Context().Done()
	for {
		select {
		case <-done:
			return nil
		case <-tick.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return nil
			}
			w.Flush()
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			if ev.UserID != uid || (table != "" && ev.Table != table) {
				continue
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}
