package realtime

import (
	"encoding/json"
	"fmt"
)

// Reconcile applies ev to a cached list that is ordered newest first and
// returns the updated list. The input slice is not modified.
func Reconcile[T any](cached []T, ev Event, idOf func(T) uint) ([]T, error) {
	idx := -1
	for i, item := range cached {
		if idOf(item) == ev.ID {
			idx = i
			break
		}
	}

	switch ev.Type {
	case Delete:
		if idx < 0 {
			return cached, nil
		}
		out := make([]T, 0, len(cached)-1)
		out = append(out, cached[:idx]...)
		return append(out, cached[idx+1:]...), nil

	case Insert, Update:
		var rec T
		if err := json.Unmarshal(ev.Record, &rec); err != nil {
			return cached, fmt.Errorf("decode %s record #%d: %w", ev.Table, ev.ID, err)
		}
		if idx >= 0 {
			out := append([]T(nil), cached...)
			out[idx] = rec
			return out, nil
		}
		// an update for a row we never saw is treated like an insert
		return append([]T{rec}, cached...), nil
	}
	return cached, fmt.Errorf("unknown event type %q", ev.Type)
}
