package realtime

import (
	"encoding/json"
	"time"
)

const (
	Insert = "INSERT"
	Update = "UPDATE"
	Delete = "DELETE"
)

// Event is one row change. Record holds the row after the change and is empty
// for deletes.
type Event struct {
	Table  string          `json:"table"`
	Type   string          `json:"type"`
	UserID string          `json:"user_id"`
	ID     uint            `json:"id"`
	Record json.RawMessage `json:"record,omitempty"`
	At     time.Time       `json:"at"`
}

// NewEvent marshals rec into an event. A marshal failure leaves Record empty;
// subscribers still learn that the row changed.
func NewEvent(table, typ, uid string, id uint, rec any) Event {
	ev := Event{Table: table, Type: typ, UserID: uid, ID: id, At: time.Now().UTC()}
	if rec != nil && typ != Delete {
		if b, err := json.Marshal(rec); err == nil {
			ev.Record = b
		}
	}
	return ev
}
