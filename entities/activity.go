package entities

import "time"

type Activity struct {
	ActivityID  uint           `gorm:"primaryKey" json:"activity_id"`
	UserID      string         `json:"user_id" gorm:"index"`
	Type        string         `json:"type"` // lead|appointment|spray|flight
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty" gorm:"serializer:json"`
	CreatedAt   time.Time      `json:"created_at"`
}
