package entities

import "time"

const (
	LeadCold = "frio"
	LeadWarm = "morno"
	LeadHot  = "quente"
)

var LeadStatuses = []string{LeadCold, LeadWarm, LeadHot}

type Lead struct {
	LeadID     uint      `gorm:"primaryKey" json:"lead_id"`
	UserID     string    `json:"user_id" gorm:"index"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Farm       string    `json:"farm"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	Status     string    `json:"status" gorm:"index"` // frio|morno|quente
	Hectares   float64   `json:"hectares"`
	MainCrop   string    `json:"main_crop"`
	OtherCrops string    `json:"other_crops"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
