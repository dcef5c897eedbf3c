package entities

import "time"

type FlightProduct struct {
	Name   string  `json:"name"`
	Dosage float64 `json:"dosage"`
	Unit   string  `json:"unit"`
}

type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	Path string `json:"path"`
}

type DroneFlight struct {
	FlightID          uint            `gorm:"primaryKey" json:"flight_id"`
	UserID            string          `json:"user_id" gorm:"index"`
	FlightDate        time.Time       `json:"flight_date" gorm:"index"`
	Culture           string          `json:"culture"`
	FlightHeight      float64         `json:"flight_height"`     // m
	Speed             float64         `json:"speed"`             // m/s
	ApplicationWidth  float64         `json:"application_width"` // m
	DropletType       string          `json:"droplet_type"`
	FlowRate          float64         `json:"flow_rate"`    // L/min
	AreaCovered       *float64        `json:"area_covered"` // ha
	TotalVolume       *float64        `json:"total_volume"` // L
	WeatherConditions string          `json:"weather_conditions"`
	Notes             string          `json:"notes"`
	Products          []FlightProduct `json:"products" gorm:"serializer:json"`
	SolidProducts     []FlightProduct `json:"solid_products" gorm:"serializer:json"`
	Attachments       []Attachment    `json:"attachments" gorm:"serializer:json"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
