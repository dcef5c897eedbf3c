package entities

import (
	"time"

	"agrocrm/pkg/mix"
)

// SprayCalculation is a saved spray-mix plan: the request as entered and the
// result exactly as the planner produced it.
type SprayCalculation struct {
	CalcID     uint           `gorm:"primaryKey" json:"calc_id"`
	UserID     string         `json:"user_id" gorm:"index"`
	Name       string         `json:"name"`
	Area       float64        `json:"area"`
	SprayRate  float64        `json:"spray_rate"`
	TankVolume float64        `json:"tank_volume"`
	Products   []mix.Product  `json:"products" gorm:"serializer:json"`
	Results    mix.PlanResult `json:"results" gorm:"serializer:json"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (c *SprayCalculation) Request() mix.PlanRequest {
	return mix.PlanRequest{
		Area:            c.Area,
		ApplicationRate: c.SprayRate,
		TankCapacity:    c.TankVolume,
		Products:        append([]mix.Product(nil), c.Products...),
	}
}
