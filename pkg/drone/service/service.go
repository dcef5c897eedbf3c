package service

import (
	"context"
	"io"
	"time"

	"agrocrm/entities"
)

type Service interface {
	Create(ctx context.Context, uid string, in *entities.DroneFlight) error
	List(uid string) ([]entities.DroneFlight, error)
	UpdatePartial(ctx context.Context, uid string, id uint, patch FlightPatch) (*entities.DroneFlight, error)
	// Delete removes the flight and its stored attachments.
	Delete(ctx context.Context, uid string, id uint) error
	AddAttachment(ctx context.Context, uid string, id uint, up Upload) (*entities.Attachment, error)
	RemoveAttachment(ctx context.Context, uid string, id uint, path string) (*entities.DroneFlight, error)
	Export(uid, format string) (*Document, error)
}

// FlightPatch carries only the fields to change.
type FlightPatch struct {
	FlightDate        *time.Time                `json:"flight_date"`
	Culture           *string                   `json:"culture"`
	FlightHeight      *float64                  `json:"flight_height"`
	Speed             *float64                  `json:"speed"`
	ApplicationWidth  *float64                  `json:"application_width"`
	DropletType       *string                   `json:"droplet_type"`
	FlowRate          *float64                  `json:"flow_rate"`
	AreaCovered       *float64                  `json:"area_covered"`
	TotalVolume       *float64                  `json:"total_volume"`
	WeatherConditions *string                   `json:"weather_conditions"`
	Notes             *string                   `json:"notes"`
	Products          *[]entities.FlightProduct `json:"products"`
	SolidProducts     *[]entities.FlightProduct `json:"solid_products"`
}

type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}
