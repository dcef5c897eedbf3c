package weather

import (
	"context"
	"math"
	"time"
)

// Conditions is one observation or forecast step, already in display units:
// °C, km/h, km and percent.
type Conditions struct {
	Location        string    `json:"location"`
	At              time.Time `json:"at"`
	Temperature     int       `json:"temperature"`
	FeelsLike       int       `json:"feels_like"`
	Humidity        int       `json:"humidity"`
	Pressure        int       `json:"pressure"`
	WindSpeed       int       `json:"wind_speed"`
	WindDeg         int       `json:"wind_deg"`
	WindDirection   string    `json:"wind_direction"`
	Visibility      int       `json:"visibility"`
	Condition       string    `json:"condition"`
	Icon            string    `json:"icon"`
	RainProbability *int      `json:"rain_probability,omitempty"`
	RainAmount      *float64  `json:"rain_amount,omitempty"`
}

type Forecast struct {
	Location string       `json:"location"`
	Steps    []Conditions `json:"steps"`
}

type Client interface {
	Current(ctx context.Context, city string) (*Conditions, error)
	Forecast(ctx context.Context, city string) (*Forecast, error)
}

var compass = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Direction maps degrees to an 8-point compass label.
func Direction(deg float64) string {
	i := int(math.Round(deg/45)) % 8
	if i < 0 {
		i += 8
	}
	return compass[i]
}

// Nearest returns the step closest to at; ties keep the earlier step.
func Nearest(steps []Conditions, at time.Time) (Conditions, bool) {
	if len(steps) == 0 {
		return Conditions{}, false
	}
	best := steps[0]
	bestDiff := absDur(best.At.Sub(at))
	for _, s := range steps[1:] {
		if d := absDur(s.At.Sub(at)); d < bestDiff {
			best, bestDiff = s, d
		}
	}
	return best, true
}

// Next returns up to n steps from the start of the forecast.
func Next(steps []Conditions, n int) []Conditions {
	if n > len(steps) {
		n = len(steps)
	}
	return append([]Conditions(nil), steps[:n]...)
}

func absDur(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func kmh(ms float64) int { return int(math.Round(ms * 3.6)) }
