package weather

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"agrocrm/pkg/apperr"
)

const nextSteps = 3

type Report struct {
	Conditions Conditions   `json:"conditions"`
	Next       []Conditions `json:"next"`
	Advisories []Advisory   `json:"advisories"`
}

// Service combines provider data into the report shown for a city.
type Service struct {
	client     Client
	thresholds Thresholds
}

func NewService(c Client, th Thresholds) *Service {
	return &Service{client: c, thresholds: th}
}

func (s *Service) Thresholds() Thresholds { return s.thresholds }

// Lookup returns current conditions when at is nil, otherwise the forecast
// step nearest to at. Both carry the next forecast steps.
func (s *Service) Lookup(ctx context.Context, city string, at *time.Time) (*Report, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, apperr.Invalid("city is required")
	}

	fc, err := s.client.Forecast(ctx, city)
	if err != nil {
		return nil, errors.Wrap(err, "forecast")
	}

	var cond Conditions
	if at == nil {
		cur, err := s.client.Current(ctx, city)
		if err != nil {
			return nil, errors.Wrap(err, "current weather")
		}
		cond = *cur
	} else {
		var ok bool
		cond, ok = Nearest(fc.Steps, *at)
		if !ok {
			return nil, errors.Wrap(apperr.ErrNotFound, "no forecast for that date and time")
		}
	}

	return &Report{
		Conditions: cond,
		Next:       Next(fc.Steps, nextSteps),
		Advisories: Advise(cond, s.thresholds),
	}, nil
}
