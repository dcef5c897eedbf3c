package serviceImp

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/pkg/errors"

	"agrocrm/entities"
	"agrocrm/pkg/activity"
	"agrocrm/pkg/apperr"
	"agrocrm/pkg/metrics"
	"agrocrm/pkg/mix"
	"agrocrm/pkg/realtime"
	"agrocrm/pkg/spray/export"
	"agrocrm/pkg/spray/repository"
	"agrocrm/pkg/spray/service"
)

const table = "spray_calculations"

type spraySvc struct {
	repo     repository.SprayRepository
	events   realtime.Publisher
	activity activity.Recorder
}

func NewSprayService(r repository.SprayRepository, events realtime.Publisher, rec activity.Recorder) service.SprayService {
	if events == nil {
		events = realtime.Nop{}
	}
	if rec == nil {
		rec = activity.Nop{}
	}
	return &spraySvc{repo: r, events: events, activity: rec}
}

func (s *spraySvc) Calculate(req mix.PlanRequest) (mix.PlanResult, error) {
	req, err := normalize(req)
	if err != nil {
		return mix.PlanResult{}, err
	}
	res, ok := mix.ComputePlan(req)
	metrics.ObservePlan(ok)
	if !ok {
		return mix.PlanResult{}, apperr.Unprocessable(strings.Join(req.Problems(), "; "))
	}
	return res, nil
}

func (s *spraySvc) Save(ctx context.Context, uid, name string, req mix.PlanRequest, result mix.PlanResult) (*entities.SprayCalculation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Invalid("name is required")
	}
	if result.TankCount < 1 {
		return nil, apperr.Invalid("calculate the mix before saving")
	}
	req, err := normalize(req)
	if err != nil {
		return nil, err
	}

	calc := &entities.SprayCalculation{
		UserID:     uid,
		Name:       name,
		Area:       req.Area,
		SprayRate:  req.ApplicationRate,
		TankVolume: req.TankCapacity,
		Products:   req.Products,
		Results:    result,
	}
	if err := s.repo.Create(calc); err != nil {
		return nil, errors.Wrap(err, "save spray calculation")
	}
	metrics.IncRecord(table, "create")
	log.Printf("[spray] saved #%d %q for %s (%d tanks)", calc.CalcID, calc.Name, uid, result.TankCount)

	s.events.Publish(ctx, realtime.NewEvent(table, realtime.Insert, uid, calc.CalcID, calc))
	s.activity.Record(ctx, entities.Activity{
		UserID:      uid,
		Type:        activity.TypeSpray,
		Title:       "Cálculo de calda salvo",
		Description: fmt.Sprintf("%s: %d L em %d tanque(s)", calc.Name, result.TotalWater, result.TankCount),
		Metadata:    map[string]any{"calc_id": calc.CalcID},
	})
	return calc, nil
}

func (s *spraySvc) List(uid string) ([]entities.SprayCalculation, error) {
	list, err := s.repo.ListByUser(uid)
	return list, errors.Wrap(err, "list spray calculations")
}

func (s *spraySvc) Get(uid string, id uint) (*entities.SprayCalculation, error) {
	calc, err := s.repo.FindByID(id, uid)
	if err != nil {
		return nil, errors.Wrapf(err, "get spray calculation %d", id)
	}
	return calc, nil
}

func (s *spraySvc) Delete(ctx context.Context, uid string, id uint) error {
	n, err := s.repo.Delete(id, uid)
	if err != nil {
		return errors.Wrapf(err, "delete spray calculation %d", id)
	}
	if n == 0 {
		return errors.Wrapf(apperr.ErrNotFound, "spray calculation %d", id)
	}
	metrics.IncRecord(table, "delete")
	s.events.Publish(ctx, realtime.NewEvent(table, realtime.Delete, uid, id, nil))
	return nil
}

func (s *spraySvc) Export(uid string, id uint, format string) (*export.Document, error) {
	calc, err := s.Get(uid, id)
	if err != nil {
		return nil, err
	}
	return export.Render(calc, format)
}

// normalize trims product names, defaults an empty unit to L/ha and rejects
// units outside the supported set. The caller's slice is never modified.
func normalize(req mix.PlanRequest) (mix.PlanRequest, error) {
	products := make([]mix.Product, len(req.Products))
	for i, p := range req.Products {
		p.Name = strings.TrimSpace(p.Name)
		if p.Unit == "" {
			p.Unit = mix.LitersPerHectare
		}
		if !p.Unit.Valid() {
			return req, apperr.Invalid(fmt.Sprintf("unsupported unit %q for product %q", p.Unit, p.Name))
		}
		products[i] = p
	}
	req.Products = products
	return req, nil
}
