package serviceImp

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"agrocrm/entities"
	"agrocrm/pkg/activity"
	"agrocrm/pkg/apperr"
	"agrocrm/pkg/lead/repository"
	"agrocrm/pkg/lead/service"
	"agrocrm/pkg/metrics"
	"agrocrm/pkg/realtime"
)

const table = "leads"

type leadSvc struct {
	repo     repository.LeadRepository
	events   realtime.Publisher
	activity activity.Recorder
}

func NewLeadService(r repository.LeadRepository, events realtime.Publisher, rec activity.Recorder) service.LeadService {
	if events == nil {
		events = realtime.Nop{}
	}
	if rec == nil {
		rec = activity.Nop{}
	}
	return &leadSvc{repo: r, events: events, activity: rec}
}

func (s *leadSvc) Save(ctx context.Context, uid string, l *entities.Lead) (*entities.Lead, error) {
	if l == nil {
		return nil, apperr.Invalid("lead is required")
	}
	if err := clean(l); err != nil {
		return nil, err
	}

	if l.LeadID == 0 {
		l.UserID = uid
		if err := s.repo.Create(l); err != nil {
			return nil, errors.Wrap(err, "create lead")
		}
		metrics.IncRecord(table, "create")
		s.events.Publish(ctx, realtime.NewEvent(table, realtime.Insert, uid, l.LeadID, l))
		s.activity.Record(ctx, entities.Activity{
			UserID:      uid,
			Type:        activity.TypeLead,
			Title:       "Novo lead",
			Description: fmt.Sprintf("%s (%s)", l.Name, lo.Ternary(l.Farm != "", l.Farm, "sem fazenda")),
			Metadata:    map[string]any{"lead_id": l.LeadID, "status": l.Status},
		})
		return l, nil
	}

	cur, err := s.repo.FindByID(l.LeadID, uid)
	if err != nil {
		return nil, errors.Wrapf(err, "find lead %d", l.LeadID)
	}
	l.UserID = cur.UserID
	l.CreatedAt = cur.CreatedAt
	if err := s.repo.Update(l); err != nil {
		return nil, errors.Wrapf(err, "update lead %d", l.LeadID)
	}
	metrics.IncRecord(table, "update")
	s.events.Publish(ctx, realtime.NewEvent(table, realtime.Update, uid, l.LeadID, l))
	return l, nil
}

func (s *leadSvc) List(uid string, f repository.Filter) ([]entities.Lead, error) {
	list, err := s.repo.List(uid, f)
	return list, errors.Wrap(err, "list leads")
}

func (s *leadSvc) Stats(uid string) (service.Stats, error) {
	counts, err := s.repo.CountByStatus(uid)
	if err != nil {
		return service.Stats{}, errors.Wrap(err, "count leads")
	}
	return service.Stats{
		Total: lo.Sum(lo.Values(counts)),
		Cold:  counts[entities.LeadCold],
		Warm:  counts[entities.LeadWarm],
		Hot:   counts[entities.LeadHot],
	}, nil
}

func (s *leadSvc) Delete(ctx context.Context, uid string, id uint) error {
	n, err := s.repo.Delete(id, uid)
	if err != nil {
		return errors.Wrapf(err, "delete lead %d", id)
	}
	if n == 0 {
		return errors.Wrapf(apperr.ErrNotFound, "lead %d", id)
	}
	metrics.IncRecord(table, "delete")
	s.events.Publish(ctx, realtime.NewEvent(table, realtime.Delete, uid, id, nil))
	return nil
}

func clean(l *entities.Lead) error {
	l.Name = strings.TrimSpace(l.Name)
	l.Phone = strings.TrimSpace(l.Phone)
	l.Email = strings.TrimSpace(l.Email)
	l.Farm = strings.TrimSpace(l.Farm)

	var missing []string
	if l.Name == "" {
		missing = append(missing, "name")
	}
	if l.Phone == "" {
		missing = append(missing, "phone")
	}
	if l.Email == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return apperr.Invalid(strings.Join(missing, ", ") + " required")
	}
	if l.Status == "" {
		l.Status = entities.LeadCold
	}
	if !lo.Contains(entities.LeadStatuses, l.Status) {
		return apperr.Invalid(fmt.Sprintf("invalid status %q", l.Status))
	}
	if l.Hectares < 0 {
		return apperr.Invalid("hectares cannot be negative")
	}
	return nil
}
