package serviceImp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"agrocrm/entities"
	"agrocrm/pkg/activity"
	"agrocrm/pkg/appointment"
	"agrocrm/pkg/appointment/repository"
	"agrocrm/pkg/appointment/service"
	"agrocrm/pkg/apperr"
	"agrocrm/pkg/metrics"
	"agrocrm/pkg/realtime"
)

const table = "appointments"

type apptSvc struct {
	r        repository.AppointmentRepository
	events   realtime.Publisher
	activity activity.Recorder
}

func NewAppointmentService(r repository.AppointmentRepository, events realtime.Publisher, rec activity.Recorder) service.AppointmentService {
	if events == nil {
		events = realtime.Nop{}
	}
	if rec == nil {
		rec = activity.Nop{}
	}
	return &apptSvc{r: r, events: events, activity: rec}
}

func (s *apptSvc) Save(ctx context.Context, uid string, a *entities.Appointment) (*entities.Appointment, error) {
	if a == nil {
		return nil, apperr.Invalid("appointment is required")
	}
	if err := clean(a); err != nil {
		return nil, err
	}

	if a.AppointmentID == 0 {
		a.UserID = uid
		if err := s.r.Create(a); err != nil {
			return nil, errors.Wrap(err, "create appointment")
		}
		metrics.IncRecord(table, "create")
		s.events.Publish(ctx, realtime.NewEvent(table, realtime.Insert, uid, a.AppointmentID, a))
		s.activity.Record(ctx, entities.Activity{
			UserID:      uid,
			Type:        activity.TypeAppointment,
			Title:       "Agendamento criado",
			Description: fmt.Sprintf("%s em %s às %s", a.Title, a.Date, appointment.DisplayTime(a.Time)),
			Metadata:    map[string]any{"appointment_id": a.AppointmentID, "type": a.Type},
		})
		return a, nil
	}

	cur, err := s.r.FindByID(a.AppointmentID, uid)
	if err != nil {
		return nil, errors.Wrapf(err, "find appointment %d", a.AppointmentID)
	}
	a.UserID = cur.UserID
	a.CreatedAt = cur.CreatedAt
	if err := s.r.Update(a); err != nil {
		return nil, errors.Wrapf(err, "update appointment %d", a.AppointmentID)
	}
	metrics.IncRecord(table, "update")
	s.events.Publish(ctx, realtime.NewEvent(table, realtime.Update, uid, a.AppointmentID, a))
	return a, nil
}

func (s *apptSvc) List(uid, from, to string) ([]entities.Appointment, error) {
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(appointment.DateLayout, d); err != nil {
			return nil, apperr.Invalid(fmt.Sprintf("invalid date %q, want YYYY-MM-DD", d))
		}
	}
	out, err := s.r.List(uid, from, to)
	return out, errors.Wrap(err, "list appointments")
}

func (s *apptSvc) Today(uid string, now time.Time) ([]entities.Appointment, error) {
	out, err := s.r.OnDate(uid, now.Format(appointment.DateLayout))
	return out, errors.Wrap(err, "today's appointments")
}

func (s *apptSvc) Upcoming(uid string, now time.Time, limit int) ([]entities.Appointment, error) {
	if limit <= 0 {
		limit = service.DefaultUpcoming
	}
	out, err := s.r.After(uid, now.Format(appointment.DateLayout), limit)
	return out, errors.Wrap(err, "upcoming appointments")
}

func (s *apptSvc) PatchStatus(ctx context.Context, uid string, id uint, status string) (*entities.Appointment, error) {
	if !lo.Contains(entities.AppointmentStatuses, status) {
		return nil, apperr.Invalid(fmt.Sprintf("invalid status %q", status))
	}
	n, err := s.r.PatchStatus(id, uid, status)
	if err != nil {
		return nil, errors.Wrapf(err, "patch appointment %d", id)
	}
	if n == 0 {
		return nil, errors.Wrapf(apperr.ErrNotFound, "appointment %d", id)
	}
	cur, err := s.r.FindByID(id, uid)
	if err != nil {
		return nil, errors.Wrapf(err, "reload appointment %d", id)
	}
	metrics.IncRecord(table, "update")
	s.events.Publish(ctx, realtime.NewEvent(table, realtime.Update, uid, id, cur))
	if status == entities.AppointmentDone {
		s.activity.Record(ctx, entities.Activity{
			UserID:   uid,
			Type:     activity.TypeAppointment,
			Title:    "Agendamento concluído",
			Metadata: map[string]any{"appointment_id": id},
		})
	}
	return cur, nil
}

func (s *apptSvc) Delete(ctx context.Context, uid string, id uint) error {
	n, err := s.r.Delete(id, uid)
	if err != nil {
		return errors.Wrapf(err, "delete appointment %d", id)
	}
	if n == 0 {
		return errors.Wrapf(apperr.ErrNotFound, "appointment %d", id)
	}
	metrics.IncRecord(table, "delete")
	s.events.Publish(ctx, realtime.NewEvent(table, realtime.Delete, uid, id, nil))
	return nil
}

func clean(a *entities.Appointment) error {
	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		return apperr.Invalid("title is required")
	}
	if _, err := time.Parse(appointment.DateLayout, a.Date); err != nil {
		return apperr.Invalid("date must be YYYY-MM-DD")
	}
	t, err := appointment.NormalizeTime(a.Time)
	if err != nil {
		return apperr.Invalid(err.Error())
	}
	a.Time = t
	if a.EndTime != nil && strings.TrimSpace(*a.EndTime) == "" {
		a.EndTime = nil
	}
	if a.EndTime != nil {
		end, err := appointment.NormalizeTime(*a.EndTime)
		if err != nil {
			return apperr.Invalid(err.Error())
		}
		// HH:MM:SS compares correctly as a string
		if end <= a.Time {
			return apperr.Invalid("end time must be after start time")
		}
		a.EndTime = &end
	}
	if a.Type == "" {
		a.Type = entities.AppointmentTypes[0]
	}
	if !lo.Contains(entities.AppointmentTypes, a.Type) {
		return apperr.Invalid(fmt.Sprintf("invalid type %q", a.Type))
	}
	if a.Status == "" {
		a.Status = entities.AppointmentPending
	}
	if !lo.Contains(entities.AppointmentStatuses, a.Status) {
		return apperr.Invalid(fmt.Sprintf("invalid status %q", a.Status))
	}
	return nil
}
