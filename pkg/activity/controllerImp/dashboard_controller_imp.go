package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"agrocrm/entities"
	"agrocrm/pkg/activity/repository"
	"agrocrm/pkg/apperr"
	leadsvc "agrocrm/pkg/lead/service"
)

type leadStats interface {
	Stats(uid string) (leadsvc.Stats, error)
}

type todayLister interface {
	Today(uid string, now time.Time) ([]entities.Appointment, error)
}

type counter interface {
	Count(uid string) (int64, error)
}

type Summary struct {
	Leads             leadsvc.Stats       `json:"leads"`
	AppointmentsToday int                 `json:"appointments_today"`
	Calculations      int64               `json:"calculations"`
	Flights           int64               `json:"flights"`
	Recent            []entities.Activity `json:"recent_activities"`
}

type DashboardCtrl struct {
	acts    repository.ActivityRepository
	leads   leadStats
	appts   todayLister
	sprays  counter
	flights counter
	now     func() time.Time
}

func NewDashboard(acts repository.ActivityRepository, leads leadStats, appts todayLister, sprays, flights counter, loc *time.Location) *DashboardCtrl {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardCtrl{
		acts: acts, leads: leads, appts: appts, sprays: sprays, flights: flights,
		now: func() time.Time { return time.Now().In(loc) },
	}
}

func (h *DashboardCtrl) Get(c echo.Context) error {
	uid := c.Get("uid").(string)
	sum, err := h.summary(uid)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, sum)
}

func (h *DashboardCtrl) summary(uid string) (Summary, error) {
	var (
		out Summary
		err error
	)
	if out.Leads, err = h.leads.Stats(uid); err != nil {
		return out, errors.Wrap(err, "lead stats")
	}
	today, err := h.appts.Today(uid, h.now())
	if err != nil {
		return out, errors.Wrap(err, "appointments today")
	}
	out.AppointmentsToday = len(today)
	if out.Calculations, err = h.sprays.Count(uid); err != nil {
		return out, errors.Wrap(err, "count calculations")
	}
	if out.Flights, err = h.flights.Count(uid); err != nil {
		return out, errors.Wrap(err, "count flights")
	}
	if out.Recent, err = h.acts.Recent(uid, 10); err != nil {
		return out, errors.Wrap(err, "recent activities")
	}
	if out.Recent == nil {
		out.Recent = []entities.Activity{}
	}
	return out, nil
}
