package service

import (
	"context"
	"time"

	"agrocrm/entities"
)

const DefaultUpcoming = 5

type AppointmentService interface {
	Save(ctx context.Context, uid string, a *entities.Appointment) (*entities.Appointment, error)
	List(uid, from, to string) ([]entities.Appointment, error)
	// Today lists the appointments on now's calendar date.
	Today(uid string, now time.Time) ([]entities.Appointment, error)
	// Upcoming lists appointments strictly after now's date, soonest first.
	Upcoming(uid string, now time.Time, limit int) ([]entities.Appointment, error)
	PatchStatus(ctx context.Context, uid string, id uint, status string) (*entities.Appointment, error)
	Delete(ctx context.Context, uid string, id uint) error
}
