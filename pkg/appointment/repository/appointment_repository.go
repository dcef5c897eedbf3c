package repository

import "agrocrm/entities"

type AppointmentRepository interface {
	Create(a *entities.Appointment) error
	Update(a *entities.Appointment) error
	FindByID(id uint, uid string) (*entities.Appointment, error)
	// List returns appointments between from and to (YYYY-MM-DD, inclusive, either may be empty).
	List(uid, from, to string) ([]entities.Appointment, error)
	OnDate(uid, date string) ([]entities.Appointment, error)
	After(uid, date string, limit int) ([]entities.Appointment, error)
	PatchStatus(id uint, uid, status string) (int64, error)
	Delete(id uint, uid string) (int64, error)
}
