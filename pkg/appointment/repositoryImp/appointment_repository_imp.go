package repositoryImp

import (
	"gorm.io/gorm"

	"agrocrm/entities"
	"agrocrm/pkg/appointment/repository"
)

const chronological = "date ASC, time ASC, appointment_id ASC"

type apptRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.AppointmentRepository { return &apptRepo{db} }

func (r *apptRepo) Create(a *entities.Appointment) error { return r.db.Create(a).Error }

func (r *apptRepo) Update(a *entities.Appointment) error { return r.db.Save(a).Error }

func (r *apptRepo) FindByID(id uint, uid string) (*entities.Appointment, error) {
	var a entities.Appointment
	if err := r.db.Where("appointment_id = ? AND user_id = ?", id, uid).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *apptRepo) List(uid, from, to string) ([]entities.Appointment, error) {
	q := r.db.Where("user_id = ?", uid)
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}
	var out []entities.Appointment
	if err := q.Order(chronological).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *apptRepo) OnDate(uid, date string) ([]entities.Appointment, error) {
	var out []entities.Appointment
	err := r.db.Where("user_id = ? AND date = ?", uid, date).Order(chronological).Find(&out).Error
	return out, err
}

func (r *apptRepo) After(uid, date string, limit int) ([]entities.Appointment, error) {
	var out []entities.Appointment
	err := r.db.Where("user_id = ? AND date > ?", uid, date).Order(chronological).Limit(limit).Find(&out).Error
	return out, err
}

func (r *apptRepo) PatchStatus(id uint, uid, status string) (int64, error) {
	res := r.db.Model(&entities.Appointment{}).
		Where("appointment_id = ? AND user_id = ?", id, uid).
		Updates(map[string]any{"status": status})
	return res.RowsAffected, res.Error
}

func (r *apptRepo) Delete(id uint, uid string) (int64, error) {
	res := r.db.Where("appointment_id = ? AND user_id = ?", id, uid).Delete(&entities.Appointment{})
	return res.RowsAffected, res.Error
}
