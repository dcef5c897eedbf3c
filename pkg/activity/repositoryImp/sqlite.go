package repositoryImp

import (
	"gorm.io/gorm"

	"agrocrm/entities"
	"agrocrm/pkg/activity/repository"
)

type activityRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ActivityRepository { return &activityRepo{db: db} }

func (r *activityRepo) Create(a *entities.Activity) error { return r.db.Create(a).Error }

func (r *activityRepo) Recent(uid string, limit int) ([]entities.Activity, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []entities.Activity
	err := r.db.Where("user_id = ?", uid).
		Order("created_at desc, activity_id desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}
