package repositoryImp

import (
	"gorm.io/gorm"

	"agrocrm/entities"
	"agrocrm/pkg/drone/repository"
)

type sqliteRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.Repo { return &sqliteRepo{db: db} }

func (r *sqliteRepo) Create(f *entities.DroneFlight) error { return r.db.Create(f).Error }

func (r *sqliteRepo) Update(f *entities.DroneFlight) error { return r.db.Save(f).Error }

func (r *sqliteRepo) FindByID(id uint, uid string) (*entities.DroneFlight, error) {
	var out entities.DroneFlight
	if err := r.db.Where("flight_id = ? AND user_id = ?", id, uid).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *sqliteRepo) ListByUser(uid string) ([]entities.DroneFlight, error) {
	var list []entities.DroneFlight
	return list, r.db.Where("user_id = ?", uid).Order("flight_date desc, flight_id desc").Find(&list).Error
}

func (r *sqliteRepo) Delete(id uint, uid string) (int64, error) {
	res := r.db.Where("flight_id = ? AND user_id = ?", id, uid).Delete(&entities.DroneFlight{})
	return res.RowsAffected, res.Error
}

func (r *sqliteRepo) Count(uid string) (int64, error) {
	var n int64
	return n, r.db.Model(&entities.DroneFlight{}).Where("user_id = ?", uid).Count(&n).Error
}
