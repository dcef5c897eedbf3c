package repositoryImp

import (
	"gorm.io/gorm"

	"agrocrm/entities"
	"agrocrm/pkg/spray/repository"
)

type sprayRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SprayRepository { return &sprayRepo{db: db} }

func (r *sprayRepo) Create(c *entities.SprayCalculation) error { return r.db.Create(c).Error }

func (r *sprayRepo) FindByID(id uint, uid string) (*entities.SprayCalculation, error) {
	var c entities.SprayCalculation
	if err := r.db.Where("calc_id = ? AND user_id = ?", id, uid).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *sprayRepo) ListByUser(uid string) ([]entities.SprayCalculation, error) {
	var list []entities.SprayCalculation
	return list, r.db.Where("user_id = ?", uid).Order("created_at desc, calc_id desc").Find(&list).Error
}

func (r *sprayRepo) Delete(id uint, uid string) (int64, error) {
	res := r.db.Where("calc_id = ? AND user_id = ?", id, uid).Delete(&entities.SprayCalculation{})
	return res.RowsAffected, res.Error
}

func (r *sprayRepo) Count(uid string) (int64, error) {
	var n int64
	return n, r.db.Model(&entities.SprayCalculation{}).Where("user_id = ?", uid).Count(&n).Error
}
