package repositoryImp

import (
	"strings"

	"gorm.io/gorm"

	"agrocrm/entities"
	"agrocrm/pkg/lead/repository"
)

type leadRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.LeadRepository { return &leadRepo{db: db} }

func (r *leadRepo) Create(l *entities.Lead) error { return r.db.Create(l).Error }

func (r *leadRepo) Update(l *entities.Lead) error { return r.db.Save(l).Error }

func (r *leadRepo) FindByID(id uint, uid string) (*entities.Lead, error) {
	var l entities.Lead
	if err := r.db.Where("lead_id = ? AND user_id = ?", id, uid).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// likeEscaper makes search text match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *leadRepo) List(uid string, f repository.Filter) ([]entities.Lead, error) {
	q := r.db.Model(&entities.Lead{}).Where("user_id = ?", uid)
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		like := "%" + likeEscaper.Replace(s) + "%"
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\' OR LOWER(farm) LIKE ? ESCAPE '\'`, like, like, like)
	}
	if f.Status != "" && f.Status != "all" {
		q = q.Where("status = ?", f.Status)
	}
	var list []entities.Lead
	return list, q.Order("created_at desc, lead_id desc").Find(&list).Error
}

func (r *leadRepo) CountByStatus(uid string) (map[string]int64, error) {
	var rows []struct {
		Status string
		N      int64
	}
	err := r.db.Model(&entities.Lead{}).
		Select("status, COUNT(*) AS n").
		Where("user_id = ?", uid).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}

func (r *leadRepo) Delete(id uint, uid string) (int64, error) {
	res := r.db.Where("lead_id = ? AND user_id = ?", id, uid).Delete(&entities.Lead{})
	return res.RowsAffected, res.Error
}
