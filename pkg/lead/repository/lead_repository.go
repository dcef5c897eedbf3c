package repository

import "agrocrm/entities"

type Filter struct {
	Search string
	Status string
}

type LeadRepository interface {
	Create(l *entities.Lead) error
	Update(l *entities.Lead) error
	FindByID(id uint, uid string) (*entities.Lead, error)
	List(uid string, f Filter) ([]entities.Lead, error)
	CountByStatus(uid string) (map[string]int64, error)
	Delete(id uint, uid string) (int64, error)
}
