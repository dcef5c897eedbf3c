package repository

import "agrocrm/entities"

type Repo interface {
	Create(f *entities.DroneFlight) error
	Update(f *entities.DroneFlight) error
	FindByID(id uint, uid string) (*entities.DroneFlight, error)
	ListByUser(uid string) ([]entities.DroneFlight, error)
	Delete(id uint, uid string) (int64, error)
	Count(uid string) (int64, error)
}
