package repository

import "agrocrm/entities"

type SprayRepository interface {
	Create(c *entities.SprayCalculation) error
	FindByID(id uint, uid string) (*entities.SprayCalculation, error)
	ListByUser(uid string) ([]entities.SprayCalculation, error)
	// Delete reports how many rows were removed; 0 means missing or not owned by uid.
	Delete(id uint, uid string) (int64, error)
	Count(uid string) (int64, error)
}
