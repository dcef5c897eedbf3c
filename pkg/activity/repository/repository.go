package repository

import "agrocrm/entities"

type ActivityRepository interface {
	Create(a *entities.Activity) error
	Recent(uid string, limit int) ([]entities.Activity, error)
}
