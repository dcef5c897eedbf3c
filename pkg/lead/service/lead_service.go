package service

import (
	"context"

	"agrocrm/entities"
	"agrocrm/pkg/lead/repository"
)

type Stats struct {
	Total int64 `json:"total"`
	Cold  int64 `json:"frio"`
	Warm  int64 `json:"morno"`
	Hot   int64 `json:"quente"`
}

type LeadService interface {
	// Save creates the lead when LeadID is zero and updates it otherwise.
	Save(ctx context.Context, uid string, l *entities.Lead) (*entities.Lead, error)
	List(uid string, f repository.Filter) ([]entities.Lead, error)
	Stats(uid string) (Stats, error)
	Delete(ctx context.Context, uid string, id uint) error
}
