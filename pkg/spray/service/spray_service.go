package service

import (
	"context"

	"agrocrm/entities"
	"agrocrm/pkg/mix"
	"agrocrm/pkg/spray/export"
)

type SprayService interface {
	// Calculate runs the planner. A declined plan is an apperr.ErrUnprocessable.
	Calculate(req mix.PlanRequest) (mix.PlanResult, error)
	Save(ctx context.Context, uid, name string, req mix.PlanRequest, result mix.PlanResult) (*entities.SprayCalculation, error)
	List(uid string) ([]entities.SprayCalculation, error)
	Get(uid string, id uint) (*entities.SprayCalculation, error)
	Delete(ctx context.Context, uid string, id uint) error
	Export(uid string, id uint, format string) (*export.Document, error)
}
