package activity

import (
	"context"
	"log"

	"agrocrm/entities"
	"agrocrm/pkg/activity/repository"
)

const (
	TypeLead        = "lead"
	TypeAppointment = "appointment"
	TypeSpray       = "spray"
	TypeFlight      = "flight"
)

// Recorder appends to the user's activity timeline.
type Recorder interface {
	Record(ctx context.Context, a entities.Activity)
}

// Nop drops activities.
type Nop struct{}

func (Nop) Record(context.Context, entities.Activity) {}

type repoRecorder struct{ repo repository.ActivityRepository }

// NewRecorder writes through repo. A failed write is logged and never fails
// the operation that produced it.
func NewRecorder(repo repository.ActivityRepository) Recorder { return &repoRecorder{repo: repo} }

func (r *repoRecorder) Record(_ context.Context, a entities.Activity) {
	if a.UserID == "" {
		return
	}
	if err := r.repo.Create(&a); err != nil {
		log.Printf("[activity] record %s %q for %s: %v", a.Type, a.Title, a.UserID, err)
	}
}
