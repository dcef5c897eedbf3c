package entities

import "time"

const (
	AppointmentPending    = "pendente"
	AppointmentInProgress = "andamento"
	AppointmentDone       = "concluida"
)

var (
	AppointmentTypes    = []string{"tarefa", "servico", "visita", "suporte"}
	AppointmentStatuses = []string{AppointmentPending, AppointmentInProgress, AppointmentDone}
)

type Appointment struct {
	AppointmentID uint    `gorm:"primaryKey" json:"appointment_id"`
	UserID        string  `json:"user_id" gorm:"index"`
	Type          string  `json:"type"` // tarefa|servico|visita|suporte
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Date          string  `json:"date" gorm:"index"` // YYYY-MM-DD
	Time          string  `json:"time"`              // HH:MM:SS
	EndTime       *string `json:"end_time"`
	Responsible   string  `json:"responsible"`
	Client        string  `json:"client"`
	Location      string  `json:"location"`
	Status        string  `json:"status"` // pendente|andamento|concluida
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
