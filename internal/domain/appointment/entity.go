package appointment

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"medappointment/internal/domain/auth"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no-show"
)

// ActiveStatuses hold the doctor's time slot.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

// ParseStatus accepts any casing and surrounding spaces.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return st, true
	}
	return "", false
}

const (
	DefaultDuration = 30
	MinDuration     = 15
	MaxDuration     = 180
)

// slotIndex backs the overlap check against concurrent bookings of the exact same start.
const slotIndex = "idx_appointments_doctor_slot"

type Appointment struct {
	ID              string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	DoctorID        string    `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_appointments_doctor_slot,where:status = 'pending' OR status = 'confirmed'" json:"doctor_id"`
	PatientID       string    `gorm:"type:varchar(36);not null;index" json:"patient_id"`
	AppointmentDate time.Time `gorm:"not null;uniqueIndex:idx_appointments_doctor_slot,where:status = 'pending' OR status = 'confirmed'" json:"appointment_date"`
	Duration        int       `gorm:"not null;default:30" json:"duration"`
	Reason          string    `gorm:"type:text;not null" json:"reason"`
	Notes           string    `gorm:"type:text" json:"notes,omitempty"`
	Status          Status    `gorm:"type:varchar(16);not null;default:pending;index" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Doctor  *auth.Summary `gorm:"-" json:"doctor,omitempty"`
	Patient *auth.Summary `gorm:"-" json:"patient,omitempty"`
}

func (Appointment) TableName() string { return "appointments" }

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (a *Appointment) EndsAt() time.Time {
	return a.AppointmentDate.Add(time.Duration(a.Duration) * time.Minute)
}

// Overlaps reports whether [start, end) intersects the appointment.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return start.Before(a.EndsAt()) && a.AppointmentDate.Before(end)
}

func (a *Appointment) IsParticipant(userID string) bool {
	return a.DoctorID == userID || a.PatientID == userID
}
