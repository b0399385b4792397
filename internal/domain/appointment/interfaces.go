package appointment

import (
	"context"
	"time"

	"medappointment/internal/domain/auth"
)

const (
	roleAdmin   = auth.RoleAdmin
	roleDoctor  = auth.RoleDoctor
	rolePatient = auth.RolePatient
)

// AppointmentRepository defines the storage operations the service uses
type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id string) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ListFilter) ([]Appointment, error)
	ActiveForDoctorBetween(ctx context.Context, doctorID string, from, to time.Time) ([]Appointment, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id string) (*auth.User, error)
}

// NotificationSender is satisfied by notification.Service
type NotificationSender interface {
	NotifyAppointmentBooked(ctx context.Context, doctorID, appointmentID, patientName string, at time.Time) error
	NotifyAppointmentCancelled(ctx context.Context, userID, appointmentID string, at time.Time) error
}

// ListFilter narrows List; empty fields match everything.
type ListFilter struct {
	DoctorID  string
	PatientID string
	Status    Status
}
