package appointment

import "time"

type CreateAppointmentRequest struct {
	DoctorID        string    `json:"doctor_id" validate:"required,uuid"`
	PatientID       string    `json:"patient_id" validate:"omitempty,uuid"`
	AppointmentDate time.Time `json:"appointment_date" validate:"required"`
	Duration        int       `json:"duration" validate:"omitempty,min=15,max=180"`
	Reason          string    `json:"reason" validate:"required,min=5"`
	Notes           string    `json:"notes"`
}

type UpdateAppointmentRequest struct {
	AppointmentDate *time.Time `json:"appointment_date"`
	Duration        *int       `json:"duration" validate:"omitempty,min=15,max=180"`
	Reason          *string    `json:"reason" validate:"omitempty,min=5"`
	Notes           *string    `json:"notes"`
	Status          *string    `json:"status"`
}

// Actor is the authenticated caller.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool   { return a.Role == string(roleAdmin) }
func (a Actor) IsDoctor() bool  { return a.Role == string(roleDoctor) }
func (a Actor) IsPatient() bool { return a.Role == string(rolePatient) }
