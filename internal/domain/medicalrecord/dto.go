package medicalrecord

import (
	"time"

	"medappointment/internal/domain/auth"
)

type CreateRecordRequest struct {
	PatientID    string     `json:"patient_id" validate:"required,uuid"`
	DoctorID     string     `json:"doctor_id" validate:"omitempty,uuid"`
	Title        string     `json:"title" validate:"required,min=3,max=255"`
	Diagnosis    string     `json:"diagnosis"`
	Treatment    string     `json:"treatment"`
	Notes        string     `json:"notes"`
	FollowUpDate *time.Time `json:"follow_up_date"`
}

type UpdateRecordRequest struct {
	DoctorID      *string    `json:"doctor_id" validate:"omitempty,uuid"`
	Title         *string    `json:"title" validate:"omitempty,min=3,max=255"`
	Diagnosis     *string    `json:"diagnosis"`
	Treatment     *string    `json:"treatment"`
	Notes         *string    `json:"notes"`
	FollowUpDate  *time.Time `json:"follow_up_date"`
	ClearFollowUp bool       `json:"clear_follow_up"`
}

type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool   { return a.Role == string(auth.RoleAdmin) }
func (a Actor) IsDoctor() bool  { return a.Role == string(auth.RoleDoctor) }
func (a Actor) IsPatient() bool { return a.Role == string(auth.RolePatient) }

// CanAccess: admins see everything, doctors see unassigned records and their
// own, patients see their own.
func (a Actor) CanAccess(r *Record) bool {
	switch {
	case a.IsAdmin():
		return true
	case a.IsDoctor():
		return r.DoctorID == nil || *r.DoctorID == a.UserID
	case a.IsPatient():
		return r.PatientID == a.UserID
	}
	return false
}
