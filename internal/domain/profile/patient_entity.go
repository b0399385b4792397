package profile

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"medappointment/internal/domain/auth"
)

// PatientProfile represents a patient's medical background
type PatientProfile struct {
	ID     string `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID string `gorm:"type:varchar(36);uniqueIndex;not null" json:"user_id"`

	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	BloodGroup       string     `gorm:"type:varchar(8)" json:"blood_group,omitempty"`
	Allergies        string     `json:"allergies,omitempty"`
	MedicalHistory   string     `json:"medical_history,omitempty"`
	EmergencyContact string     `json:"emergency_contact,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *auth.Summary `gorm:"-" json:"user,omitempty"`
}

func (PatientProfile) TableName() string { return "patient_profiles" }

func (p *PatientProfile) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
