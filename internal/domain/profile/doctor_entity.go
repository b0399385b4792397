package profile

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"medappointment/internal/domain/auth"
)

type Specialty string

const (
	SpecialtyGeneralPractice Specialty = "general_practice"
	SpecialtyCardiology      Specialty = "cardiology"
	SpecialtyDermatology     Specialty = "dermatology"
	SpecialtyPediatrics      Specialty = "pediatrics"
	SpecialtyNeurology       Specialty = "neurology"
	SpecialtyOrthopedics     Specialty = "orthopedics"
	SpecialtyGynecology      Specialty = "gynecology"
	SpecialtyOphthalmology   Specialty = "ophthalmology"
	SpecialtyPsychiatry      Specialty = "psychiatry"
	SpecialtyRadiology       Specialty = "radiology"
	SpecialtyOther           Specialty = "other"
)

// DoctorProfile holds the professional details of a doctor account
type DoctorProfile struct {
	ID     string `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID string `gorm:"type:varchar(36);uniqueIndex;not null" json:"user_id"`

	LicenseNumber   string    `gorm:"uniqueIndex;not null" json:"license_number"`
	Specialty       Specialty `gorm:"type:varchar(32);index;not null" json:"specialty"`
	YearsExperience int       `json:"years_experience"`
	Bio             string    `json:"bio,omitempty"`
	ConsultationFee float64   `json:"consultation_fee"`

	// HH:mm, clinic local time
	AvailableFrom string `gorm:"type:varchar(5)" json:"available_from,omitempty"`
	AvailableTo   string `gorm:"type:varchar(5)" json:"available_to,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *auth.Summary `gorm:"-" json:"user,omitempty"`
}

func (DoctorProfile) TableName() string { return "doctor_profiles" }

func (p *DoctorProfile) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
