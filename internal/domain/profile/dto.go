package profile

import "time"

type CreateDoctorProfileRequest struct {
	LicenseNumber   string    `json:"license_number" validate:"required,min=5"`
	Specialty       Specialty `json:"specialty" validate:"required,oneof=general_practice cardiology dermatology pediatrics neurology orthopedics gynecology ophthalmology psychiatry radiology other"`
	YearsExperience int       `json:"years_experience" validate:"min=0"`
	Bio             string    `json:"bio"`
	ConsultationFee float64   `json:"consultation_fee" validate:"min=0"`
	AvailableFrom   string    `json:"available_from" validate:"omitempty,hhmm"`
	AvailableTo     string    `json:"available_to" validate:"omitempty,hhmm"`
}

// UpdateDoctorProfileRequest leaves nil fields untouched. The license
// number is fixed once issued.
type UpdateDoctorProfileRequest struct {
	Specialty       *Specialty `json:"specialty" validate:"omitempty,oneof=general_practice cardiology dermatology pediatrics neurology orthopedics gynecology ophthalmology psychiatry radiology other"`
	YearsExperience *int       `json:"years_experience" validate:"omitempty,min=0"`
	Bio             *string    `json:"bio"`
	ConsultationFee *float64   `json:"consultation_fee" validate:"omitempty,min=0"`
	AvailableFrom   *string    `json:"available_from" validate:"omitempty,hhmm"`
	AvailableTo     *string    `json:"available_to" validate:"omitempty,hhmm"`
}

type PatientProfileRequest struct {
	DateOfBirth      *time.Time `json:"date_of_birth"`
	BloodGroup       *string    `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Allergies        *string    `json:"allergies"`
	MedicalHistory   *string    `json:"medical_history"`
	EmergencyContact *string    `json:"emergency_contact"`
}
