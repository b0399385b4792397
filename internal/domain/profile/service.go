package profile

import (
	"context"
	"errors"
	"time"

	"medappointment/internal/database"
	"medappointment/internal/domain/auth"
)

// UserReader resolves the account behind a profile.
type UserReader interface {
	GetByID(ctx context.Context, id string) (*auth.User, error)
}

// Service handles profile business logic
type Service struct {
	doctorRepo  *DoctorRepository
	patientRepo *PatientRepository
	users       UserReader
}

func NewService(doctorRepo *DoctorRepository, patientRepo *PatientRepository, users UserReader) *Service {
	return &Service{
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		users:       users,
	}
}

func (s *Service) CreateDoctorProfile(ctx context.Context, userID string, req CreateDoctorProfileRequest) (*DoctorProfile, error) {
	existing, err := s.doctorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProfileAlreadyExists
	}

	taken, err := s.doctorRepo.GetByLicense(ctx, req.LicenseNumber)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, ErrLicenseNumberTaken
	}

	if !validWindow(req.AvailableFrom, req.AvailableTo) {
		return nil, ErrInvalidAvailability
	}

	p := &DoctorProfile{
		UserID:          userID,
		LicenseNumber:   req.LicenseNumber,
		Specialty:       req.Specialty,
		YearsExperience: req.YearsExperience,
		Bio:             req.Bio,
		ConsultationFee: req.ConsultationFee,
		AvailableFrom:   req.AvailableFrom,
		AvailableTo:     req.AvailableTo,
	}
	if err := s.doctorRepo.Create(ctx, p); err != nil {
		if database.IsUniqueViolation(err, "") {
			return nil, ErrLicenseNumberTaken
		}
		return nil, err
	}

	return p, s.attachUser(ctx, p.UserID, &p.User)
}

func (s *Service) UpdateDoctorProfile(ctx context.Context, userID string, req UpdateDoctorProfileRequest) (*DoctorProfile, error) {
	p, err := s.doctorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}

	if req.Specialty != nil {
		p.Specialty = *req.Specialty
	}
	if req.YearsExperience != nil {
		p.YearsExperience = *req.YearsExperience
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	if req.ConsultationFee != nil {
		p.ConsultationFee = *req.ConsultationFee
	}
	if req.AvailableFrom != nil {
		p.AvailableFrom = *req.AvailableFrom
	}
	if req.AvailableTo != nil {
		p.AvailableTo = *req.AvailableTo
	}
	if !validWindow(p.AvailableFrom, p.AvailableTo) {
		return nil, ErrInvalidAvailability
	}

	if err := s.doctorRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, s.attachUser(ctx, p.UserID, &p.User)
}

func (s *Service) GetDoctorProfile(ctx context.Context, userID string) (*DoctorProfile, error) {
	p, err := s.doctorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, s.attachUser(ctx, p.UserID, &p.User)
}

func (s *Service) ListDoctors(ctx context.Context, specialty Specialty) ([]DoctorProfile, error) {
	list, err := s.doctorRepo.List(ctx, specialty)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if err := s.attachUser(ctx, list[i].UserID, &list[i].User); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (s *Service) CreatePatientProfile(ctx context.Context, userID string, req PatientProfileRequest) (*PatientProfile, error) {
	existing, err := s.patientRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProfileAlreadyExists
	}

	p := &PatientProfile{UserID: userID}
	applyPatient(p, req)
	if err := s.patientRepo.Create(ctx, p); err != nil {
		if database.IsUniqueViolation(err, "") {
			return nil, ErrProfileAlreadyExists
		}
		return nil, err
	}
	return p, s.attachUser(ctx, p.UserID, &p.User)
}

func (s *Service) UpdatePatientProfile(ctx context.Context, userID string, req PatientProfileRequest) (*PatientProfile, error) {
	p, err := s.patientRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}

	applyPatient(p, req)
	if err := s.patientRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, s.attachUser(ctx, p.UserID, &p.User)
}

func (s *Service) GetPatientProfile(ctx context.Context, userID string) (*PatientProfile, error) {
	p, err := s.patientRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, s.attachUser(ctx, p.UserID, &p.User)
}

func (s *Service) ListPatients(ctx context.Context) ([]PatientProfile, error) {
	list, err := s.patientRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if err := s.attachUser(ctx, list[i].UserID, &list[i].User); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (s *Service) attachUser(ctx context.Context, userID string, dst **auth.Summary) error {
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, auth.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	summary := u.Summary()
	*dst = &summary
	return nil
}

func applyPatient(p *PatientProfile, req PatientProfileRequest) {
	if req.DateOfBirth != nil {
		p.DateOfBirth = req.DateOfBirth
	}
	if req.BloodGroup != nil {
		p.BloodGroup = *req.BloodGroup
	}
	if req.Allergies != nil {
		p.Allergies = *req.Allergies
	}
	if req.MedicalHistory != nil {
		p.MedicalHistory = *req.MedicalHistory
	}
	if req.EmergencyContact != nil {
		p.EmergencyContact = *req.EmergencyContact
	}
}

// validWindow accepts a missing bound.
func validWindow(from, to string) bool {
	if from == "" || to == "" {
		return true
	}
	f, err1 := time.Parse("15:04", from)
	t, err2 := time.Parse("15:04", to)
	return err1 == nil && err2 == nil && f.Before(t)
}
