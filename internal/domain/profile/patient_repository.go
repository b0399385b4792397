package profile

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// PatientRepository handles patient profile data access
type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// GetByUserID returns nil, nil when the patient has no profile yet
func (r *PatientRepository) GetByUserID(ctx context.Context, userID string) (*PatientProfile, error) {
	var p PatientProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepository) List(ctx context.Context) ([]PatientProfile, error) {
	var out []PatientProfile
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PatientRepository) Create(ctx context.Context, p *PatientProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PatientRepository) Update(ctx context.Context, p *PatientProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}
