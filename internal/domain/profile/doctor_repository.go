package profile

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// DoctorRepository handles doctor profile data access
type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

// GetByUserID returns nil, nil when the doctor has no profile yet
func (r *DoctorRepository) GetByUserID(ctx context.Context, userID string) (*DoctorProfile, error) {
	return r.first(ctx, "user_id = ?", userID)
}

func (r *DoctorRepository) GetByLicense(ctx context.Context, license string) (*DoctorProfile, error) {
	return r.first(ctx, "license_number = ?", license)
}

func (r *DoctorRepository) List(ctx context.Context, specialty Specialty) ([]DoctorProfile, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if specialty != "" {
		q = q.Where("specialty = ?", specialty)
	}
	var out []DoctorProfile
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *DoctorRepository) Create(ctx context.Context, p *DoctorProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *DoctorRepository) Update(ctx context.Context, p *DoctorProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *DoctorRepository) first(ctx context.Context, query string, arg any) (*DoctorProfile, error) {
	var p DoctorProfile
	err := r.db.WithContext(ctx).Where(query, arg).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
