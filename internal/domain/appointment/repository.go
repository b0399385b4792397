package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, a *Appointment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	var a Appointment
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) Update(ctx context.Context, a *Appointment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Appointment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// List orders by appointment date, earliest first.
func (r *Repository) List(ctx context.Context, f ListFilter) ([]Appointment, error) {
	q := r.db.WithContext(ctx).Order("appointment_date ASC")
	if f.DoctorID != "" {
		q = q.Where("doctor_id = ?", f.DoctorID)
	}
	if f.PatientID != "" {
		q = q.Where("patient_id = ?", f.PatientID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var out []Appointment
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ActiveForDoctorBetween returns pending and confirmed appointments starting in [from, to).
func (r *Repository) ActiveForDoctorBetween(ctx context.Context, doctorID string, from, to time.Time) ([]Appointment, error) {
	var out []Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND status IN ?", doctorID, ActiveStatuses).
		Where("appointment_date >= ? AND appointment_date < ?", from, to).
		Order("appointment_date ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
