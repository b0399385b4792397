package medicalrecord

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"medappointment/internal/domain/auth"
)

const (
	staticURLBase   = "/uploads"
	downloadURLBase = "/api/v1/medical-records"
)

type Record struct {
	ID           string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	PatientID    string     `gorm:"type:varchar(36);not null;index" json:"patient_id"`
	DoctorID     *string    `gorm:"type:varchar(36);index" json:"doctor_id,omitempty"`
	Title        string     `gorm:"type:varchar(255);not null" json:"title"`
	Diagnosis    string     `gorm:"type:text" json:"diagnosis,omitempty"`
	Treatment    string     `gorm:"type:text" json:"treatment,omitempty"`
	Notes        string     `gorm:"type:text" json:"notes,omitempty"`
	FollowUpDate *time.Time `json:"follow_up_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Documents []Document `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE" json:"documents"`

	Patient *auth.Summary `gorm:"-" json:"patient,omitempty"`
	Doctor  *auth.Summary `gorm:"-" json:"doctor,omitempty"`
}

func (Record) TableName() string { return "medical_records" }

func (r *Record) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Document is a file attached to a record. FilePath is relative to the
// upload root and always uses forward slashes.
type Document struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	RecordID   string    `gorm:"type:varchar(36);not null;index" json:"record_id"`
	FileName   string    `gorm:"type:varchar(255);not null" json:"file_name"`
	StoredName string    `gorm:"type:varchar(255);not null" json:"stored_name"`
	FilePath   string    `gorm:"type:varchar(512);not null" json:"file_path"`
	MimeType   string    `gorm:"type:varchar(100);not null" json:"mime_type"`
	FileSize   int64     `gorm:"not null" json:"file_size"`
	UploaderID *string   `gorm:"type:varchar(36)" json:"uploader_id,omitempty"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	FileURL     string `gorm:"-" json:"file_url"`
	DownloadURL string `gorm:"-" json:"download_url"`
}

func (Document) TableName() string { return "medical_documents" }

func (d *Document) BeforeCreate(*gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

func (d *Document) AfterCreate(*gorm.DB) error {
	d.setURLs()
	return nil
}

func (d *Document) AfterFind(*gorm.DB) error {
	d.setURLs()
	return nil
}

func (d *Document) setURLs() {
	d.FileURL = staticURLBase + "/" + d.FilePath
	d.DownloadURL = fmt.Sprintf("%s/%s/documents/%s", downloadURLBase, d.RecordID, d.ID)
}
