package medicalrecord

import (
	"context"

	"medappointment/internal/domain/auth"
)

type RecordRepository interface {
	Create(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id string) (*Record, error)
	ListByPatient(ctx context.Context, patientID string) ([]Record, error)
	Update(ctx context.Context, r *Record) error
	// Delete removes the record together with its document rows.
	Delete(ctx context.Context, id string) error

	// CreateDocuments inserts every row in one transaction.
	CreateDocuments(ctx context.Context, docs []Document) error
	GetDocument(ctx context.Context, id string) (*Document, error)
	ListDocuments(ctx context.Context, recordID string) ([]Document, error)
	DeleteDocument(ctx context.Context, id string) error
}

type UserReader interface {
	GetByID(ctx context.Context, id string) (*auth.User, error)
}

// DocumentNotifier is satisfied by notification.Service
type DocumentNotifier interface {
	NotifyDocumentAdded(ctx context.Context, patientID, recordID, documentName string) error
}
