package medicalrecord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"medappointment/internal/domain/auth"
	"medappointment/internal/pkg/formdata"
)

type Service struct {
	records    RecordRepository
	users      UserReader
	notifs     DocumentNotifier
	uploadRoot string
}

// NewService takes the upload root that document paths are stored relative to.
func NewService(records RecordRepository, users UserReader, notifs DocumentNotifier, uploadRoot string) *Service {
	return &Service{
		records:    records,
		users:      users,
		notifs:     notifs,
		uploadRoot: filepath.Clean(uploadRoot),
	}
}

// CreateRecord is for admins and doctors; a doctor who names no doctor is
// assigned to the record.
func (s *Service) CreateRecord(ctx context.Context, actor Actor, req CreateRecordRequest) (*Record, error) {
	if !actor.IsAdmin() && !actor.IsDoctor() {
		return nil, ErrForbidden
	}
	doctorID := req.DoctorID
	if doctorID == "" && actor.IsDoctor() {
		doctorID = actor.UserID
	}

	patient, err := s.userWithRole(ctx, req.PatientID, auth.RolePatient, ErrInvalidPatient)
	if err != nil {
		return nil, err
	}
	rec := &Record{
		PatientID:    patient.ID,
		Title:        req.Title,
		Diagnosis:    req.Diagnosis,
		Treatment:    req.Treatment,
		Notes:        req.Notes,
		FollowUpDate: req.FollowUpDate,
		Documents:    []Document{},
	}
	if doctorID != "" {
		doctor, err := s.userWithRole(ctx, doctorID, auth.RoleDoctor, ErrInvalidDoctor)
		if err != nil {
			return nil, err
		}
		rec.DoctorID = &doctor.ID
		rec.Doctor = summaryOf(doctor)
	}

	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}
	rec.Patient = summaryOf(patient)
	return rec, nil
}

func (s *Service) GetRecord(ctx context.Context, actor Actor, id string) (*Record, error) {
	rec, err := s.accessible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return rec, s.attach(ctx, rec)
}

// ListByPatient hides records assigned to other doctors from a doctor.
func (s *Service) ListByPatient(ctx context.Context, actor Actor, patientID string) ([]Record, error) {
	if actor.IsPatient() && actor.UserID != patientID {
		return nil, ErrForbidden
	}
	all, err := s.records.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(all))
	for i := range all {
		if !actor.CanAccess(&all[i]) {
			continue
		}
		if err := s.attach(ctx, &all[i]); err != nil {
			return nil, err
		}
		out = append(out, all[i])
	}
	return out, nil
}

func (s *Service) UpdateRecord(ctx context.Context, actor Actor, id string, req UpdateRecordRequest) (*Record, error) {
	if !actor.IsAdmin() && !actor.IsDoctor() {
		return nil, ErrForbidden
	}
	rec, err := s.accessible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.DoctorID != nil {
		doctor, err := s.userWithRole(ctx, *req.DoctorID, auth.RoleDoctor, ErrInvalidDoctor)
		if err != nil {
			return nil, err
		}
		rec.DoctorID = &doctor.ID
	}
	if req.Title != nil {
		rec.Title = *req.Title
	}
	if req.Diagnosis != nil {
		rec.Diagnosis = *req.Diagnosis
	}
	if req.Treatment != nil {
		rec.Treatment = *req.Treatment
	}
	if req.Notes != nil {
		rec.Notes = *req.Notes
	}
	switch {
	case req.ClearFollowUp:
		rec.FollowUpDate = nil
	case req.FollowUpDate != nil:
		rec.FollowUpDate = req.FollowUpDate
	}

	if err := s.records.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, s.attach(ctx, rec)
}

// DeleteRecord removes the record, its document rows and their files.
func (s *Service) DeleteRecord(ctx context.Context, id string) error {
	docs, err := s.records.ListDocuments(ctx, id)
	if err != nil {
		return err
	}
	if err := s.records.Delete(ctx, id); err != nil {
		return err
	}
	for i := range docs {
		s.removeStored(docs[i].FilePath)
	}
	return nil
}

// AddDocuments registers files the upload middleware already wrote to disk.
// Either every file gets a row or none does; on failure all files are removed.
func (s *Service) AddDocuments(ctx context.Context, actor Actor, recordID string, files []*formdata.File) ([]Document, error) {
	rec, err := s.accessible(ctx, actor, recordID)
	if err != nil {
		discard(files)
		return nil, err
	}

	docs := make([]Document, 0, len(files))
	for _, f := range files {
		rel, err := s.relative(f.Path)
		if err != nil {
			discard(files)
			return nil, err
		}
		docs = append(docs, Document{
			RecordID:   rec.ID,
			FileName:   f.OriginalName,
			StoredName: f.Filename,
			FilePath:   rel,
			MimeType:   f.MimeType,
			FileSize:   f.Size,
			UploaderID: &actor.UserID,
		})
	}
	if err := s.records.CreateDocuments(ctx, docs); err != nil {
		discard(files)
		return nil, err
	}

	if actor.UserID != rec.PatientID {
		for _, d := range docs {
			if err := s.notifs.NotifyDocumentAdded(ctx, rec.PatientID, rec.ID, d.FileName); err != nil {
				log.Printf("medical_record_notify_failed record_id=%s error=%q", rec.ID, err.Error())
			}
		}
	}
	return docs, nil
}

func (s *Service) ListDocuments(ctx context.Context, actor Actor, recordID string) ([]Document, error) {
	if _, err := s.accessible(ctx, actor, recordID); err != nil {
		return nil, err
	}
	return s.records.ListDocuments(ctx, recordID)
}

// OpenDocument returns the document and the absolute path of its file.
func (s *Service) OpenDocument(ctx context.Context, actor Actor, recordID, documentID string) (*Document, string, error) {
	doc, err := s.document(ctx, actor, recordID, documentID)
	if err != nil {
		return nil, "", err
	}
	path, err := s.absolute(doc.FilePath)
	if err != nil {
		return nil, "", err
	}
	return doc, path, nil
}

func (s *Service) DeleteDocument(ctx context.Context, actor Actor, recordID, documentID string) error {
	doc, err := s.document(ctx, actor, recordID, documentID)
	if err != nil {
		return err
	}
	if err := s.records.DeleteDocument(ctx, doc.ID); err != nil {
		return err
	}
	s.removeStored(doc.FilePath)
	return nil
}

func (s *Service) document(ctx context.Context, actor Actor, recordID, documentID string) (*Document, error) {
	if _, err := s.accessible(ctx, actor, recordID); err != nil {
		return nil, err
	}
	doc, err := s.records.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.RecordID != recordID {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

func (s *Service) accessible(ctx context.Context, actor Actor, id string) (*Record, error) {
	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(rec) {
		return nil, ErrForbidden
	}
	return rec, nil
}

// relative converts a stored file path into the forward-slash form kept in the DB.
func (s *Service) relative(path string) (string, error) {
	rel, err := filepath.Rel(s.uploadRoot, path)
	if err != nil {
		return "", fmt.Errorf("relative document path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	return filepath.ToSlash(rel), nil
}

func (s *Service) absolute(rel string) (string, error) {
	path := filepath.Join(s.uploadRoot, filepath.FromSlash(rel))
	if _, err := s.relative(path); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Service) removeStored(rel string) {
	path, err := s.absolute(rel)
	if err != nil {
		log.Printf("medical_document_remove_skipped path=%q error=%q", rel, err.Error())
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("medical_document_remove_failed path=%q error=%q", rel, err.Error())
	}
}

func (s *Service) attach(ctx context.Context, rec *Record) error {
	if rec.Documents == nil {
		rec.Documents = []Document{}
	}
	patient, err := s.users.GetByID(ctx, rec.PatientID)
	switch {
	case err == nil:
		rec.Patient = summaryOf(patient)
	case !errors.Is(err, auth.ErrUserNotFound):
		return err
	}
	if rec.DoctorID == nil {
		return nil
	}
	doctor, err := s.users.GetByID(ctx, *rec.DoctorID)
	switch {
	case err == nil:
		rec.Doctor = summaryOf(doctor)
	case !errors.Is(err, auth.ErrUserNotFound):
		return err
	}
	return nil
}

func (s *Service) userWithRole(ctx context.Context, id string, role auth.UserRole, invalid error) (*auth.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, auth.ErrUserNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, err
	}
	if u.Role != role {
		return nil, invalid
	}
	return u, nil
}

func discard(files []*formdata.File) {
	for _, f := range files {
		if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("medical_document_discard_failed path=%q error=%q", f.Path, err.Error())
		}
	}
}

func summaryOf(u *auth.User) *auth.Summary {
	s := u.Summary()
	return &s
}
