package medicalrecord

import "errors"

var (
	ErrRecordNotFound   = errors.New("medical record not found")
	ErrDocumentNotFound = errors.New("medical document not found")
	ErrInvalidPatient   = errors.New("invalid patient")
	ErrInvalidDoctor    = errors.New("invalid doctor")
	ErrForbidden        = errors.New("access denied")
	ErrOutsideRoot      = errors.New("document path escapes upload root")
)
