package formdata

import (
	"errors"
	"net/http"
)

// Kind classifies a terminal ingestion failure.
type Kind string

const (
	KindUnsupportedContentType Kind = "UNSUPPORTED_CONTENT_TYPE"
	KindMalformedMultipart     Kind = "MALFORMED_MULTIPART"
	KindPayloadTooLarge        Kind = "PAYLOAD_TOO_LARGE"
	KindUnsupportedFileType    Kind = "UNSUPPORTED_FILE_TYPE"
	KindFileTooLarge           Kind = "FILE_TOO_LARGE"
	KindNoFileProvided         Kind = "NO_FILE_PROVIDED"
	KindTransport              Kind = "TRANSPORT_ERROR"
)

// Status maps the kind to the HTTP status the caller should answer with.
// Transport failures are left to generic error handling (500).
func (k Kind) Status() int {
	switch k {
	case KindUnsupportedContentType, KindMalformedMultipart, KindUnsupportedFileType, KindNoFileProvided:
		return http.StatusBadRequest
	case KindPayloadTooLarge, KindFileTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Error carries every classified Parse failure. Disk write errors are
// returned as plain wrapped errors and have no Kind.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind so callers can write errors.Is(err, formdata.ErrFileTooLarge).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrUnsupportedContentType = &Error{Kind: KindUnsupportedContentType, Msg: "unsupported content type"}
	ErrMalformedMultipart     = &Error{Kind: KindMalformedMultipart, Msg: "invalid multipart data"}
	ErrPayloadTooLarge        = &Error{Kind: KindPayloadTooLarge, Msg: "payload too large"}
	ErrUnsupportedFileType    = &Error{Kind: KindUnsupportedFileType, Msg: "unsupported file type"}
	ErrFileTooLarge           = &Error{Kind: KindFileTooLarge, Msg: "file is too large"}
	ErrNoFileProvided         = &Error{Kind: KindNoFileProvided, Msg: "no file found in request"}
	ErrTransport              = &Error{Kind: KindTransport, Msg: "request body could not be read"}
)

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// KindOf extracts the Kind from err, or "" when err did not come from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
