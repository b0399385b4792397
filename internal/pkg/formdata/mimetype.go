package formdata

import "strings"

// MimeType is the closed set of document types accepted for medical uploads.
type MimeType int

const (
	MimeUnknown MimeType = iota
	MimePDF
	MimePNG
	MimeJPEG
	MimeJPG
	MimeGIF
	MimeWEBP
)

// OctetStream is assumed when a file part carries no Content-Type header.
const OctetStream = "application/octet-stream"

var mimeNames = map[MimeType]string{
	MimePDF:  "application/pdf",
	MimePNG:  "image/png",
	MimeJPEG: "image/jpeg",
	MimeJPG:  "image/jpg",
	MimeGIF:  "image/gif",
	MimeWEBP: "image/webp",
}

func (m MimeType) String() string {
	if s, ok := mimeNames[m]; ok {
		return s
	}
	return OctetStream
}

// ParseMimeType resolves a declared Content-Type value. Parameters such as
// "; charset=binary" are ignored and matching is case-insensitive.
func ParseMimeType(value string) (MimeType, bool) {
	if i := strings.IndexByte(value, ';'); i >= 0 {
		value = value[:i]
	}
	value = strings.ToLower(strings.TrimSpace(value))
	for m, s := range mimeNames {
		if s == value {
			return m, true
		}
	}
	return MimeUnknown, false
}
