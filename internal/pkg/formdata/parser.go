// Package formdata ingests multipart/form-data uploads of medical documents.
//
// A request body is buffered under a hard ceiling of twice the maximum file
// size, split on the boundary declared in the Content-Type header, and each
// part is classified as a text field or as the uploaded file. Accepted files
// are written under a collision-free name in a single directory.
package formdata

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/quotedprintable"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultMaxFileSize = 10 << 20 // 10 MiB
	DefaultFileField   = "file"
)

type Config struct {
	// Dir receives the stored files. It must exist; see EnsureDir.
	Dir string
	// MaxFileSize bounds a single decoded file. The whole body may be at
	// most twice as large to leave room for the multipart envelope.
	MaxFileSize int64
	// FileField is the form field that carries the document.
	FileField string
	// MultiFile keeps every file part instead of only the last one.
	MultiFile bool

	Now   func() time.Time
	Token func() string
}

// File describes one stored upload.
type File struct {
	FieldName    string `json:"fieldname"`
	OriginalName string `json:"originalname"`
	MimeType     string `json:"mimetype"`
	Size         int64  `json:"size"`
	Filename     string `json:"filename"`
	Path         string `json:"path"`
}

// Result is the outcome of a successful Parse.
// File is the last stored file; Files lists all of them in body order and
// has a single element unless Config.MultiFile is set.
type Result struct {
	File   *File
	Files  []*File
	Fields map[string]string
}

type Parser struct {
	cfg Config
}

func NewParser(cfg Config) (*Parser, error) {
	if cfg.Dir == "" {
		return nil, errors.New("formdata: upload directory is required")
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.FileField == "" {
		cfg.FileField = DefaultFileField
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Token == nil {
		cfg.Token = defaultToken
	}
	return &Parser{cfg: cfg}, nil
}

func (p *Parser) Dir() string { return p.cfg.Dir }

// Parse consumes body according to contentType.
//
// Every failure is an *Error except disk write failures, which are returned
// wrapped as-is. On ErrNoFileProvided the returned Result is non-nil and
// holds the text fields that were read; on any other error it is nil.
// No file is left on disk when Parse fails.
func (p *Parser) Parse(ctx context.Context, contentType string, body io.Reader) (*Result, error) {
	res, err := p.parse(ctx, contentType, body)
	observe(res, err)
	return res, err
}

type pendingFile struct {
	field    string
	original string
	mime     MimeType
	data     []byte
}

func (p *Parser) parse(ctx context.Context, contentType string, body io.Reader) (*Result, error) {
	boundary, err := boundaryFromContentType(contentType)
	if err != nil {
		return nil, err
	}

	raw, err := readBody(ctx, body, 2*p.cfg.MaxFileSize)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]string)
	var pending []pendingFile

	for _, seg := range splitParts(raw, boundary) {
		pt, ok := parsePart(seg)
		if !ok {
			continue
		}
		name, filename := pt.disposition()
		if name == "" {
			continue
		}

		if filename == "" || name != p.cfg.FileField {
			// Duplicate names: the last occurrence wins.
			fields[name] = string(trimLineBreak(pt.body))
			continue
		}

		pf, err := p.validateFile(pt, name, filename)
		if err != nil {
			return nil, err
		}
		if p.cfg.MultiFile {
			pending = append(pending, pf)
		} else {
			pending = append(pending[:0], pf)
		}
	}

	if len(pending) == 0 {
		return &Result{Fields: fields}, ErrNoFileProvided
	}

	res := &Result{Fields: fields, Files: make([]*File, 0, len(pending))}
	for _, pf := range pending {
		f, err := p.store(pf)
		if err != nil {
			removeFiles(res.Files)
			return nil, err
		}
		res.Files = append(res.Files, f)
	}
	res.File = res.Files[len(res.Files)-1]
	return res, nil
}

func (p *Parser) validateFile(pt part, name, filename string) (pendingFile, error) {
	declared, ok := pt.header("Content-Type")
	if !ok || declared == "" {
		declared = OctetStream
	}
	mt, ok := ParseMimeType(declared)
	if !ok {
		return pendingFile{}, newError(KindUnsupportedFileType, fmt.Sprintf("unsupported file type (%s)", declared), nil)
	}

	data, err := decodeBody(pt, trimLineBreak(pt.body))
	if err != nil {
		return pendingFile{}, newError(KindMalformedMultipart, ErrMalformedMultipart.Msg, err)
	}
	if int64(len(data)) > p.cfg.MaxFileSize {
		return pendingFile{}, ErrFileTooLarge
	}

	return pendingFile{
		field:    name,
		original: SanitizeFilename(filename),
		mime:     mt,
		data:     data,
	}, nil
}

// decodeBody honours a Content-Transfer-Encoding header; form-data parts
// normally carry none and are taken verbatim.
func decodeBody(pt part, raw []byte) ([]byte, error) {
	enc, _ := pt.header("Content-Transfer-Encoding")
	switch strings.ToLower(enc) {
	case "base64":
		compact := bytes.Join(bytes.Fields(raw), nil)
		out := make([]byte, base64.StdEncoding.DecodedLen(len(compact)))
		n, err := base64.StdEncoding.Decode(out, compact)
		if err != nil {
			return nil, fmt.Errorf("base64 body: %w", err)
		}
		return out[:n], nil
	case "quoted-printable":
		out, err := io.ReadAll(quotedprintable.NewReader(bytes.NewReader(raw)))
		if err != nil {
			return nil, fmt.Errorf("quoted-printable body: %w", err)
		}
		return out, nil
	default:
		return raw, nil
	}
}

func (p *Parser) store(pf pendingFile) (*File, error) {
	name, path, err := p.writeUnique(filepath.Ext(pf.original), pf.data)
	if err != nil {
		return nil, fmt.Errorf("store medical document: %w", err)
	}
	return &File{
		FieldName:    pf.field,
		OriginalName: pf.original,
		MimeType:     pf.mime.String(),
		Size:         int64(len(pf.data)),
		Filename:     name,
		Path:         path,
	}, nil
}

func removeFiles(files []*File) {
	for _, f := range files {
		_ = os.Remove(f.Path)
	}
}
