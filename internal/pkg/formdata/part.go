package formdata

import (
	"bytes"
	"mime"
	"regexp"
	"strings"
)

type part struct {
	headers []string
	body    []byte
}

var (
	crlfcrlf = []byte("\r\n\r\n")
	lflf     = []byte("\n\n")

	dispositionName     = regexp.MustCompile(`(?i)(?:^|[;\s])name="([^"]*)"`)
	dispositionFilename = regexp.MustCompile(`(?i)(?:^|[;\s])filename="([^"]*)"`)
)

// parsePart separates the header block from the body. ok is false when the
// segment has no blank line, in which case the caller skips it.
func parsePart(seg []byte) (p part, ok bool) {
	sep := crlfcrlf
	i := bytes.Index(seg, sep)
	if j := bytes.Index(seg, lflf); i < 0 || (j >= 0 && j < i) {
		i, sep = j, lflf
	}
	if i < 0 {
		return part{}, false
	}

	for _, line := range strings.Split(string(seg[:i]), "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			p.headers = append(p.headers, line)
		}
	}
	p.body = seg[i+len(sep):]
	return p, true
}

// header returns the trimmed value of the first header called name.
func (p part) header(name string) (string, bool) {
	for _, line := range p.headers {
		k, v, found := strings.Cut(line, ":")
		if found && strings.EqualFold(strings.TrimSpace(k), name) {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// disposition returns the form field name and the optional file name.
func (p part) disposition() (name, filename string) {
	value, ok := p.header("Content-Disposition")
	if !ok {
		return "", ""
	}

	if _, params, err := mime.ParseMediaType(value); err == nil {
		return params["name"], params["filename"]
	}

	// Lenient fallback for values ParseMediaType rejects (unescaped
	// characters in a quoted file name, stray separators).
	if m := dispositionName.FindStringSubmatch(value); m != nil {
		name = m[1]
	}
	if m := dispositionFilename.FindStringSubmatch(value); m != nil {
		filename = m[1]
	}
	return name, filename
}
