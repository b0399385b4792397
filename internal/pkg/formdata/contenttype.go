package formdata

import (
	"regexp"
	"strings"
)

const mediaTypeFormData = "multipart/form-data"

var boundaryParam = regexp.MustCompile(`(?i)boundary=(.+)$`)

// boundaryFromContentType checks the request media type and extracts the
// boundary parameter. It never touches the body.
func boundaryFromContentType(contentType string) (string, error) {
	ct := strings.TrimSpace(contentType)
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), mediaTypeFormData) {
		return "", ErrUnsupportedContentType
	}

	m := boundaryParam.FindStringSubmatch(ct)
	if m == nil {
		return "", ErrMalformedMultipart
	}

	boundary := strings.TrimSpace(m[1])
	if strings.HasPrefix(boundary, `"`) {
		// quoted boundaries may contain ';'
		if end := strings.IndexByte(boundary[1:], '"'); end >= 0 {
			boundary = boundary[1 : end+1]
		} else {
			boundary = strings.Trim(boundary, `"`)
		}
	} else if i := strings.IndexByte(boundary, ';'); i >= 0 {
		boundary = strings.TrimSpace(boundary[:i])
	}
	if boundary == "" {
		return "", ErrMalformedMultipart
	}
	return boundary, nil
}
