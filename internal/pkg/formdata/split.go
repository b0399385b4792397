package formdata

import "bytes"

// splitParts cuts body on every "--boundary" occurrence and returns the
// candidate part segments. The preamble before the first delimiter is
// dropped, as is everything from the close delimiter ("--boundary--") on.
// Each returned segment starts at its header block and still carries the
// line break that precedes the next delimiter.
func splitParts(body []byte, boundary string) [][]byte {
	delim := []byte("--" + boundary)

	pieces := bytes.Split(body, delim)
	if len(pieces) < 2 {
		return nil
	}

	parts := make([][]byte, 0, len(pieces)-1)
	for _, seg := range pieces[1:] {
		if bytes.HasPrefix(seg, []byte("--")) {
			break
		}
		// The rest of the delimiter line is optional padding and a line break.
		if i := bytes.IndexByte(seg, '\n'); i >= 0 {
			seg = seg[i+1:]
		} else {
			seg = nil
		}
		if len(bytes.TrimSpace(seg)) == 0 {
			continue
		}
		parts = append(parts, seg)
	}
	return parts
}

// trimLineBreak strips exactly one trailing CRLF (or bare LF).
func trimLineBreak(b []byte) []byte {
	if bytes.HasSuffix(b, []byte("\r\n")) {
		return b[:len(b)-2]
	}
	if bytes.HasSuffix(b, []byte("\n")) {
		return b[:len(b)-1]
	}
	return b
}
