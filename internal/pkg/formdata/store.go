package formdata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxNameAttempts = 3

// EnsureDir creates the upload directory. It is meant to run once at startup.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create upload directory %s: %w", dir, err)
	}
	return nil
}

// SanitizeFilename replaces every character outside [A-Za-z0-9._-] with '_'.
func SanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '_', r == '-':
			return r
		}
		return '_'
	}, name)
}

func defaultToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// storageName builds "<unix-millis>-<random><ext>".
func storageName(now time.Time, token, ext string) string {
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), token, ext)
}

// writeUnique writes data under a fresh name in dir. O_EXCL guarantees an
// existing file is never overwritten; a clash just draws a new token.
func (p *Parser) writeUnique(ext string, data []byte) (string, string, error) {
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := storageName(p.cfg.Now(), p.cfg.Token(), ext)
		path := filepath.Join(p.cfg.Dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", "", fmt.Errorf("create %s: %w", name, err)
		}

		if _, err := f.Write(data); err != nil {
			f.Close()
			_ = os.Remove(path)
			return "", "", fmt.Errorf("write %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			_ = os.Remove(path)
			return "", "", fmt.Errorf("close %s: %w", name, err)
		}
		return name, path, nil
	}
	return "", "", fmt.Errorf("no free storage name after %d attempts", maxNameAttempts)
}
