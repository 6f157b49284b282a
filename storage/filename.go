package storage

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const maxBaseLength = 80

var (
	unsafeNameChars = regexp.MustCompile(`[^a-z0-9_-]`)
	unsafeExtChars  = regexp.MustCompile(`[^a-z0-9]`)
)

// FileName builds the stored name <base>-<unix millis>.<ext> from a client filename.
// The base is lower-cased, every character outside [a-z0-9-_] becomes '-', and it is cut to
// 80 characters. Path components in the client name are discarded.
func FileName(original string, at time.Time) string {
	base, ext := SplitName(original)
	name := fmt.Sprintf("%s-%d", base, at.UnixMilli())
	if ext != "" {
		name += "." + ext
	}
	return name
}

// SplitName returns the sanitised base and lower-cased extension of a client filename.
func SplitName(original string) (string, string) {
	original = strings.ReplaceAll(original, "\\", "/")
	original = filepath.Base(original)
	if original == "." || original == "/" {
		original = ""
	}

	ext := filepath.Ext(original)
	base := strings.TrimSuffix(original, ext)

	base = unsafeNameChars.ReplaceAllString(strings.ToLower(base), "-")
	if len(base) > maxBaseLength {
		base = base[:maxBaseLength]
	}
	if base == "" {
		base = "file"
	}

	ext = unsafeExtChars.ReplaceAllString(strings.ToLower(strings.TrimPrefix(ext, ".")), "")
	return base, ext
}

// WithExtension sets the extension of name when it has none.
func WithExtension(name, ext string) string {
	if filepath.Ext(name) != "" || ext == "" {
		return name
	}
	return name + "." + strings.TrimPrefix(ext, ".")
}
