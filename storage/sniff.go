package storage

import (
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MediaKind is the top-level media type an upload route accepts.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Sniff detects the content type of r from its leading bytes and rewinds it.
func Sniff(r io.ReadSeeker) (*mimetype.MIME, error) {
	mime, err := mimetype.DetectReader(r)
	if err != nil {
		return nil, fmt.Errorf("detect content type: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}
	return mime, nil
}

// Accepts reports whether the detected type belongs to kind.
func (k MediaKind) Accepts(mime *mimetype.MIME) bool {
	for m := mime; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), string(k)+"/") {
			return true
		}
	}
	return false
}
