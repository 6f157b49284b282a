// Package storage keeps uploaded media files and hands back the URL they are served from.
package storage

import (
	"context"
	"io"
)

// Upload is one file received from a client.
type Upload struct {
	// Filename is the client-supplied name; only its base and extension are kept.
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Object is a stored upload.
type Object struct {
	Name string
	URL  string
}

type Store interface {
	Save(ctx context.Context, upload Upload) (Object, error)
}

// maxNameAttempts bounds how many timestamps are tried when a name is already taken.
const maxNameAttempts = 50

func rewind(r io.Reader) error {
	if s, ok := r.(io.Seeker); ok {
		_, err := s.Seek(0, io.SeekStart)
		return err
	}
	return nil
}
