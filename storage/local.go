package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// LocalStore writes uploads into a directory that the API serves under urlPrefix.
type LocalStore struct {
	dir       string
	urlPrefix string
	now       func() time.Time
}

func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory %s: %w", dir, err)
	}
	return &LocalStore{dir: dir, urlPrefix: urlPrefix, now: time.Now}, nil
}

func (s *LocalStore) Dir() string {
	return s.dir
}

// Save never overwrites: a taken name is retried with the timestamp moved forward.
func (s *LocalStore) Save(ctx context.Context, upload Upload) (Object, error) {
	at := s.now()
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Object{}, err
		}

		name := FileName(upload.Filename, at.Add(time.Duration(attempt)*time.Millisecond))
		path := filepath.Join(s.dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return Object{}, fmt.Errorf("create %s: %w", name, err)
		}

		_, copyErr := io.Copy(f, upload.Body)
		closeErr := f.Close()
		if copyErr != nil || closeErr != nil {
			_ = os.Remove(path)
			return Object{}, fmt.Errorf("write %s: %w", name, errors.Join(copyErr, closeErr))
		}
		return Object{Name: name, URL: s.urlPrefix + "/" + name}, nil
	}
	return Object{}, fmt.Errorf("no free file name for %q after %d attempts", upload.Filename, maxNameAttempts)
}
