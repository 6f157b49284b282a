package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLocalStoreNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	fixed := time.UnixMilli(1700000000000)
	store.now = func() time.Time { return fixed }

	first, err := store.Save(context.Background(), Upload{Filename: "logo.png", Body: strings.NewReader("one")})
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := store.Save(context.Background(), Upload{Filename: "logo.png", Body: strings.NewReader("two")})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}

	if first.Name != "logo-1700000000000.png" || second.Name != "logo-1700000000001.png" {
		t.Fatalf("unexpected names %q, %q", first.Name, second.Name)
	}
	if first.URL != "/uploads/logo-1700000000000.png" {
		t.Fatalf("url = %q", first.URL)
	}

	data, err := os.ReadFile(filepath.Join(dir, first.Name))
	if err != nil || !bytes.Equal(data, []byte("one")) {
		t.Fatalf("first file content = %q, %v", data, err)
	}
}
