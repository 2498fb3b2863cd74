package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testConfig struct {
	dir string
}

func (c testConfig) GetMaxFileUpload() int64   { return 1000000 }
func (c testConfig) GetFileUploadPath() string { return c.dir }

func TestSave_WritesFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(testConfig{dir: dir})
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	if err := store.Save("photo_abc.jpg", strings.NewReader("jpeg bytes")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "photo_abc.jpg"))
	if err != nil {
		t.Fatalf("read saved photo: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Fatalf("saved content = %q", data)
	}
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(testConfig{dir: dir})
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	if err := store.Save("photo_x.png", strings.NewReader("png")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".upload-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestSave_OverwritesExistingPhoto(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(testConfig{dir: dir})
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	if err := store.Save("photo_a.jpg", strings.NewReader("old")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save("photo_a.jpg", strings.NewReader("new")); err != nil {
		t.Fatalf("Save again: %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(dir, "photo_a.jpg"))
	if string(data) != "new" {
		t.Fatalf("content = %q, want new", data)
	}
}
