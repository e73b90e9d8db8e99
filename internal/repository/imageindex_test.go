package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func writeUpload(t *testing.T, root string, parts ...string) {
	t.Helper()
	path := filepath.Join(append([]string{root}, parts...)...)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("jpegbytes"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestListAbsentRoot(t *testing.T) {
	repo := NewImageIndexRepository(filepath.Join(t.TempDir(), "missing"), zerolog.Nop())
	index, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(index) != 0 {
		t.Fatalf("want empty index, got %v", index)
	}
}

func TestListSingleFile(t *testing.T) {
	root := t.TempDir()
	writeUpload(t, root, "deviceA", "2024-01-01", "1700000000000.jpg")

	repo := NewImageIndexRepository(root, zerolog.Nop())
	index, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	entries := index["deviceA"]["2024-01-01"]
	if len(entries) != 1 {
		t.Fatalf("want 1 entry, got %v", index)
	}
	e := entries[0]
	if e.Filename != "1700000000000.jpg" || e.Timestamp != 1700000000000 {
		t.Fatalf("bad entry: %+v", e)
	}
	if e.URL != "/uploads/deviceA/2024-01-01/1700000000000.jpg" {
		t.Fatalf("bad url: %s", e.URL)
	}
}

func TestListSortsAndFilters(t *testing.T) {
	root := t.TempDir()
	writeUpload(t, root, "cam1", "2024-01-01", "1700000000002.jpg")
	writeUpload(t, root, "cam1", "2024-01-01", "1700000000001.png")
	writeUpload(t, root, "cam1", "2024-01-01", "notes.txt")    // wrong extension
	writeUpload(t, root, "cam1", "2024-01-01", "snapshot.jpg") // stem not a timestamp
	writeUpload(t, root, "cam1", "2024-01-02", "1700000100000.jpg")
	writeUpload(t, root, "cam2", "2024-01-01", "1700000200000.webp")

	repo := NewImageIndexRepository(root, zerolog.Nop())
	index, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	day1 := index["cam1"]["2024-01-01"]
	if len(day1) != 2 {
		t.Fatalf("want 2 entries after filtering, got %v", day1)
	}
	if day1[0].Timestamp != 1700000000001 || day1[1].Timestamp != 1700000000002 {
		t.Fatalf("entries not sorted ascending: %v", day1)
	}
	if len(index["cam1"]["2024-01-02"]) != 1 || len(index["cam2"]["2024-01-01"]) != 1 {
		t.Fatalf("devices or dates missing: %v", index)
	}
}

func TestSanitizeDevice(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"esp32-porch", "esp32-porch"},
		{"cam_01", "cam_01"},
		{"../../etc", "etc"},
		{"a b!c", "abc"},
		{"", "unknown"},
		{"///", "unknown"},
	}
	for _, tc := range cases {
		if got := SanitizeDevice(tc.in); got != tc.want {
			t.Fatalf("SanitizeDevice(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSaveUpload(t *testing.T) {
	root := t.TempDir()
	repo := NewImageIndexRepository(root, zerolog.Nop())

	rel, err := repo.SaveUpload("esp32 porch!", ".JPG", strings.NewReader("jpegbytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if !strings.HasPrefix(rel, "esp32porch"+string(filepath.Separator)) {
		t.Fatalf("device not sanitized in path: %s", rel)
	}
	if !strings.HasSuffix(rel, ".jpg") {
		t.Fatalf("extension not normalized: %s", rel)
	}
	data, err := os.ReadFile(filepath.Join(root, rel))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "jpegbytes" {
		t.Fatalf("stored content mismatch: %q", data)
	}

	// The stored frame must be discoverable through the index.
	index, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(index["esp32porch"]) != 1 {
		t.Fatalf("upload not indexed: %v", index)
	}
}
