// ABOUTME: Tests for the filesystem-backed object stores
// ABOUTME: Verifies round trips, missing objects, and bucket escapes
package objectstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocal_PutThenFetch(t *testing.T) {
	root := t.TempDir()
	store := NewLocal(root)
	ctx := context.Background()

	src := filepath.Join(t.TempDir(), "model_1.pdb")
	if err := os.WriteFile(src, []byte("ATOM      1  N   GLN B   1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := store.Put(ctx, src, "models", "runs/abc/model.pdb"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "models", "runs", "abc", "model.pdb")); err != nil {
		t.Errorf("object not written under root: %v", err)
	}

	dst := filepath.Join(t.TempDir(), "fetched.pdb")
	if err := store.Fetch(ctx, "models", "runs/abc/model.pdb", dst); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "ATOM      1  N   GLN B   1\n" {
		t.Errorf("fetched content = %q", got)
	}
}

func TestLocal_FetchMissing(t *testing.T) {
	store := NewLocal(t.TempDir())
	err := store.Fetch(context.Background(), "bucket", "nope.json", filepath.Join(t.TempDir(), "x"))
	if err == nil {
		t.Error("Fetch() should fail for a missing object")
	}
}

func TestLocal_RejectsEscapingKeys(t *testing.T) {
	store := NewLocal(t.TempDir())
	tests := []struct {
		name, bucket, key string
	}{
		{"parent traversal", "bucket", "../other/secret"},
		{"empty bucket", "", "a.json"},
		{"empty key", "bucket", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.objectPath(tt.bucket, tt.key); err == nil {
				t.Errorf("objectPath(%q, %q) should fail", tt.bucket, tt.key)
			}
		})
	}
}

func TestFiles_CopiesPaths(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.json")
	if err := os.WriteFile(src, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dir, "nested", "out.json")
	if err := (Files{}).Put(context.Background(), src, "", dst); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if got, _ := os.ReadFile(dst); string(got) != `{}` {
		t.Errorf("copied content = %q", got)
	}
}

func TestCopyFile_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := copyFile(ctx, "a", "b"); err == nil {
		t.Error("copyFile() should fail on a canceled context")
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"model_1.pdb":   "chemical/x-pdb",
		"sequence.json": "application/json",
		"notes.txt":     "application/octet-stream",
	}
	for path, want := range tests {
		if got := contentType(path); got != want {
			t.Errorf("contentType(%q) = %q, want %q", path, got, want)
		}
	}
}
