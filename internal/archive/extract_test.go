package archive

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"fexp/internal/errors"
	"fexp/internal/fileinfo"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestExtractZip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bundle.zip")
	writeZip(t, src, map[string]string{
		"README.md":        "# hi",
		"docs/guide.txt":   "guide",
		"docs/deep/x.txt":  "x",
		"./dot/prefix.txt": "p",
	})
	dest := filepath.Join(dir, "out")
	if err := os.Mkdir(dest, 0755); err != nil {
		t.Fatal(err)
	}

	x := NewExtractor(fileinfo.LocalFS{}, t.Logf)
	if err := x.Extract(context.Background(), src, dest); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	for name, want := range map[string]string{
		"README.md":                            "# hi",
		filepath.Join("docs", "guide.txt"):     "guide",
		filepath.Join("docs", "deep", "x.txt"): "x",
		filepath.Join("dot", "prefix.txt"):     "p",
	} {
		data, err := os.ReadFile(filepath.Join(dest, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if string(data) != want {
			t.Errorf("%s = %q, want %q", name, data, want)
		}
	}
}

func TestExtractRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "evil.zip")
	writeZip(t, src, map[string]string{"../escaped.txt": "boom"})
	dest := filepath.Join(dir, "out")
	if err := os.Mkdir(dest, 0755); err != nil {
		t.Fatal(err)
	}

	err := NewExtractor(fileinfo.LocalFS{}, nil).Extract(context.Background(), src, dest)
	if err == nil {
		t.Fatal("Extract accepted an entry outside the destination")
	}
	if _, err := os.Stat(filepath.Join(dir, "escaped.txt")); !os.IsNotExist(err) {
		t.Error("entry was written outside the destination")
	}
}

func TestExtractErrors(t *testing.T) {
	dir := t.TempDir()
	notArchive := filepath.Join(dir, "plain.zip")
	if err := os.WriteFile(notArchive, []byte("not really a zip"), 0644); err != nil {
		t.Fatal(err)
	}
	x := NewExtractor(fileinfo.LocalFS{}, nil)
	ctx := context.Background()

	if err := x.Extract(ctx, notArchive, dir); !errors.Is(err, errors.ErrorTypeIO) {
		t.Errorf("corrupt archive: got %v, want io error", err)
	}
	if err := x.Extract(ctx, filepath.Join(dir, "missing.zip"), dir); !errors.Is(err, errors.ErrorTypeNotFound) {
		t.Errorf("missing archive: got %v, want not found", err)
	}
	if err := x.Extract(ctx, notArchive, filepath.Join(dir, "nowhere")); !errors.Is(err, errors.ErrorTypeNotFound) {
		t.Errorf("missing destination: got %v, want not found", err)
	}
	if err := x.Extract(ctx, notArchive, notArchive); !errors.Is(err, errors.ErrorTypeInvalidArgument) {
		t.Errorf("file destination: got %v, want invalid argument", err)
	}
	if err := x.Extract(ctx, notArchive, "smb://nas/share"); !errors.Is(err, errors.ErrorTypeInvalidArgument) {
		t.Errorf("smb destination: got %v, want invalid argument", err)
	}
}
