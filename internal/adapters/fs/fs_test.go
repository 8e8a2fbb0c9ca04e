package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"go.trai.ch/soldeps/internal/adapters/fs"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestWalker_WalkFiles(t *testing.T) {
	// tmp/
	//   .git/config
	//   ignored/file
	//   cache/dep.sol
	//   src/main.sol
	//   README.md
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "config"), "git config")
	writeFile(t, filepath.Join(tmpDir, "ignored", "file"), "ignored content")
	writeFile(t, filepath.Join(tmpDir, "cache", "dep.sol"), "contract D {}")
	writeFile(t, filepath.Join(tmpDir, "src", "main.sol"), "contract M {}")
	writeFile(t, filepath.Join(tmpDir, "README.md"), "# Readme")

	walker := fs.NewWalker()
	files := make(map[string]bool)
	for path := range walker.WalkFiles(tmpDir, []string{"ignored"}, []string{filepath.Join(tmpDir, "cache")}) {
		rel, err := filepath.Rel(tmpDir, path)
		if err != nil {
			t.Fatal(err)
		}
		files[filepath.ToSlash(rel)] = true
	}

	if files[".git/config"] {
		t.Error("expected .git/config to be skipped")
	}
	if files["ignored/file"] {
		t.Error("expected ignored/file to be skipped")
	}
	if files["cache/dep.sol"] {
		t.Error("expected cache/dep.sol to be skipped")
	}
	if !files["src/main.sol"] {
		t.Error("expected src/main.sol to be found")
	}
	if !files["README.md"] {
		t.Error("expected README.md to be found")
	}
}

func TestSources_Sources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Token.sol"), "")
	writeFile(t, filepath.Join(dir, "lib", "Math.sol"), "")
	writeFile(t, filepath.Join(dir, "lib", "Math.t.sol"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")
	writeFile(t, filepath.Join(dir, ".cache", "dep", "1.0.0", "Dep.sol"), "")

	src := fs.NewSources(fs.NewWalker())
	files, err := src.Sources(dir, []string{".sol"}, []string{"*.t.sol"}, []string{filepath.Join(dir, ".cache")})
	if err != nil {
		t.Fatalf("Sources failed: %v", err)
	}

	want := []string{filepath.Join(dir, "Token.sol"), filepath.Join(dir, "lib", "Math.sol")}
	if len(files) != len(want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
	// sorted lexically: "Token.sol" < "lib/..."
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("file %d: expected %s, got %s", i, want[i], files[i])
		}
	}
}

func TestSources_MissingDir(t *testing.T) {
	src := fs.NewSources(fs.NewWalker())
	files, err := src.Sources(filepath.Join(t.TempDir(), "absent"), []string{".sol"}, nil, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %v", files)
	}
}

func TestSources_ReadAndIsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "A.sol")
	writeFile(t, path, "contract A {}")

	src := fs.NewSources(fs.NewWalker())
	data, err := src.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "contract A {}" {
		t.Errorf("unexpected content %q", data)
	}
	if !src.IsFile(path) {
		t.Error("expected A.sol to be a file")
	}
	if src.IsFile(dir) {
		t.Error("expected directory not to be a file")
	}
	if _, err := src.ReadFile(filepath.Join(dir, "B.sol")); err == nil {
		t.Error("expected error reading missing file")
	}
}

func TestHasher_HashContent(t *testing.T) {
	hasher := fs.NewHasher()

	h1 := hasher.HashContent([]byte("hello world"))
	h2 := hasher.HashContent([]byte("hello world"))
	h3 := hasher.HashContent([]byte("hello world!"))

	if len(h1) != 16 {
		t.Errorf("expected 16 hex chars, got %q", h1)
	}
	if h1 != h2 {
		t.Error("expected deterministic hash")
	}
	if h1 == h3 {
		t.Error("expected hash to change with content")
	}
}
