package discover

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func mkProject(t *testing.T) (root, nested string) {
	t.Helper()
	root, err := Canonical(t.TempDir())
	if err != nil {
		t.Fatalf("Canonical() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/app\n"), 0o644); err != nil {
		t.Fatalf("write go.mod: %v", err)
	}
	nested = filepath.Join(root, "internal", "ui", "icons")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	return root, nested
}

func TestFindRoot(t *testing.T) {
	root, nested := mkProject(t)

	got, err := FindRoot(nested, "")
	if err != nil {
		t.Fatalf("FindRoot() error = %v", err)
	}
	if got != root {
		t.Errorf("FindRoot() = %q, want %q", got, root)
	}

	got, err = FindRoot(root, DefaultDescriptor)
	if err != nil {
		t.Fatalf("FindRoot(root) error = %v", err)
	}
	if got != root {
		t.Errorf("FindRoot(root) = %q, want %q", got, root)
	}
}

func TestFindRootCustomDescriptor(t *testing.T) {
	root, nested := mkProject(t)
	if err := os.WriteFile(filepath.Join(root, "internal", "Project.toml"), nil, 0o644); err != nil {
		t.Fatalf("write descriptor: %v", err)
	}

	got, err := FindRoot(nested, "Project.toml")
	if err != nil {
		t.Fatalf("FindRoot() error = %v", err)
	}
	if want := filepath.Join(root, "internal"); got != want {
		t.Errorf("FindRoot() = %q, want %q", got, want)
	}
}

func TestFindRootNotFound(t *testing.T) {
	dir := t.TempDir()
	_, err := FindRoot(dir, "definitely-not-here.descriptor")
	if !errors.Is(err, ErrRootNotFound) {
		t.Fatalf("expected ErrRootNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "definitely-not-here.descriptor") {
		t.Errorf("error %q should name the descriptor", err)
	}
}

func TestFindRootIgnoresDescriptorDirectory(t *testing.T) {
	root, nested := mkProject(t)
	if err := os.MkdirAll(filepath.Join(root, "internal", "go.mod"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := FindRoot(nested, "")
	if err != nil {
		t.Fatalf("FindRoot() error = %v", err)
	}
	if got != root {
		t.Errorf("FindRoot() = %q, want %q (directories named go.mod are not descriptors)", got, root)
	}
}

func TestManifestDir(t *testing.T) {
	root, nested := mkProject(t)
	override := t.TempDir()

	got, err := ManifestDir(nested, "", "", override)
	if err != nil {
		t.Fatalf("ManifestDir() error = %v", err)
	}
	if got != filepath.Clean(override) {
		t.Errorf("ManifestDir() = %q, want override %q", got, override)
	}

	got, err = ManifestDir(nested, "", "", "")
	if err != nil {
		t.Fatalf("ManifestDir() error = %v", err)
	}
	if got != root {
		t.Errorf("ManifestDir() = %q, want discovered %q", got, root)
	}

	if _, err := ManifestDir(nested, "", filepath.Join(override, "missing")); err == nil {
		t.Error("expected error for missing override directory")
	}
}
