package fs

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// These tests cover our helpers and the ReadDir ordering the walker relies
// on, not the os package as a whole.

func TestReal_Exists_ReturnsFalseForNonExistent(t *testing.T) {
	t.Parallel()

	fsys := NewReal()

	exists, err := fsys.Exists(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("err=%v, want=nil", err)
	}

	if exists {
		t.Fatal("exists=true, want=false")
	}
}

func TestReal_Exists_ReturnsTrueForDirectory(t *testing.T) {
	t.Parallel()

	fsys := NewReal()

	exists, err := fsys.Exists(t.TempDir())
	if err != nil {
		t.Fatalf("err=%v, want=nil", err)
	}

	if !exists {
		t.Fatal("exists=false, want=true")
	}
}

func TestReal_ReadDir_ReturnsEntriesSortedByName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	for _, name := range []string{"b", "a-b", "a"} {
		if err := os.Mkdir(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	entries, err := NewReal().ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}

	got := make([]string, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.Name())
	}

	if want := []string{"a", "a-b", "b"}; !slices.Equal(got, want) {
		t.Fatalf("names=%v, want=%v", got, want)
	}
}

func TestReal_WriteFileAtomic_ReplacesContent(t *testing.T) {
	t.Parallel()

	fsys := NewReal()
	path := filepath.Join(t.TempDir(), "backlog.yaml")

	if err := os.WriteFile(path, []byte("old content that is longer"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := fsys.WriteFileAtomic(path, []byte("new")); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	if got, want := string(data), "new"; got != want {
		t.Fatalf("content=%q, want=%q", got, want)
	}
}

func TestReal_WriteFileAtomic_FailsWhenParentMissing(t *testing.T) {
	t.Parallel()

	fsys := NewReal()
	path := filepath.Join(t.TempDir(), "missing", "backlog.yaml")

	if err := fsys.WriteFileAtomic(path, []byte("x")); err == nil {
		t.Fatal("err=nil, want error for missing parent directory")
	}
}

func TestFaulty_FailsOnlyConfiguredPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.md")
	good := filepath.Join(dir, "good.md")

	for _, p := range []string{bad, good} {
		if err := os.WriteFile(p, []byte("content"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	fsys := NewFaulty(NewReal()).Fail(OpReadFile, bad, os.ErrPermission)

	_, err := fsys.ReadFile(bad)
	if !IsInjected(err) {
		t.Fatalf("err=%v, want injected error", err)
	}

	if !errors.Is(err, os.ErrPermission) {
		t.Fatalf("err=%v, want errors.Is(os.ErrPermission)", err)
	}

	data, err := fsys.ReadFile(good)
	if err != nil {
		t.Fatalf("good read: %v", err)
	}

	if got, want := string(data), "content"; got != want {
		t.Fatalf("content=%q, want=%q", got, want)
	}
}

func TestFaulty_FailsStatAndExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fsys := NewFaulty(NewReal()).Fail(OpStat, dir, os.ErrPermission)

	if _, err := fsys.Stat(dir); !IsInjected(err) {
		t.Fatalf("Stat err=%v, want injected error", err)
	}

	exists, err := fsys.Exists(dir)
	if !IsInjected(err) {
		t.Fatalf("Exists err=%v, want injected error", err)
	}

	if exists {
		t.Fatal("Exists=true on injected failure, want=false")
	}
}

func TestIsInjected_ReturnsFalseForRealErrors(t *testing.T) {
	t.Parallel()

	_, err := NewReal().ReadFile(filepath.Join(t.TempDir(), "missing"))

	if IsInjected(err) {
		t.Fatalf("IsInjected(%v)=true, want=false", err)
	}

	if IsInjected(nil) {
		t.Fatal("IsInjected(nil)=true, want=false")
	}
}
