package fs

import (
	"bytes"
	"os"

	"github.com/natefinch/atomic"
)

// Real is the [FS] backed by the local disk.
type Real struct{}

// NewReal returns a [Real].
func NewReal() *Real {
	return &Real{}
}

func (r *Real) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// ReadDir returns entries sorted by name.
func (r *Real) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

// Stat follows symlinks, so a linked org or repo directory reports as a dir.
func (r *Real) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Exists reports false with a nil error only when path is absent. Other
// stat failures, such as a permission error on a parent, are returned.
func (r *Real) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}

func (r *Real) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// WriteFileAtomic writes data to a temp file next to path and renames it
// over path, so a reader sees the old backlog or the new one. The parent
// directory must exist.
func (r *Real) WriteFileAtomic(path string, data []byte) error {
	return atomic.WriteFile(path, bytes.NewReader(data))
}

var _ FS = (*Real)(nil)
