package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
)

// InjectedError marks an error as intentionally injected by [Faulty].
//
// It wraps the underlying error so errors.Is/As continue to work.
type InjectedError struct {
	Err error
}

// Error returns the underlying error's message.
func (e *InjectedError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *InjectedError) Unwrap() error {
	return e.Err
}

// IsInjected reports whether err (or any wrapped error) was injected by
// [Faulty]. Returns false if err is nil.
func IsInjected(err error) bool {
	var injected *InjectedError

	return errors.As(err, &injected)
}

// Op names an [FS] operation that [Faulty] can fail.
type Op string

const (
	OpReadFile  Op = "read"
	OpReadDir   Op = "readdir"
	OpStat      Op = "stat" // Stat and Exists
	OpMkdirAll  Op = "mkdir"
	OpWriteFile Op = "write"
)

type fault struct {
	op   Op
	path string
}

// Faulty wraps an [FS] and fails selected operations on selected paths.
// Everything else passes through to the wrapped filesystem.
//
// Failures are returned as *[iofs.PathError] whose Err is an
// [InjectedError], so both os.IsPermission style checks on the cause and
// [IsInjected] work.
//
// Faulty is not safe for concurrent configuration.
type Faulty struct {
	inner  FS
	faults map[fault]error
}

// NewFaulty returns a [Faulty] wrapping inner. Panics if inner is nil.
func NewFaulty(inner FS) *Faulty {
	if inner == nil {
		panic("inner fs is nil")
	}

	return &Faulty{inner: inner, faults: make(map[fault]error)}
}

// Fail makes op on path return err. Path is cleaned before matching.
func (f *Faulty) Fail(op Op, path string, err error) *Faulty {
	f.faults[fault{op: op, path: filepath.Clean(path)}] = err

	return f
}

func (f *Faulty) check(op Op, path string) error {
	err, ok := f.faults[fault{op: op, path: filepath.Clean(path)}]
	if !ok {
		return nil
	}

	return &iofs.PathError{Op: string(op), Path: path, Err: &InjectedError{Err: err}}
}

func (f *Faulty) ReadFile(path string) ([]byte, error) {
	if err := f.check(OpReadFile, path); err != nil {
		return nil, err
	}

	return f.inner.ReadFile(path)
}

func (f *Faulty) ReadDir(path string) ([]os.DirEntry, error) {
	if err := f.check(OpReadDir, path); err != nil {
		return nil, err
	}

	return f.inner.ReadDir(path)
}

func (f *Faulty) Stat(path string) (os.FileInfo, error) {
	if err := f.check(OpStat, path); err != nil {
		return nil, err
	}

	return f.inner.Stat(path)
}

func (f *Faulty) Exists(path string) (bool, error) {
	if err := f.check(OpStat, path); err != nil {
		return false, err
	}

	return f.inner.Exists(path)
}

func (f *Faulty) MkdirAll(path string, perm os.FileMode) error {
	if err := f.check(OpMkdirAll, path); err != nil {
		return err
	}

	return f.inner.MkdirAll(path, perm)
}

func (f *Faulty) WriteFileAtomic(path string, data []byte) error {
	if err := f.check(OpWriteFile, path); err != nil {
		return err
	}

	return f.inner.WriteFileAtomic(path, data)
}

// Compile-time interface check.
var _ FS = (*Faulty)(nil)
