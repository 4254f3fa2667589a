// Package fs provides the filesystem seam used by the scanner.
//
// The main types are:
//   - [FS]: the read and write operations a scan needs
//   - [Real]: production implementation using the [os] package
//   - [Faulty]: testing implementation that fails chosen paths
//
// Example usage:
//
//	fsys := fs.NewReal()
//	entries, err := fsys.ReadDir("projects")
//	if err != nil {
//	    return err
//	}
package fs

import "os"

// FS defines the filesystem operations used to discover and read task
// documents and to write the backlog.
//
// All methods mirror their [os] package equivalents so tests can intercept
// them.
type FS interface {
	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// ReadDir reads a directory and returns its entries. See [os.ReadDir].
	// Entries are sorted by name.
	ReadDir(path string) ([]os.DirEntry, error)

	// Stat returns file info, following symlinks. See [os.Stat].
	Stat(path string) (os.FileInfo, error)

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	MkdirAll(path string, perm os.FileMode) error

	// WriteFileAtomic replaces path with data. Readers see either the old
	// content or the new content, never a partial file.
	WriteFileAtomic(path string, data []byte) error
}
