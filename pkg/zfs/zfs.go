package zfs

import (
	"io"
	"os"
)

// File represents an open file.
//
// The interface is satisfied by [os.File] and can be used with all standard
// library functions that accept [io.Reader], [io.Writer], [io.Seeker] or
// [io.Closer].
type File interface {
	io.ReadWriteCloser
	io.Seeker

	// Name returns the name the file was opened with.
	Name() string

	// Stat returns the [os.FileInfo] for this file.
	Stat() (os.FileInfo, error)
}

// FS defines filesystem operations for reading, writing and managing files.
//
// Two implementations are provided:
//   - [Real]: production use, wraps the [os] package
//   - [Billy]: wraps a go-billy filesystem (in-memory or otherwise)
type FS interface {
	// --- File Handles ---

	// Open opens a file for reading. See [os.Open].
	Open(path string) (File, error)

	// Create creates or truncates a file for writing. See [os.Create].
	Create(path string) (File, error)

	// OpenFile opens a file with specified flags and permissions.
	// See [os.OpenFile].
	OpenFile(path string, flag int, perm os.FileMode) (File, error)

	// --- Convenience Methods ---

	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic writes data to a file atomically, using a temp file
	// plus rename so a crash never leaves a partial file behind.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// Touch creates path as an empty file if it does not exist, otherwise
	// it updates the access and modification times.
	Touch(path string) error

	// CopyFile copies src to dst in fixed-size chunks, creating or
	// truncating dst.
	CopyFile(src, dst string) error

	// --- Directory Operations ---

	// ReadDir reads a directory and returns its entries sorted by name.
	// See [os.ReadDir].
	ReadDir(path string) ([]os.DirEntry, error)

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	MkdirAll(path string, perm os.FileMode) error

	// --- Metadata ---

	// Stat returns file info. See [os.Stat].
	Stat(path string) (os.FileInfo, error)

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)

	// --- Mutations ---

	// Remove deletes a file or empty directory. See [os.Remove].
	Remove(path string) error

	// RemoveAll deletes a path and any children. See [os.RemoveAll].
	RemoveAll(path string) error

	// Rename moves/renames a file or directory. See [os.Rename].
	Rename(oldpath, newpath string) error
}

// Compile-time interface check.
var _ File = (*os.File)(nil)

// copyChunkSize is the transfer block used by CopyFile. Copying in 32k
// chunks keeps memory use flat regardless of file size.
const copyChunkSize = 32 * 1024

// copyFile implements CopyFile on top of any FS.
func copyFile(fsys FS, src, dst string) error {
	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fsys.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.CopyBuffer(out, in, make([]byte, copyChunkSize)); err != nil {
		out.Close()

		return err
	}

	return out.Close()
}
