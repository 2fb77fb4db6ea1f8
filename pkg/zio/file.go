package zio

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const filePerms = 0o644

// File is a [Handle] backed by an open operating-system file.
//
// The handle owns the OS file once opened; Close is the only way to release
// it. All operations are passthroughs to the file descriptor, so mode
// enforcement (reads on a write-only handle, writes on a read-only handle)
// is done by the OS and surfaces as a wrapped OS error.
type File struct {
	f       *os.File
	lastErr error
}

// OpenFile opens path with the given mode and binds a file-backed handle.
//
// Mode mapping:
//   - [ModeWrite] alone: create or truncate, write only.
//   - [ModeRead] alone: read only, the file must exist.
//   - ModeWrite|ModeRead: create or open for update, without truncation.
//
// A mode with neither flag set returns [ErrInvalidArgument]. If the OS open
// call fails, the error is returned wrapped and no handle is created.
func OpenFile(path string, mode Mode) (*File, error) {
	var flag int

	switch {
	case mode&ModeWrite != 0 && mode&ModeRead != 0:
		flag = os.O_RDWR | os.O_CREATE
	case mode&ModeWrite != 0:
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case mode&ModeRead != 0:
		flag = os.O_RDONLY
	default:
		return nil, fmt.Errorf("%w: mode must include ModeRead or ModeWrite", ErrInvalidArgument)
	}

	f, err := os.OpenFile(path, flag, filePerms)
	if err != nil {
		return nil, fmt.Errorf("zio: open %s: %w", path, err)
	}

	return &File{f: f}, nil
}

// fail records err as the handle's last error and returns it.
func (h *File) fail(err error) error {
	h.lastErr = err
	return err
}

// Close releases the OS file. The handle is unusable afterwards; a second
// Close returns [ErrClosed].
func (h *File) Close() error {
	if h.f == nil {
		return h.fail(ErrClosed)
	}

	err := h.f.Close()
	h.f = nil

	if err != nil {
		return h.fail(fmt.Errorf("zio: close: %w", err))
	}

	return nil
}

// Size returns the file's total byte length, measured as tell, seek-to-end,
// seek-back. The position observed by a subsequent Tell is unchanged.
//
// Not atomic with respect to concurrent writers; single-threaded use is
// assumed.
func (h *File) Size() (int64, error) {
	if h.f == nil {
		return -1, h.fail(ErrClosed)
	}

	pos, err := h.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return -1, h.fail(fmt.Errorf("zio: size: %w", err))
	}

	size, err := h.f.Seek(0, io.SeekEnd)
	if err != nil {
		return -1, h.fail(fmt.Errorf("zio: size: %w", err))
	}

	if _, err := h.f.Seek(pos, io.SeekStart); err != nil {
		return -1, h.fail(fmt.Errorf("zio: size: %w", err))
	}

	return size, nil
}

// Seek delegates to the OS seek and returns the new absolute position.
func (h *File) Seek(offset int64, whence int) (int64, error) {
	if h.f == nil {
		return -1, h.fail(ErrClosed)
	}

	pos, err := h.f.Seek(offset, whence)
	if err != nil {
		return -1, h.fail(fmt.Errorf("zio: seek: %w", err))
	}

	return pos, nil
}

// Tell returns the current position.
func (h *File) Tell() (int64, error) {
	return h.Seek(0, io.SeekCurrent)
}

// Read reads up to len(p) bytes from the file at the current position.
// At end of file it returns (0, [io.EOF]); EOF is not recorded as a failure.
func (h *File) Read(p []byte) (int, error) {
	if h.f == nil {
		return 0, h.fail(ErrClosed)
	}

	n, err := h.f.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, h.fail(fmt.Errorf("zio: read: %w", err))
	}

	return n, err
}

// Write writes len(p) bytes to the file at the current position.
func (h *File) Write(p []byte) (int, error) {
	if h.f == nil {
		return 0, h.fail(ErrClosed)
	}

	n, err := h.f.Write(p)
	if err != nil {
		return n, h.fail(fmt.Errorf("zio: write: %w", err))
	}

	return n, nil
}

// LastError returns the error recorded by the most recent failing operation.
func (h *File) LastError() error {
	return h.lastErr
}
