package zio

import "io"

// Mode selects how [OpenFile] opens the underlying file.
//
// Flags are bit-combinable. At least one of [ModeRead] or [ModeWrite] must
// be set; OpenFile rejects an empty mode with [ErrInvalidArgument].
// Files are always opened in binary mode; there is no newline translation.
type Mode int

const (
	// ModeWrite alone truncates the file (creating it if absent) and opens
	// it for writing only.
	ModeWrite Mode = 1 << iota

	// ModeRead alone opens an existing file for reading only; opening a
	// missing file fails.
	ModeRead
)

// Handle is the uniform operation set shared by all backing kinds.
//
// The behavior of each operation depends on the backing store the handle
// was constructed with ([OpenFile], [OpenMemory], [OpenConstMemory]), but
// the contract is the same: callers written against Handle work identically
// over files and memory buffers.
//
// Seek uses the standard whence values [io.SeekStart], [io.SeekCurrent]
// and [io.SeekEnd] and returns the resulting absolute offset.
type Handle interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer

	// Size returns the total byte length of the backing store.
	//
	// For memory handles this is the buffer length and never fails while
	// the handle is open. For file handles it is measured by seeking and
	// does not move the position observed by a subsequent Tell.
	Size() (int64, error)

	// Tell returns the current position, defined as Seek(0, io.SeekCurrent).
	Tell() (int64, error)

	// LastError returns the error recorded by the most recent failing
	// operation on this handle, or nil if none has failed. It is a
	// diagnostic accessor; the authoritative error is the one returned by
	// each operation.
	LastError() error
}

// Compile-time interface checks.
var (
	_ Handle = (*File)(nil)
	_ Handle = (*Memory)(nil)
)
