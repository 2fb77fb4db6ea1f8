// Package zio provides a uniform, seekable byte-stream handle over two
// backing stores: operating-system files and caller-supplied byte slices.
//
// A handle is obtained from exactly one of three factories and released
// exactly once with Close:
//
//	h, err := zio.OpenFile("data.bin", zio.ModeRead)
//	if err != nil {
//	    // handle [ErrInvalidArgument] or the wrapped OS error
//	}
//	defer h.Close()
//
//	buf := make([]byte, 100)
//	m, _ := zio.OpenMemory(buf)
//	m.Write([]byte("hello"))
//	m.Seek(0, io.SeekStart)
//
// All handles expose the same operation set (Close, Size, Seek, Tell, Read,
// Write) so callers can be written once against [Handle] and work identically
// whether the data lives on disk or in an in-memory fixture.
//
// # Memory semantics
//
// Memory handles model a fixed-capacity buffer. Seek positions are silently
// clamped into [0, len(buf)], and reads/writes transfer at most the bytes
// remaining before the end of the buffer. A short transfer is a normal,
// successful outcome, not an error; only Read at the very end of the buffer
// reports [io.EOF]. Memory handles never allocate or grow the buffer - the
// caller owns it and must keep it alive for the life of the handle.
//
// Handles created with [OpenConstMemory] reject every write with
// [ErrWriteNotPermitted] and never touch the buffer or the position.
//
// # Concurrency
//
// Handles are synchronous and not safe for concurrent use. A handle assumes
// exclusive ownership by one logical caller at a time; distinct handles over
// the same file are independent and uncoordinated.
package zio
