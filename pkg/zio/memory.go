package zio

import (
	"fmt"
	"io"
	"math"
)

// Memory is a [Handle] backed by a caller-supplied byte slice.
//
// The handle observes the buffer, it never allocates, grows or frees it;
// the caller retains ownership and the buffer must outlive the handle.
// The cursor always satisfies 0 <= off <= len(buf): seeks clamp into that
// range and reads/writes clamp the transfer length to the bytes remaining.
type Memory struct {
	buf      []byte
	off      int
	readOnly bool
	closed   bool
	lastErr  error
}

// OpenMemory binds a mutable memory-backed handle over buf with the
// position at the start. A nil buffer returns [ErrInvalidArgument];
// an empty (zero-length, non-nil) buffer is valid.
func OpenMemory(buf []byte) (*Memory, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrInvalidArgument)
	}

	return &Memory{buf: buf}, nil
}

// OpenConstMemory binds a read-only memory-backed handle over buf.
// Every write on the returned handle fails with [ErrWriteNotPermitted]
// and leaves the buffer and position untouched.
func OpenConstMemory(buf []byte) (*Memory, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrInvalidArgument)
	}

	return &Memory{buf: buf, readOnly: true}, nil
}

// fail records err as the handle's last error and returns it.
func (m *Memory) fail(err error) error {
	m.lastErr = err
	return err
}

// Close clears the handle's fields. The buffer itself is untouched; the
// caller still owns it. A second Close returns [ErrClosed].
func (m *Memory) Close() error {
	if m.closed {
		return m.fail(ErrClosed)
	}

	m.buf = nil
	m.off = 0
	m.closed = true

	return nil
}

// Size returns the buffer length. O(1), never fails while the handle is open.
func (m *Memory) Size() (int64, error) {
	if m.closed {
		return -1, m.fail(ErrClosed)
	}

	return int64(len(m.buf)), nil
}

// Seek computes the candidate position from whence and offset, then clamps
// it into [0, len(buf)]. An out-of-range target is not an error; the
// resulting absolute position is returned.
func (m *Memory) Seek(offset int64, whence int) (int64, error) {
	if m.closed {
		return -1, m.fail(ErrClosed)
	}

	var pos int64

	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = saturatedAdd(int64(m.off), offset)
	case io.SeekEnd:
		pos = saturatedAdd(int64(len(m.buf)), offset)
	default:
		return -1, m.fail(fmt.Errorf("%w: unknown whence %d", ErrInvalidArgument, whence))
	}

	if pos < 0 {
		pos = 0
	}

	if pos > int64(len(m.buf)) {
		pos = int64(len(m.buf))
	}

	m.off = int(pos)

	return pos, nil
}

// Tell returns the current position.
func (m *Memory) Tell() (int64, error) {
	return m.Seek(0, io.SeekCurrent)
}

// Read copies min(len(p), remaining) bytes into p and advances the position.
// A short read at the buffer boundary is success; only a read with no bytes
// remaining returns (0, [io.EOF]), leaving the position unchanged.
func (m *Memory) Read(p []byte) (int, error) {
	if m.closed {
		return 0, m.fail(ErrClosed)
	}

	if len(p) > 0 && m.off >= len(m.buf) {
		return 0, io.EOF
	}

	n := copy(p, m.buf[m.off:])
	m.off += n

	return n, nil
}

// Write copies min(len(p), remaining) bytes from p into the buffer and
// advances the position. The buffer never grows: a write that reaches the
// end of the buffer is clamped and the short count is returned with a nil
// error. Callers must check the count if they need the full write.
//
// On a handle created with [OpenConstMemory], Write always returns
// [ErrWriteNotPermitted] and changes nothing.
func (m *Memory) Write(p []byte) (int, error) {
	if m.closed {
		return 0, m.fail(ErrClosed)
	}

	if m.readOnly {
		return 0, m.fail(ErrWriteNotPermitted)
	}

	n := copy(m.buf[m.off:], p)
	m.off += n

	return n, nil
}

// LastError returns the error recorded by the most recent failing operation.
func (m *Memory) LastError() error {
	return m.lastErr
}

// saturatedAdd returns a+b, pinning to the int64 bounds instead of wrapping.
// An offset near math.MaxInt64 added to a nonzero position must clamp to the
// buffer end, not wrap negative and clamp to the start.
func saturatedAdd(a, b int64) int64 {
	sum := a + b

	switch {
	case b > 0 && sum < a:
		return math.MaxInt64
	case b < 0 && sum > a:
		return math.MinInt64
	default:
		return sum
	}
}
