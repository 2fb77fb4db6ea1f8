package zio

import "errors"

// Sentinel errors returned by zio operations.
//
// Callers should use [errors.Is] to check error types. Failures of the
// underlying OS calls are wrapped, so checks like
// errors.Is(err, fs.ErrNotExist) also work on errors returned by [OpenFile].
var (
	// ErrInvalidArgument indicates invalid arguments were provided.
	//
	// Common causes: a nil buffer passed to [OpenMemory] or
	// [OpenConstMemory], a mode without [ModeRead] or [ModeWrite], or an
	// unknown seek whence.
	//
	// This is a programming error.
	ErrInvalidArgument = errors.New("zio: invalid argument")

	// ErrWriteNotPermitted indicates a write was attempted on a handle
	// created with [OpenConstMemory].
	//
	// The write is always rejected and never mutates the buffer or the
	// position. There is no point retrying.
	ErrWriteNotPermitted = errors.New("zio: cannot write to const memory")

	// ErrClosed indicates the handle has already been closed.
	//
	// A handle is released exactly once; any operation after Close,
	// including a second Close, returns this error.
	//
	// This is a programming error.
	ErrClosed = errors.New("zio: closed")
)
