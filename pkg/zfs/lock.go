package zfs

import (
	"errors"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

const (
	lockTimeout   = 2 * time.Second
	lockPollDelay = 10 * time.Millisecond
	lockPerms     = 0o644
)

// fileLock holds an exclusive advisory lock on a sidecar ".lock" file.
type fileLock struct {
	path string
	file *os.File
}

func (l *fileLock) Close() error {
	if l.file == nil {
		return nil
	}

	_ = os.Remove(l.path)
	_ = unix.Flock(int(l.file.Fd()), unix.LOCK_UN)

	err := l.file.Close()
	l.file = nil

	return err
}

// Lock acquires an exclusive advisory lock for path, creating a sidecar
// file at path+".lock". It polls with flock(LOCK_EX|LOCK_NB) until the lock
// is acquired or the timeout elapses, in which case it returns
// [os.ErrDeadlineExceeded]. Call Close on the returned locker to release.
//
// Locks coordinate access between processes on a real filesystem only.
func Lock(path string) (io.Closer, error) {
	lockPath := path + ".lock"
	deadline := time.Now().Add(lockTimeout)

	for {
		if time.Now().After(deadline) {
			return nil, os.ErrDeadlineExceeded
		}

		// Re-open on every attempt: a releasing holder removes the lock
		// file before unlocking, so an fd held across attempts can end up
		// locking an unlinked inode that no new caller will ever see.
		file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, lockPerms)
		if err != nil {
			return nil, err
		}

		err = unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err != nil {
			file.Close()

			// EWOULDBLOCK aliases EAGAIN on Linux.
			if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EAGAIN) {
				return nil, err
			}

			time.Sleep(lockPollDelay)

			continue
		}

		var openStat, pathStat unix.Stat_t

		if err := unix.Fstat(int(file.Fd()), &openStat); err != nil {
			file.Close()

			return nil, err
		}

		// Verify the path still names the inode we locked. A mismatch
		// means the holder deleted the file between our open and flock;
		// the lock we got is on a dead inode, so retry.
		if err := unix.Stat(lockPath, &pathStat); err != nil || pathStat.Ino != openStat.Ino {
			_ = unix.Flock(int(file.Fd()), unix.LOCK_UN)
			file.Close()

			continue
		}

		return &fileLock{path: lockPath, file: file}, nil
	}
}
