package zfs

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Billy implements [FS] over any go-billy filesystem.
//
// Pass memfs.New() for a hermetic in-memory filesystem in tests, or
// osfs.New(root) for a real filesystem rooted at a directory.
type Billy struct {
	fs billy.Filesystem
}

// NewBilly returns an [FS] backed by fsys.
func NewBilly(fsys billy.Filesystem) *Billy {
	return &Billy{fs: fsys}
}

// billyFile adapts a [billy.File] to [File]. billy files carry no Stat
// method, so it is answered by the owning filesystem.
type billyFile struct {
	billy.File
	fs billy.Filesystem
}

func (f *billyFile) Stat() (os.FileInfo, error) {
	return f.fs.Stat(f.Name())
}

// --- File Handles ---

func (b *Billy) Open(path string) (File, error) {
	f, err := b.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("billy: open %q: %w", path, err)
	}

	return &billyFile{File: f, fs: b.fs}, nil
}

func (b *Billy) Create(path string) (File, error) {
	f, err := b.fs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("billy: create %q: %w", path, err)
	}

	return &billyFile{File: f, fs: b.fs}, nil
}

func (b *Billy) OpenFile(path string, flag int, perm os.FileMode) (File, error) {
	f, err := b.fs.OpenFile(path, flag, perm)
	if err != nil {
		return nil, fmt.Errorf("billy: openfile %q: %w", path, err)
	}

	return &billyFile{File: f, fs: b.fs}, nil
}

// --- Convenience Methods ---

func (b *Billy) ReadFile(path string) ([]byte, error) {
	bts, err := util.ReadFile(b.fs, path)
	if err != nil {
		return nil, fmt.Errorf("billy: readfile %q: %w", path, err)
	}

	return bts, nil
}

// WriteFileAtomic writes to a temp file in the destination directory and
// renames it into place. perm is applied after the rename when the backing
// filesystem supports [billy.Change]; otherwise it is ignored.
func (b *Billy) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := b.fs.TempFile(Dir(path), "."+Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("billy: tempfile for %q: %w", path, err)
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = b.fs.Remove(tmpName)

		return fmt.Errorf("billy: write %q: %w", path, err)
	}

	if err := tmp.Close(); err != nil {
		_ = b.fs.Remove(tmpName)

		return fmt.Errorf("billy: close %q: %w", path, err)
	}

	if err := b.fs.Rename(tmpName, path); err != nil {
		_ = b.fs.Remove(tmpName)

		return fmt.Errorf("billy: rename %q: %w", path, err)
	}

	if ch, ok := b.fs.(billy.Change); ok {
		if err := ch.Chmod(path, perm); err != nil {
			return fmt.Errorf("billy: chmod %q: %w", path, err)
		}
	}

	return nil
}

// Touch creates path if it does not exist. When the backing filesystem
// supports [billy.Change], the timestamps of an existing file are bumped;
// otherwise an existing file is left as-is.
func (b *Billy) Touch(path string) error {
	exists, err := b.Exists(path)
	if err != nil {
		return err
	}

	if !exists {
		f, err := b.fs.Create(path)
		if err != nil {
			return fmt.Errorf("billy: touch %q: %w", path, err)
		}

		return f.Close()
	}

	if ch, ok := b.fs.(billy.Change); ok {
		now := time.Now()

		return ch.Chtimes(path, now, now)
	}

	return nil
}

func (b *Billy) CopyFile(src, dst string) error {
	return copyFile(b, src, dst)
}

// --- Directory Operations ---

func (b *Billy) ReadDir(path string) ([]os.DirEntry, error) {
	infos, err := b.fs.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("billy: readdir %q: %w", path, err)
	}

	entries := make([]os.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	return entries, nil
}

func (b *Billy) MkdirAll(path string, perm os.FileMode) error {
	if err := b.fs.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("billy: mkdirall %q: %w", path, err)
	}

	return nil
}

// --- Metadata ---

func (b *Billy) Stat(path string) (os.FileInfo, error) {
	info, err := b.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("billy: stat %q: %w", path, err)
	}

	return info, nil
}

func (b *Billy) Exists(path string) (bool, error) {
	_, err := b.fs.Stat(path)

	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, fmt.Errorf("billy: stat %q: %w", path, err)
	}
}

// --- Mutations ---

func (b *Billy) Remove(path string) error {
	if err := b.fs.Remove(path); err != nil {
		return fmt.Errorf("billy: remove %q: %w", path, err)
	}

	return nil
}

func (b *Billy) RemoveAll(path string) error {
	if err := util.RemoveAll(b.fs, path); err != nil {
		return fmt.Errorf("billy: removeall %q: %w", path, err)
	}

	return nil
}

func (b *Billy) Rename(oldpath, newpath string) error {
	if err := b.fs.Rename(oldpath, newpath); err != nil {
		return fmt.Errorf("billy: rename %q to %q: %w", oldpath, newpath, err)
	}

	return nil
}

// Compile-time interface check.
var _ FS = (*Billy)(nil)
