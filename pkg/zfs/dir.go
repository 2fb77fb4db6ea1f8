package zfs

import (
	"errors"
	"io/fs"
	"os"
)

// SkipDir can be returned by a [WalkFunc] to skip descending into the
// directory the callback was just called with.
var SkipDir = fs.SkipDir

// WalkFunc is called by [Walk] for every entry visited. path is the entry's
// path relative to the walk root joined with the native separator.
type WalkFunc func(path string, entry os.DirEntry) error

// Walk traverses the directory tree rooted at root on fsys, depth-first,
// calling fn for every entry. Entries within a directory are visited in
// name order. The callback sees directories before their contents and can
// return [SkipDir] to prune a subtree.
func Walk(fsys FS, root string, fn WalkFunc) error {
	entries, err := fsys.ReadDir(root)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		path := Join(root, entry.Name())

		if err := fn(path, entry); err != nil {
			if errors.Is(err, SkipDir) {
				continue
			}

			return err
		}

		if entry.IsDir() {
			if err := Walk(fsys, path, fn); err != nil {
				return err
			}
		}
	}

	return nil
}
