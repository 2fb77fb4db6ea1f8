package zfs

import (
	"os"
	"path/filepath"
	"strings"
)

// Path helpers are pure string functions; they never touch the filesystem
// except [WorkingDirectory] and [Abs].

// Join joins two path segments with the native separator, collapsing any
// doubled separators at the boundary.
func Join(left, right string) string {
	return filepath.Join(left, right)
}

// Ext returns the extension of the final path element including the period
// (".txt"), or "" if there is none.
func Ext(path string) string {
	return filepath.Ext(path)
}

// SetExt returns path with its extension replaced by ext. The new extension
// may be given with or without the leading period. An empty ext strips the
// extension.
func SetExt(path, ext string) string {
	trimmed := strings.TrimSuffix(path, filepath.Ext(path))

	if ext == "" {
		return trimmed
	}

	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return trimmed + ext
}

// Base returns the file part of a path: given "/path/to/file.txt" it
// returns "file.txt".
func Base(path string) string {
	return filepath.Base(path)
}

// Stem returns the file part of a path without the extension: given
// "/path/to/file.txt" it returns "file".
func Stem(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Dir returns the directory part of a path: given "/path/to/file.txt" it
// returns "/path/to".
func Dir(path string) string {
	return filepath.Dir(path)
}

// Normalize replaces all directory separators, forward or backward, with
// the native separator.
func Normalize(path string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return os.PathSeparator
		}

		return r
	}, path)
}

// WorkingDirectory returns the current working directory.
func WorkingDirectory() (string, error) {
	return os.Getwd()
}

// Abs returns path unchanged if it is already absolute, otherwise joined
// onto the working directory.
func Abs(path string) (string, error) {
	return filepath.Abs(path)
}
