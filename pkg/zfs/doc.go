// Package zfs provides small filesystem utilities: path manipulation,
// file operations and directory traversal, behind an [FS] interface with
// interchangeable backends.
//
// Two backends are provided:
//   - [Real]: production implementation over the [os] package
//   - [Billy]: adapter over any go-billy filesystem, including the in-memory
//     memfs, for hermetic tests
//
// Path helpers ([Join], [Ext], [Base], [Dir], ...) are pure string functions
// and work with either backend.
//
// Example:
//
//	fsys := zfs.NewReal()
//	if err := fsys.Touch("out/marker"); err != nil {
//	    return err
//	}
//	err := zfs.Walk(fsys, "out", func(path string, entry os.DirEntry) error {
//	    fmt.Println(path)
//	    return nil
//	})
package zfs
