package zfs_test

import (
	"os"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkit-go/zkit/pkg/zfs"
)

func Test_Billy_ReadFile_RoundTrip(t *testing.T) {
	t.Parallel()

	fsys := zfs.NewBilly(memfs.New())

	f, err := fsys.Create("dir/file.txt")
	require.NoError(t, err)

	_, err = f.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := fsys.ReadFile("dir/file.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func Test_Billy_Exists(t *testing.T) {
	t.Parallel()

	fsys := zfs.NewBilly(memfs.New())

	exists, err := fsys.Exists("nope")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, fsys.Touch("yes"))

	exists, err = fsys.Exists("yes")
	require.NoError(t, err)
	assert.True(t, exists)
}

func Test_Billy_WriteFileAtomic_WritesAndReplaces(t *testing.T) {
	t.Parallel()

	fsys := zfs.NewBilly(memfs.New())
	require.NoError(t, fsys.MkdirAll("out", 0o755))

	require.NoError(t, fsys.WriteFileAtomic("out/data", []byte("v1"), 0o644))
	require.NoError(t, fsys.WriteFileAtomic("out/data", []byte("v2"), 0o644))

	data, err := fsys.ReadFile("out/data")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))

	// No temp files left behind.
	entries, err := fsys.ReadDir("out")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "data", entries[0].Name())
}

func Test_Billy_ReadDir_SortsByName(t *testing.T) {
	t.Parallel()

	fsys := zfs.NewBilly(memfs.New())
	require.NoError(t, fsys.Touch("d/b"))
	require.NoError(t, fsys.Touch("d/a"))
	require.NoError(t, fsys.Touch("d/c"))

	entries, err := fsys.ReadDir("d")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	names := []string{entries[0].Name(), entries[1].Name(), entries[2].Name()}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func Test_Billy_CopyFile(t *testing.T) {
	t.Parallel()

	fsys := zfs.NewBilly(memfs.New())

	f, err := fsys.Create("src")
	require.NoError(t, err)
	_, err = f.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, fsys.CopyFile("src", "dst"))

	data, err := fsys.ReadFile("dst")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func Test_Billy_Remove_And_Rename(t *testing.T) {
	t.Parallel()

	fsys := zfs.NewBilly(memfs.New())
	require.NoError(t, fsys.Touch("a"))

	require.NoError(t, fsys.Rename("a", "b"))

	exists, err := fsys.Exists("a")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, fsys.Remove("b"))

	exists, err = fsys.Exists("b")
	require.NoError(t, err)
	assert.False(t, exists)
}

func Test_Billy_File_Stat(t *testing.T) {
	t.Parallel()

	fsys := zfs.NewBilly(memfs.New())

	f, err := fsys.Create("file")
	require.NoError(t, err)
	_, err = f.Write([]byte("12345"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f, err = fsys.OpenFile("file", os.O_RDONLY, 0)
	require.NoError(t, err)
	defer f.Close()

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())
}
