package zio_test

import (
	"io"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkit-go/zkit/pkg/zio"
)

const testText = "This is a test\n"

func Test_OpenMemory_Returns_Error_When_Buffer_Nil(t *testing.T) {
	t.Parallel()

	_, err := zio.OpenMemory(nil)
	require.ErrorIs(t, err, zio.ErrInvalidArgument)

	_, err = zio.OpenConstMemory(nil)
	require.ErrorIs(t, err, zio.ErrInvalidArgument)
}

func Test_OpenMemory_Accepts_Empty_Buffer(t *testing.T) {
	t.Parallel()

	m, err := zio.OpenMemory([]byte{})
	require.NoError(t, err)

	size, err := m.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(0), size)

	n, err := m.Read(make([]byte, 4))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}

func Test_Memory_Seek_Clamps_Position(t *testing.T) {
	t.Parallel()

	// Capacity 100, position starts at 0. Each case seeks from a fresh
	// handle positioned at 50 so SeekCurrent cases are meaningful.
	testCases := []struct {
		name    string
		offset  int64
		whence  int
		wantPos int64
	}{
		{name: "StartWithinBounds", offset: 10, whence: io.SeekStart, wantPos: 10},
		{name: "StartBeyondEnd", offset: 1000, whence: io.SeekStart, wantPos: 100},
		{name: "StartNegative", offset: -10, whence: io.SeekStart, wantPos: 0},
		{name: "CurrentForward", offset: 25, whence: io.SeekCurrent, wantPos: 75},
		{name: "CurrentBeyondEnd", offset: 500, whence: io.SeekCurrent, wantPos: 100},
		{name: "CurrentBeforeStart", offset: -500, whence: io.SeekCurrent, wantPos: 0},
		{name: "EndIsEnd", offset: 0, whence: io.SeekEnd, wantPos: 100},
		{name: "EndBackwards", offset: -30, whence: io.SeekEnd, wantPos: 70},
		{name: "EndPastEnd", offset: 30, whence: io.SeekEnd, wantPos: 100},
		// Extreme offsets must saturate, not wrap negative and clamp to 0.
		{name: "CurrentMaxInt64", offset: math.MaxInt64, whence: io.SeekCurrent, wantPos: 100},
		{name: "CurrentMinInt64", offset: math.MinInt64, whence: io.SeekCurrent, wantPos: 0},
		{name: "EndMaxInt64", offset: math.MaxInt64, whence: io.SeekEnd, wantPos: 100},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			m, err := zio.OpenMemory(make([]byte, 100))
			require.NoError(t, err)

			_, err = m.Seek(50, io.SeekStart)
			require.NoError(t, err)

			pos, err := m.Seek(testCase.offset, testCase.whence)
			require.NoError(t, err)
			assert.Equal(t, testCase.wantPos, pos)

			// Clamping law: 0 <= position <= capacity after every seek.
			tell, err := m.Tell()
			require.NoError(t, err)
			assert.GreaterOrEqual(t, tell, int64(0))
			assert.LessOrEqual(t, tell, int64(100))
		})
	}
}

func Test_Memory_Seek_Returns_Error_On_Unknown_Whence(t *testing.T) {
	t.Parallel()

	m, err := zio.OpenMemory(make([]byte, 10))
	require.NoError(t, err)

	_, err = m.Seek(0, 42)
	require.ErrorIs(t, err, zio.ErrInvalidArgument)
	assert.ErrorIs(t, m.LastError(), zio.ErrInvalidArgument)
}

func Test_Memory_WriteSeekRead_RoundTrip(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 100)

	m, err := zio.OpenMemory(buf)
	require.NoError(t, err)

	n, err := m.Write([]byte(testText))
	require.NoError(t, err)
	require.Equal(t, len(testText), n)

	pos, err := m.Seek(0, io.SeekStart)
	require.NoError(t, err)
	require.Equal(t, int64(0), pos)

	out := make([]byte, len(testText))
	n, err = m.Read(out)
	require.NoError(t, err)
	require.Equal(t, len(testText), n)

	if diff := cmp.Diff(testText, string(out)); diff != "" {
		t.Fatalf("read back mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, m.Close())
}

func Test_Memory_Read_Clamps_At_Buffer_Boundary(t *testing.T) {
	t.Parallel()

	buf := []byte("0123456789")

	m, err := zio.OpenMemory(buf)
	require.NoError(t, err)

	_, err = m.Seek(6, io.SeekStart)
	require.NoError(t, err)

	// Request more than remaining: exactly remaining is returned, no error.
	out := make([]byte, 32)
	n, err := m.Read(out)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "6789", string(out[:n]))

	pos, err := m.Tell()
	require.NoError(t, err)
	assert.Equal(t, int64(10), pos)

	// A following read returns 0 with io.EOF and the position unchanged.
	n, err = m.Read(out)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)

	pos, err = m.Tell()
	require.NoError(t, err)
	assert.Equal(t, int64(10), pos)
}

func Test_Memory_Write_Clamps_At_Buffer_Boundary(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 8)

	m, err := zio.OpenMemory(buf)
	require.NoError(t, err)

	_, err = m.Seek(5, io.SeekStart)
	require.NoError(t, err)

	// Only 3 bytes fit; the short count is success, not an error.
	n, err := m.Write([]byte("abcdef"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "abc", string(buf[5:]))

	pos, err := m.Tell()
	require.NoError(t, err)
	assert.Equal(t, int64(8), pos)

	// Buffer full: write transfers zero bytes, still no error.
	n, err = m.Write([]byte("xyz"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func Test_ConstMemory_Write_Always_Fails_And_Never_Mutates(t *testing.T) {
	t.Parallel()

	buf := []byte(testText)
	want := append([]byte(nil), buf...)

	m, err := zio.OpenConstMemory(buf)
	require.NoError(t, err)

	for _, payload := range [][]byte{[]byte("x"), []byte(testText), make([]byte, 1000)} {
		n, err := m.Write(payload)
		assert.Equal(t, 0, n)
		assert.ErrorIs(t, err, zio.ErrWriteNotPermitted)
	}

	assert.ErrorIs(t, m.LastError(), zio.ErrWriteNotPermitted)

	// The buffer is byte-for-byte unchanged and the position never moved.
	if diff := cmp.Diff(want, buf); diff != "" {
		t.Fatalf("buffer mutated (-want +got):\n%s", diff)
	}

	pos, err := m.Tell()
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)
}

func Test_ConstMemory_Reads_Like_Mutable_Memory(t *testing.T) {
	t.Parallel()

	m, err := zio.OpenConstMemory([]byte(testText))
	require.NoError(t, err)

	pos, err := m.Seek(0, io.SeekStart)
	require.NoError(t, err)
	require.Equal(t, int64(0), pos)

	out := make([]byte, len(testText))
	n, err := m.Read(out)
	require.NoError(t, err)
	assert.Equal(t, len(testText), n)
	assert.Equal(t, testText, string(out))
}

func Test_Memory_Size_Is_Buffer_Length(t *testing.T) {
	t.Parallel()

	m, err := zio.OpenMemory(make([]byte, 100))
	require.NoError(t, err)

	size, err := m.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(100), size)

	// Size does not disturb the position.
	_, err = m.Seek(7, io.SeekStart)
	require.NoError(t, err)

	_, err = m.Size()
	require.NoError(t, err)

	pos, err := m.Tell()
	require.NoError(t, err)
	assert.Equal(t, int64(7), pos)
}

func Test_Memory_Close_Is_Not_Idempotent(t *testing.T) {
	t.Parallel()

	m, err := zio.OpenMemory(make([]byte, 4))
	require.NoError(t, err)

	require.NoError(t, m.Close())

	assert.ErrorIs(t, m.Close(), zio.ErrClosed)

	_, err = m.Read(make([]byte, 1))
	assert.ErrorIs(t, err, zio.ErrClosed)

	_, err = m.Write([]byte("a"))
	assert.ErrorIs(t, err, zio.ErrClosed)

	_, err = m.Seek(0, io.SeekStart)
	assert.ErrorIs(t, err, zio.ErrClosed)

	_, err = m.Size()
	assert.ErrorIs(t, err, zio.ErrClosed)
}

// The concrete scenario from the package contract: a 100-byte buffer takes a
// 15-byte write, a rewind and a 15-byte read returning the identical text.
func Test_Memory_Concrete_Scenario(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 100)

	m, err := zio.OpenMemory(buf)
	require.NoError(t, err)

	n, err := m.Write([]byte(testText))
	require.NoError(t, err)
	require.Equal(t, 15, n)

	pos, err := m.Seek(0, io.SeekStart)
	require.NoError(t, err)
	require.Equal(t, int64(0), pos)

	out := make([]byte, 15)
	n, err = m.Read(out)
	require.NoError(t, err)
	require.Equal(t, 15, n)
	require.Equal(t, "This is a test\n", string(out))
}
