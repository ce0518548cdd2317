package nonvol_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-lumenring/internal/nonvol"
)

type record struct {
	Version int32
	Level   int16
	Flags   byte
}

func TestMemRegionUnwrittenReadsAsZeroes(t *testing.T) {
	r := nonvol.NewMemRegion()
	b, err := r.Load(16, 8)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 8), b)
}

func TestMemRegionRoundTrip(t *testing.T) {
	r := nonvol.NewMemRegion()
	require.NoError(t, r.Save(4, []byte{0xde, 0xad}))
	b, err := r.Load(4, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad}, b)

	// Bytes around the write stay zero.
	b, err = r.Load(0, 8)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0xde, 0xad, 0, 0}, b)
}

func TestFileRegionMissingFileReadsAsZeroes(t *testing.T) {
	r := nonvol.NewFileRegion(filepath.Join(t.TempDir(), "absent.bin"))
	b, err := r.Load(0, 4)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 4), b)
}

func TestFileRegionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region.bin")
	r := nonvol.NewFileRegion(path)

	require.NoError(t, r.Save(8, []byte{1, 2, 3}))
	b, err := r.Load(8, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)

	// A second region over the same file sees the same bytes.
	b, err = nonvol.NewFileRegion(path).Load(8, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)
}

func TestFileRegionShortFileTolerated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.bin")
	require.NoError(t, os.WriteFile(path, []byte{7}, 0o644))

	b, err := nonvol.NewFileRegion(path).Load(0, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 0, 0, 0}, b)
}

func TestValueRoundTrip(t *testing.T) {
	v := nonvol.NewValue[record](nonvol.NewMemRegion(), 32)

	in := record{Version: 3, Level: -12, Flags: 0xA5}
	require.NoError(t, v.Save(in))

	out, err := v.Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestValueUnwrittenLoadsZeroRecord(t *testing.T) {
	v := nonvol.NewValue[record](nonvol.NewMemRegion(), 0)
	out, err := v.Load()
	require.NoError(t, err)
	assert.Equal(t, record{}, out)
}

func TestValuesAtDistinctAddressesDoNotCollide(t *testing.T) {
	region := nonvol.NewMemRegion()
	a := nonvol.NewValue[record](region, 0)
	b := nonvol.NewValue[record](region, 64)

	require.NoError(t, a.Save(record{Version: 1, Level: 10, Flags: 1}))
	require.NoError(t, b.Save(record{Version: 2, Level: 20, Flags: 2}))

	got, err := a.Load()
	require.NoError(t, err)
	assert.Equal(t, int16(10), got.Level)

	got, err = b.Load()
	require.NoError(t, err)
	assert.Equal(t, int16(20), got.Level)
}
