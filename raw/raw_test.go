package raw

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergev/mfmdisk/mfm"
)

func TestWriteReadImageRoundTrip(t *testing.T) {
	disk, err := mfm.NewDisk(3, 9)
	require.NoError(t, err)
	for tr := 0; tr < disk.NTracks; tr++ {
		for s := 0; s < disk.NSectorsPerTrack; s++ {
			blk, err := disk.Sector(tr, s)
			require.NoError(t, err)
			for i := range blk {
				blk[i] = byte(tr*17 + s*3 + i)
			}
		}
	}

	var buf bytes.Buffer
	require.NoError(t, WriteImage(&buf, disk))
	assert.Equal(t, disk.NTracks*disk.NSectorsPerTrack*mfm.SectorSize, buf.Len())

	got, err := ReadImage(bytes.NewReader(buf.Bytes()), 9)
	require.NoError(t, err)
	assert.Equal(t, disk.NTracks, got.NTracks)
	assert.Equal(t, disk.NSectorsPerTrack, got.NSectorsPerTrack)

	for tr := 0; tr < disk.NTracks; tr++ {
		for s := 0; s < disk.NSectorsPerTrack; s++ {
			want, err := disk.Sector(tr, s)
			require.NoError(t, err)
			gotBlk, err := got.Sector(tr, s)
			require.NoError(t, err)
			assert.Equal(t, *want, *gotBlk)
		}
	}
}

func TestReadImageRejectsTooManyTracks(t *testing.T) {
	size := (mfm.MaxTracks + 1) * 9 * mfm.SectorSize
	_, err := ReadImage(bytes.NewReader(make([]byte, size)), 9)
	assert.Error(t, err)
}
