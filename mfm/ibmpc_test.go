package mfm

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	cfg := NewConfig()
	cfg.Diag = io.Discard
	return cfg
}

func encodeIBMPCTrack(t *testing.T, cfg *Config, cylinder, head, nsectors int) ([]byte, [][SectorSize]byte) {
	t.Helper()
	sectors := make([][SectorSize]byte, nsectors)
	for s := range sectors {
		for i := range sectors[s] {
			sectors[s][i] = byte(s*7 + i)
		}
	}
	var buf bytes.Buffer
	w := NewWriter(&buf)
	EncodeTrackIBMPC(cfg, w, cylinder, head, sectors, false)
	return buf.Bytes(), sectors
}

func TestEncodeDecodeTrackIBMPC(t *testing.T) {
	cfg := testConfig()
	data, sectors := encodeIBMPCTrack(t, cfg, 3, 1, 9)
	track := TrackNumber(3, 1)

	r := NewTrackReader(data, track)
	seen := make(map[int]bool)
	var block [SectorSize]byte
	for {
		s, err := ReadSectorIBMPC(cfg, r, block[:])
		if s < 0 {
			assert.True(t, err == nil || err == ErrEndOfTrack)
			break
		}
		require.GreaterOrEqual(t, s, 0)
		require.Less(t, s, len(sectors))
		assert.Equal(t, sectors[s], block)
		seen[s] = true
	}
	assert.Len(t, seen, len(sectors))
}

func TestEncodeDecodeTrackIBMPC10Sectors(t *testing.T) {
	cfg := testConfig()
	data, sectors := encodeIBMPCTrack(t, cfg, 0, 0, 10)
	r := NewTrackReader(data, 0)

	seen := make(map[int]bool)
	var block [SectorSize]byte
	for {
		s, err := ReadSectorIBMPC(cfg, r, block[:])
		if s < 0 {
			assert.True(t, err == nil || err == ErrEndOfTrack)
			break
		}
		assert.Equal(t, sectors[s], block)
		seen[s] = true
	}
	assert.Len(t, seen, len(sectors))
}

func TestScanIBMPCFindsIndexMark(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.writeIBMIndexMarker()
	w.FillTrack(0)

	r := NewTrackReader(buf.Bytes(), 0)
	tag, _, err := ScanIBMPC(r)
	require.NoError(t, err)
	assert.Equal(t, tagIndexAddressMark, tag)
}

func TestReadTrackIBMPCDetectsNineSectorFormat(t *testing.T) {
	cfg := testConfig()
	data, _ := encodeIBMPCTrack(t, cfg, 0, 0, 9)

	disk, err := NewDisk(1, 10)
	require.NoError(t, err)

	err = ReadTrackIBMPC(cfg, bytes.NewReader(data), disk, 0)
	require.NoError(t, err)
	assert.Equal(t, 9, disk.NSectorsPerTrack)
}
