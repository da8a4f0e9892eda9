package mfm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiskBounds(t *testing.T) {
	_, err := NewDisk(0, 9)
	assert.Error(t, err)

	_, err = NewDisk(MaxTracks+1, 9)
	assert.Error(t, err)

	_, err = NewDisk(80, 0)
	assert.Error(t, err)

	_, err = NewDisk(80, MaxSectorsPerTrack+1)
	assert.Error(t, err)

	d, err := NewDisk(80, 9)
	require.NoError(t, err)
	assert.Equal(t, 80, d.NTracks)
	assert.Equal(t, 9, d.NSectorsPerTrack)
}

func TestDiskSectorBounds(t *testing.T) {
	d, err := NewDisk(2, 9)
	require.NoError(t, err)

	_, err = d.Sector(-1, 0)
	assert.Error(t, err)
	_, err = d.Sector(2, 0)
	assert.Error(t, err)
	_, err = d.Sector(0, -1)
	assert.Error(t, err)
	_, err = d.Sector(0, 9)
	assert.Error(t, err)

	_, err = d.Sector(1, 8)
	assert.NoError(t, err)
}

func TestTrackNumberAndCylinderHead(t *testing.T) {
	for cyl := 0; cyl < 80; cyl++ {
		for head := 0; head < 2; head++ {
			track := TrackNumber(cyl, head)
			gotCyl, gotHead := CylinderHead(track)
			assert.Equal(t, cyl, gotCyl)
			assert.Equal(t, head, gotHead)
		}
	}
}
