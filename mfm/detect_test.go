package mfm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormatIBMPC(t *testing.T) {
	cfg := testConfig()
	data, _ := encodeIBMPCTrack(t, cfg, 0, 0, 9)

	format, err := DetectFormat(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, FormatIBMPC, format)
}

func TestDetectFormatAmiga(t *testing.T) {
	data, _ := encodeAmigaTrack(t, 0, 11)

	format, err := DetectFormat(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, FormatAmiga, format)
}

func TestDetectFormatErrorsOnNoSyncMark(t *testing.T) {
	data := bytes.Repeat([]byte{0x55}, TrackBytes)

	format, err := DetectFormat(bytes.NewReader(data))
	assert.Error(t, err)
	assert.Equal(t, FormatUnknown, format)
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "IBM PC", FormatIBMPC.String())
	assert.Equal(t, "Amiga", FormatAmiga.String())
	assert.Equal(t, "unknown", FormatUnknown.String())
}
