package mfm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpProducesOutputPerTrack(t *testing.T) {
	cfg := testConfig()
	data, _ := encodeIBMPCTrack(t, cfg, 0, 0, 9)

	var diag bytes.Buffer
	cfg.Diag = &diag

	require.NoError(t, Dump(cfg, bytes.NewReader(data), 1))
	assert.Contains(t, diag.String(), "Track 0/0:")
	assert.NotEmpty(t, diag.String())
}

func TestDumpVerboseListsRawHalfBits(t *testing.T) {
	cfg := testConfig()
	cfg.Verbose = 1
	data, _ := encodeIBMPCTrack(t, cfg, 0, 0, 9)

	var diag bytes.Buffer
	cfg.Diag = &diag

	require.NoError(t, Dump(cfg, bytes.NewReader(data), 1))
	out := diag.String()
	assert.NotContains(t, out, "_")
	assert.NotContains(t, out, "#")
}
