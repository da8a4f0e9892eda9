package mfm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC16TableKnownValues(t *testing.T) {
	assert.Equal(t, uint16(0x0000), crc16Table[0x00])
	assert.Equal(t, uint16(0x1021), crc16Table[0x01])
	assert.Equal(t, uint16(0xf1ef), crc16Table[0x0f])
	assert.Equal(t, uint16(0x1ef0), crc16Table[0xff])
}

func TestCRC16CCITTByteMatchesFormula(t *testing.T) {
	sum := HeaderCRCSeed
	for _, b := range []byte{0, 1, 2, 0xfe, 0xff} {
		got := CRC16CCITTByte(sum, b)
		want := (sum << 8) ^ crc16Table[b^byte(sum>>8)]
		assert.Equal(t, want, got)
		sum = got
	}
}

func TestCRC16CCITTFoldsBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	viaBuf := CRC16CCITT(DataCRCSeed, buf)

	viaBytes := DataCRCSeed
	for _, b := range buf {
		viaBytes = CRC16CCITTByte(viaBytes, b)
	}
	assert.Equal(t, viaBytes, viaBuf)
}

func TestCRC16CCITTEmptyBufferIsIdentity(t *testing.T) {
	assert.Equal(t, HeaderCRCSeed, CRC16CCITT(HeaderCRCSeed, nil))
}
