package mfm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestUnshuffleShuffleRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.Uint32().Draw(t, "w")
		odd, even := Shuffle(w)
		got := Unshuffle(odd, even)
		assert.Equal(t, w, got)
	})
}

func TestShuffleZero(t *testing.T) {
	odd, even := Shuffle(0)
	assert.Equal(t, uint16(0), odd)
	assert.Equal(t, uint16(0), even)
	assert.Equal(t, uint32(0), Unshuffle(0, 0))
}

func TestShuffleAllOnes(t *testing.T) {
	odd, even := Shuffle(0xffffffff)
	assert.Equal(t, uint16(0xffff), odd)
	assert.Equal(t, uint16(0xffff), even)
}
