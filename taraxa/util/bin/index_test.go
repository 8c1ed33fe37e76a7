package bin

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompactEncodingRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 255, 256, 1 << 32, math.MaxUint64} {
		enc := ENC_b_endian_compact_64(v)
		assert.Equal(t, ActualSizeInBytes(v), len(enc))
		assert.Equal(t, v, DEC_b_endian_compact_64(enc))
	}
	assert.Equal(t, uint64(0), DEC_b_endian_compact_64(nil))
}

func TestCompactEncodingIsBigEndian(t *testing.T) {
	assert.Equal(t, []byte{0x01, 0x00}, ENC_b_endian_compact_64(256))
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 1, 2}, ENC_b_endian_64(0x0102))
}

func TestBytesView(t *testing.T) {
	assert.Equal(t, []byte("length"), BytesView("length"))
	assert.Nil(t, BytesView(""))
}
