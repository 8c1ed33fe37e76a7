package bin

import "unsafe"

// Zero-copy view of the string bytes. The result must not be modified
func BytesView(str string) []byte {
	if len(str) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(str), len(str))
}

func Concat(s1 []byte, s2 ...byte) []byte {
	r := make([]byte, len(s1)+len(s2))
	copy(r, s1)
	copy(r[len(s1):], s2)
	return r
}

func ENC_b_endian_64(v uint64) []byte {
	return []byte{
		byte(v >> 56),
		byte(v >> 48),
		byte(v >> 40),
		byte(v >> 32),
		byte(v >> 24),
		byte(v >> 16),
		byte(v >> 8),
		byte(v),
	}
}

// Big endian encoding without leading zero bytes. Zero is encoded as a single zero byte
func ENC_b_endian_compact_64(i uint64) []byte {
	size := ActualSizeInBytes(i)
	ret := make([]byte, size)
	for pos := size - 1; pos >= 0; pos-- {
		ret[pos] = byte(i)
		i >>= 8
	}
	return ret
}

func DEC_b_endian_compact_64(b []byte) (ret uint64) {
	if len(b) > 8 {
		panic("compact uint64 is longer than 8 bytes")
	}
	for _, v := range b {
		ret = ret<<8 | uint64(v)
	}
	return
}

func ActualSizeInBytes(i uint64) int {
	switch {
	case i < (1 << 8):
		return 1
	case i < (1 << 16):
		return 2
	case i < (1 << 24):
		return 3
	case i < (1 << 32):
		return 4
	case i < (1 << 40):
		return 5
	case i < (1 << 48):
		return 6
	case i < (1 << 56):
		return 7
	default:
		return 8
	}
}
