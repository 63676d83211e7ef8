package mqttwire

import (
	"errors"
	"io"
)

const (
	// MaxRemainingLength is the largest value a 4-byte remaining length holds.
	MaxRemainingLength = 268435455 // 0x0FFFFFFF

	maxVarintBytes    = 4
	varintContinueBit = 0x80
	varintValueMask   = 0x7F
)

// RemainingLengthSize returns the number of bytes needed to encode v.
func RemainingLengthSize(v uint32) int {
	switch {
	case v < 128:
		return 1
	case v < 16384:
		return 2
	case v < 2097152:
		return 3
	default:
		return 4
	}
}

// EncodeRemainingLength writes v into dst as a variable byte integer and
// returns the number of bytes written.
func EncodeRemainingLength(dst []byte, v uint32) (int, error) {
	if v > MaxRemainingLength {
		return 0, ErrMalformedLength
	}
	if len(dst) < RemainingLengthSize(v) {
		return 0, ErrTruncated
	}

	n := 0
	for {
		b := byte(v & varintValueMask)
		v >>= 7
		if v > 0 {
			b |= varintContinueBit
		}
		dst[n] = b
		n++
		if v == 0 {
			return n, nil
		}
	}
}

// AppendRemainingLength appends the encoding of v to dst.
func AppendRemainingLength(dst []byte, v uint32) ([]byte, error) {
	var buf [maxVarintBytes]byte
	n, err := EncodeRemainingLength(buf[:], v)
	if err != nil {
		return dst, err
	}
	return append(dst, buf[:n]...), nil
}

// DecodeRemainingLength decodes a variable byte integer from the start of
// buf. It returns the value and the number of bytes consumed.
func DecodeRemainingLength(buf []byte) (uint32, int, error) {
	var value uint32
	for i := range maxVarintBytes {
		if i >= len(buf) {
			return 0, i, ErrMalformedLength
		}
		b := buf[i]
		value |= uint32(b&varintValueMask) << (7 * i)
		if b&varintContinueBit == 0 {
			return value, i + 1, nil
		}
	}
	return 0, maxVarintBytes, ErrMalformedLength
}

// readRemainingLength is DecodeRemainingLength over a byte stream.
func readRemainingLength(r io.ByteReader) (uint32, int, error) {
	var value uint32
	for i := range maxVarintBytes {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, i, ErrMalformedLength
			}
			return 0, i, err
		}
		value |= uint32(b&varintValueMask) << (7 * i)
		if b&varintContinueBit == 0 {
			return value, i + 1, nil
		}
	}
	return 0, maxVarintBytes, ErrMalformedLength
}
