package pcl

import (
	"errors"
	"fmt"
)

const maxRun = 128

// PackBits appends the TIFF packbits encoding of src to dst.
//
// Literal runs are a control byte len-1 (0..127) followed by the bytes;
// repeat runs are a control byte 1-len (-127..-1 as a byte) followed by
// the repeated byte. A literal run stops where three equal bytes begin.
func PackBits(dst, src []byte) []byte {
	i := 0
	for i < len(src) {
		// Repeat run of three or more.
		j := i + 1
		for j < len(src) && j-i < maxRun && src[j] == src[i] {
			j++
		}
		if n := j - i; n >= 3 {
			dst = append(dst, byte(1-n), src[i])
			i = j
			continue
		}

		// Literal run: extend until three equal bytes start or the limit.
		j = i + 1
		for j < len(src) && j-i < maxRun {
			if j+2 < len(src) && src[j] == src[j+1] && src[j] == src[j+2] {
				break
			}
			j++
		}
		dst = append(dst, byte(j-i-1))
		dst = append(dst, src[i:j]...)
		i = j
	}
	return dst
}

// PackBitsBound is the worst-case encoded size of n bytes.
func PackBitsBound(n int) int {
	return n + (n+maxRun-1)/maxRun
}

var errTruncated = errors.New("packbits: truncated run")

// UnpackBits decodes a packbits stream. Control byte 0x80 is a no-op.
func UnpackBits(src []byte) ([]byte, error) {
	var out []byte
	for i := 0; i < len(src); {
		n := int(int8(src[i]))
		i++
		switch {
		case n >= 0:
			if i+n+1 > len(src) {
				return out, fmt.Errorf("%w at offset %d", errTruncated, i-1)
			}
			out = append(out, src[i:i+n+1]...)
			i += n + 1
		case n == -128:
		default:
			if i >= len(src) {
				return out, fmt.Errorf("%w at offset %d", errTruncated, i-1)
			}
			for range 1 - n {
				out = append(out, src[i])
			}
			i++
		}
	}
	return out, nil
}
