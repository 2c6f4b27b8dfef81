package pcl

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPackBits_Vectors(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
		want []byte
	}{
		{"empty", nil, nil},
		{"single", []byte{0x42}, []byte{0x00, 0x42}},
		{"pair is literal", []byte{7, 7}, []byte{0x01, 7, 7}},
		{"triple is repeat", []byte{7, 7, 7}, []byte{0xFE, 7}},
		{"literal then repeat", []byte{1, 2, 3, 3, 3, 3}, []byte{0x01, 1, 2, 0xFD, 3}},
		{"repeat then literal", []byte{0, 0, 0, 0, 9, 8}, []byte{0xFD, 0, 0x01, 9, 8}},
		{"full repeat", bytes.Repeat([]byte{0xAA}, 128), []byte{0x81, 0xAA}},
		{"repeat spill", bytes.Repeat([]byte{0xAA}, 130), []byte{0x81, 0xAA, 0x01, 0xAA, 0xAA}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PackBits(nil, tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("PackBits mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPackBits_RoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := range 200 {
		n := r.IntN(700)
		src := make([]byte, n)
		for j := range src {
			// Few symbols so both run kinds occur.
			src[j] = byte(r.IntN(3))
		}
		enc := PackBits(nil, src)
		if len(enc) > PackBitsBound(n) {
			t.Errorf("case %d: encoded %d bytes, bound %d", i, len(enc), PackBitsBound(n))
		}
		dec, err := UnpackBits(enc)
		if err != nil {
			t.Fatalf("case %d: UnpackBits failed: %v", i, err)
		}
		if !bytes.Equal(dec, src) {
			t.Fatalf("case %d: round trip mismatch", i)
		}
	}
}

func TestPackBits_RunBounds(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	src := make([]byte, 4096)
	for i := range src {
		src[i] = byte(r.IntN(2))
	}
	enc := PackBits(nil, src)
	for i := 0; i < len(enc); {
		n := int(int8(enc[i]))
		if n == -128 {
			t.Fatalf("control byte 0x80 emitted at %d", i)
		}
		if n >= 0 {
			run := enc[i+1 : i+n+2]
			// No three equal bytes inside a literal run.
			for k := 0; k+2 < len(run); k++ {
				if run[k] == run[k+1] && run[k] == run[k+2] {
					t.Errorf("literal run at %d contains a repeat of three", i)
				}
			}
			i += n + 2
		} else {
			if 1-n < 3 || 1-n > 128 {
				t.Errorf("repeat run at %d has length %d", i, 1-n)
			}
			i += 2
		}
	}
}

func TestPackBits_AppendsToDst(t *testing.T) {
	dst := []byte{0xEE}
	got := PackBits(dst, []byte{5})
	if diff := cmp.Diff([]byte{0xEE, 0x00, 5}, got); diff != "" {
		t.Errorf("PackBits mismatch (-want +got):\n%s", diff)
	}
}

func TestUnpackBits_NoOp(t *testing.T) {
	got, err := UnpackBits([]byte{0x80, 0x00, 0x11})
	if err != nil {
		t.Fatalf("UnpackBits failed: %v", err)
	}
	if diff := cmp.Diff([]byte{0x11}, got); diff != "" {
		t.Errorf("UnpackBits mismatch (-want +got):\n%s", diff)
	}
}

func TestUnpackBits_Truncated(t *testing.T) {
	for _, src := range [][]byte{{0x02, 1, 2}, {0xFE}} {
		if _, err := UnpackBits(src); err == nil {
			t.Errorf("UnpackBits(% x) error = nil, want error", src)
		}
	}
}
