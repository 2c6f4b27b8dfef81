package pcl

import "testing"

func TestResampler_Properties(t *testing.T) {
	tests := []struct {
		image, out int
	}{
		{100, 100},
		{100, 300},
		{300, 100},
		{7, 1000},
		{1000, 7},
		{1, 50},
		{640, 2400},
	}
	for _, tt := range tests {
		r := NewResampler(tt.image, tt.out)
		prev := -1
		fetches := 0
		for y := range tt.out {
			row, fetch := r.Next()
			if y == 0 && row != 0 {
				t.Errorf("%d->%d: first row = %d, want 0", tt.image, tt.out, row)
			}
			if row < prev {
				t.Errorf("%d->%d: row %d went back to %d", tt.image, tt.out, y, row)
			}
			if row >= tt.image {
				t.Errorf("%d->%d: row %d maps to %d, past the image", tt.image, tt.out, y, row)
			}
			if fetch != (row != prev) {
				t.Errorf("%d->%d: row %d fetch = %v with row %d after %d", tt.image, tt.out, y, fetch, row, prev)
			}
			if fetch {
				fetches++
			}
			prev = row
		}
		want := min(tt.image, tt.out)
		if fetches != want {
			t.Errorf("%d->%d: %d fetches, want %d", tt.image, tt.out, fetches, want)
		}
	}
}

func TestResampler_ClampsZero(t *testing.T) {
	r := NewResampler(0, 0)
	row, fetch := r.Next()
	if row != 0 || !fetch {
		t.Errorf("Next() = %d, %v, want 0, true", row, fetch)
	}
}

func TestResampler_LastRow(t *testing.T) {
	tests := []struct {
		image, out int
		want       int
	}{
		{100, 100, 99},
		{100, 300, 99},
		{7, 1000, 6},
		{1, 50, 0},
		{640, 2400, 639},
		// Shrinking steps by whole rows, so the tail of the image is dropped.
		{300, 100, 297},
		{5, 3, 3},
		{1000, 7, 857},
	}
	for _, tt := range tests {
		r := NewResampler(tt.image, tt.out)
		var row int
		for range tt.out {
			row, _ = r.Next()
		}
		if row != tt.want {
			t.Errorf("%d->%d: last row = %d, want %d", tt.image, tt.out, row, tt.want)
		}
	}
}
