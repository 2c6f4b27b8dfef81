package proof

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/mzyy94/pclraster/internal/imagesrc"
	"github.com/mzyy94/pclraster/internal/pcl"
)

func letterJob(t *testing.T) *pcl.Job {
	t.Helper()
	req := pcl.DefaultRequest(550)
	req.MediaSize = "Letter"
	req.Resolution = "300x300"
	job, err := pcl.Resolve(req)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	return job
}

func TestPlace(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		want   Layout
		rotate bool
	}{
		{
			name: "square portrait",
			w:    100, h: 100,
			want: Layout{
				PageWidth: 612, PageHeight: 792,
				AreaX: 18, AreaY: 3, AreaW: 576, AreaH: 756,
				ImageX: 18, ImageY: 93, ImageW: 576, ImageH: 576,
			},
		},
		{
			name: "wide landscape",
			w:    200, h: 100,
			want: Layout{
				PageWidth: 612, PageHeight: 792,
				AreaX: 18, AreaY: 3, AreaW: 576, AreaH: 756,
				ImageX: 117, ImageY: 3, ImageW: 378, ImageH: 756,
			},
			rotate: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := imagesrc.New(image.NewGray(image.Rect(0, 0, tt.w, tt.h)))
			got := Place(letterJob(t), src)
			if diff := cmp.Diff(tt.want, got, cmpopts.IgnoreFields(Layout{}, "Geometry")); diff != "" {
				t.Errorf("Place mismatch (-want +got):\n%s", diff)
			}
			if tt.rotate && (src.Width() != tt.h || src.Height() != tt.w) {
				t.Errorf("source = %dx%d, want rotated %dx%d", src.Width(), src.Height(), tt.h, tt.w)
			}
		})
	}
}

func TestCaption(t *testing.T) {
	job := letterJob(t)
	src := imagesrc.New(image.NewGray(image.Rect(0, 0, 8, 8)))
	got := Caption(job, Place(job, src).Geometry)
	for _, want := range []string{"550", "Letter", "300x300 DPI", "portrait", "2400x2400 dots"} {
		if !strings.Contains(got, want) {
			t.Errorf("Caption = %q, missing %q", got, want)
		}
	}
}

func TestGenerate(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	data, err := Generate(letterJob(t), imagesrc.New(img))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output starts with %q, want %%PDF-", data[:min(len(data), 8)])
	}
	if !bytes.Contains(data, []byte("%%EOF")) {
		t.Error("output has no EOF marker")
	}
}

func TestGenerate_Empty(t *testing.T) {
	src := imagesrc.New(image.NewGray(image.Rect(0, 0, 0, 0)))
	if _, err := Generate(letterJob(t), src); err == nil {
		t.Error("Generate of empty image succeeded")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proof.pdf")
	src := imagesrc.New(image.NewGray(image.Rect(0, 0, 10, 10)))
	if err := WriteFile(letterJob(t), src, path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("written file is not a PDF")
	}
}
