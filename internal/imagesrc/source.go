// Package imagesrc adapts decoded images to the row interface of the PCL
// encoder.
package imagesrc

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Source serves rows of a gray, paletted or RGBA image.
// Other image types are converted to RGBA when the Source is created.
type Source struct {
	pix     []byte
	stride  int
	width   int
	height  int
	bpp     int
	palette color.Palette
	dpi     int

	// OnProgress, when set, is called with each progress report.
	OnProgress func(current, total int)
}

// New wraps img.
func New(img image.Image) *Source {
	b := img.Bounds()
	s := &Source{width: b.Dx(), height: b.Dy()}
	switch m := img.(type) {
	case *image.Gray:
		s.bpp = 1
		s.pix, s.stride = m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], m.Stride
	case *image.Paletted:
		s.bpp = 1
		s.palette = m.Palette
		s.pix, s.stride = m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], m.Stride
	case *image.RGBA:
		s.bpp = 4
		s.pix, s.stride = m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], m.Stride
	default:
		dst := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		s.bpp = 4
		s.pix, s.stride = dst.Pix, dst.Stride
	}
	return s
}

// Decode reads an image in any registered format. The returned format is
// the decoder name, e.g. "png" or "tiff".
func Decode(r io.Reader) (*Source, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	s := New(img)
	s.dpi = DetectDPI(data)
	slog.Debug("image decoded", "format", format, "width", s.width, "height", s.height, "bpp", s.bpp, "dpi", s.dpi)
	return s, format, nil
}

func (s *Source) Width() int         { return s.width }
func (s *Source) Height() int        { return s.height }
func (s *Source) BytesPerPixel() int { return s.bpp }

// Palette returns the colour table of an indexed image, nil otherwise.
func (s *Source) Palette() color.Palette { return s.palette }

// DPI returns the resolution recorded in the image file, or 0.
func (s *Source) DPI() int { return s.dpi }

// Row copies source row row into buf.
func (s *Source) Row(buf []byte, row int) error {
	if row < 0 || row >= s.height {
		return fmt.Errorf("row %d out of range [0, %d)", row, s.height)
	}
	n := s.width * s.bpp
	if len(buf) < n {
		return fmt.Errorf("row buffer %d bytes, need %d", len(buf), n)
	}
	off := row * s.stride
	copy(buf[:n], s.pix[off:off+n])
	return nil
}

// Progress logs encoding progress.
func (s *Source) Progress(current, total int) {
	slog.Debug("encoding", "row", current, "total", total)
	if s.OnProgress != nil {
		s.OnProgress(current, total)
	}
}

// Image returns the pixels as an image.Image sharing the Source's buffer,
// reflecting any rotation applied so far.
func (s *Source) Image() image.Image {
	r := image.Rect(0, 0, s.width, s.height)
	switch {
	case s.bpp == 4:
		return &image.RGBA{Pix: s.pix, Stride: s.stride, Rect: r}
	case s.palette != nil:
		return &image.Paletted{Pix: s.pix, Stride: s.stride, Rect: r, Palette: s.palette}
	}
	return &image.Gray{Pix: s.pix, Stride: s.stride, Rect: r}
}

// RotateClockwise turns the image a quarter turn clockwise.
func (s *Source) RotateClockwise() {
	w, h, bpp := s.width, s.height, s.bpp
	stride := h * bpp
	pix := make([]byte, w*stride)
	for y := range h {
		src := s.pix[y*s.stride:]
		dx := (h - 1 - y) * bpp
		for x := range w {
			copy(pix[x*stride+dx:x*stride+dx+bpp], src[x*bpp:x*bpp+bpp])
		}
	}
	s.pix, s.stride = pix, stride
	s.width, s.height = h, w
}
