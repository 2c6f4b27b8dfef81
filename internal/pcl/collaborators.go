package pcl

import "image/color"

// Image is a source of pixel rows.
type Image interface {
	Width() int
	Height() int
	BytesPerPixel() int
	// Row fills buf (Width()*BytesPerPixel() bytes) with source row row.
	Row(buf []byte, row int) error
	Progress(current, total int)
}

// Rotator is implemented by images that can be turned for landscape output.
type Rotator interface {
	RotateClockwise()
}

// Paletted is implemented by indexed images; BytesPerPixel is then 1.
type Paletted interface {
	Palette() color.Palette
}

// Converter turns one row of source pixels into device ink samples:
// one 16-bit K value per pixel for gray output, C, M, Y, K for colour.
// zeroMask has bit i set when channel i is zero across the whole row.
type Converter interface {
	Convert(in []byte, out []uint16) (zeroMask uint)
}

// Ditherer renders converted rows into plane buffers.
type Ditherer interface {
	// Dither writes output row row into planes. duplicate is true when in
	// is the same source row as the previous call.
	Dither(in []uint16, row int, planes *Planes, duplicate bool, zeroMask uint)
	// LastPosition is the offset of the last non-zero byte written to
	// ink's plane by the latest Dither call, or -1 if the plane is empty.
	LastPosition(ink Ink) int
}

// Halftoner creates the per-job colour converter and ditherer.
type Halftoner interface {
	NewConverter(cfg ConvertConfig) (Converter, error)
	NewDitherer(cfg DitherConfig) (Ditherer, error)
}

// ConvertConfig selects the colour conversion for a job.
type ConvertConfig struct {
	Output        Output
	Width         int
	BytesPerPixel int
	Palette       color.Palette // nil unless the image is indexed
	BlackInk      bool          // false on CMY-only heads: composite black
}

// DotRange is one dot size of a variable-dot ink.
type DotRange struct {
	Value float64 // relative darkness
	Bits  int     // value written to the plane
	Light bool    // printed with the light ink
}

// Dither tuning shared by all jobs.
var (
	DotSizes     = []float64{0.5, 0.832, 1.0}
	DotSizesCRet = []float64{1.0, 1.0, 1.0}

	VariableDitherRanges = []DotRange{
		{0.152, 1, true},
		{0.255, 2, true},
		{0.38, 3, true},
		{0.5, 1, false},
		{0.67, 2, false},
		{1.0, 3, false},
	}
)

const (
	LightInkRatio = 0.25
	BlackLevel    = 1.2
	BlackLower    = 0.3
	BlackUpper    = 0.999
)

// InkSpread returns the error diffusion spread for an image type.
func InkSpread(t ImageType) int {
	switch t {
	case ImageLineArt:
		return 19
	case ImageSolidTone:
		return 15
	}
	return 14
}

// DitherConfig is the per-job dithering setup.
type DitherConfig struct {
	ImageWidth int
	OutWidth   int // dots
	XAspect    int
	YAspect    int
	Output     Output
	Inks       []Ink

	// Per-ink dot sizes for multi-level inks; nil means two-level.
	DotSizes map[Ink][]float64
	// Per-ink variable ranges (light + dark dots); takes precedence over DotSizes.
	Ranges map[Ink][]DotRange
	// Per-ink light ink ratio for six-colour printing without CRet.
	LightInk map[Ink]float64

	InkSpread  int
	Density    float64
	BlackLevel float64
	BlackLower float64
	BlackUpper float64
}

// Levels returns the number of dot levels used for ink.
func (c DitherConfig) Levels(ink Ink) int {
	if len(c.Ranges[ink]) > 0 || len(c.DotSizes[ink]) > 0 {
		return 4
	}
	return 2
}

// Planes holds one row of bit-packed dot data per ink.
// With Split set each buffer is two RowBytes halves: the low bit plane
// first, then the high bit plane.
type Planes struct {
	RowBytes int
	Split    bool
	bufs     [NumInks][]byte
}

// NewPlanes allocates buffers for inks, rowBytes each (twice when split).
func NewPlanes(inks []Ink, rowBytes int, split bool) *Planes {
	p := &Planes{RowBytes: rowBytes, Split: split}
	n := rowBytes
	if split {
		n *= 2
	}
	for _, ink := range inks {
		p.bufs[ink] = make([]byte, n)
	}
	return p
}

// Plane returns the buffer for ink, or nil when the ink is not printed.
func (p *Planes) Plane(ink Ink) []byte { return p.bufs[ink] }

// Low returns the low bit plane (the whole plane when not split).
func (p *Planes) Low(ink Ink) []byte {
	b := p.bufs[ink]
	if b == nil {
		return nil
	}
	return b[:p.RowBytes]
}

// High returns the high bit plane, nil when not split.
func (p *Planes) High(ink Ink) []byte {
	b := p.bufs[ink]
	if b == nil || !p.Split {
		return nil
	}
	return b[p.RowBytes:]
}

// Clear zeroes every buffer.
func (p *Planes) Clear() {
	for _, b := range p.bufs {
		clear(b)
	}
}
