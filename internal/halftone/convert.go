package halftone

import (
	"fmt"

	"github.com/mzyy94/pclraster/internal/pcl"
)

// Output channels: one K channel for gray output; C, M, Y and the gray
// component K for colour. Bit i of the zero mask is channel i.
const (
	chanC = 0
	chanM = 1
	chanY = 2
	chanK = 3
)

type convKind int

const (
	grayToK convKind = iota
	rgbToK
	rgbToCMYK
	indexedToK
	indexedToCMYK
)

func (k convKind) String() string {
	switch k {
	case grayToK:
		return "gray-k"
	case rgbToK:
		return "rgb-k"
	case rgbToCMYK:
		return "rgb-cmyk"
	case indexedToK:
		return "indexed-k"
	case indexedToCMYK:
		return "indexed-cmyk"
	}
	return fmt.Sprintf("convKind(%d)", int(k))
}

// converter turns source rows into 16-bit ink amounts. Source pixels are
// 1 byte gray or palette index, 3 bytes RGB, or 4 bytes premultiplied RGBA
// composited onto white paper.
type converter struct {
	kind      convKind
	bpp       int
	threshold bool
	palette   [][3]uint8
}

func newConverter(cfg pcl.ConvertConfig) (*converter, error) {
	if cfg.Width <= 0 {
		return nil, fmt.Errorf("halftone: image width %d", cfg.Width)
	}
	c := &converter{
		bpp:       cfg.BytesPerPixel,
		threshold: cfg.Output == pcl.OutputMonochrome,
	}
	gray := cfg.Output != pcl.OutputColor

	switch {
	case cfg.Palette != nil:
		if c.bpp != 1 {
			return nil, fmt.Errorf("halftone: indexed image with %d bytes per pixel", c.bpp)
		}
		c.palette = make([][3]uint8, 256)
		for i, col := range cfg.Palette {
			if i >= len(c.palette) {
				break
			}
			r, g, b, a := col.RGBA()
			// Premultiplied 16-bit onto white.
			w := 0xffff - a
			c.palette[i] = [3]uint8{uint8((r + w) >> 8), uint8((g + w) >> 8), uint8((b + w) >> 8)}
		}
		c.kind = indexedToCMYK
		if gray {
			c.kind = indexedToK
		}
	case c.bpp == 1:
		c.kind = grayToK
		if !gray {
			// Neutral CMY plus full gray component.
			c.kind = rgbToCMYK
		}
	case c.bpp == 3 || c.bpp == 4:
		c.kind = rgbToCMYK
		if gray {
			c.kind = rgbToK
		}
	default:
		return nil, fmt.Errorf("halftone: unsupported %d bytes per pixel", c.bpp)
	}
	return c, nil
}

// luminance uses the weights of NTSC luma, in 0..255.
func luminance(r, g, b uint8) uint8 {
	return uint8((uint32(r)*30 + uint32(g)*59 + uint32(b)*11) / 100)
}

func (c *converter) rgb(in []byte, x int) (r, g, b uint8) {
	switch c.kind {
	case indexedToK, indexedToCMYK:
		p := c.palette[in[x]]
		return p[0], p[1], p[2]
	}
	if c.bpp == 1 {
		return in[x], in[x], in[x]
	}
	o := x * c.bpp
	r, g, b = in[o], in[o+1], in[o+2]
	if c.bpp == 4 {
		w := 255 - in[o+3]
		r, g, b = r+w, g+w, b+w
	}
	return r, g, b
}

func (c *converter) ink(v uint8) uint16 {
	if c.threshold {
		if v < 128 {
			return 0xffff
		}
		return 0
	}
	return uint16(255-v) * 257
}

// Convert implements pcl.Converter.
func (c *converter) Convert(in []byte, out []uint16) uint {
	width := len(in) / c.bpp
	switch c.kind {
	case grayToK:
		nonzero := false
		for x := range width {
			out[x] = c.ink(in[x])
			nonzero = nonzero || out[x] != 0
		}
		if !nonzero {
			return 1
		}
		return 0

	case rgbToK, indexedToK:
		nonzero := false
		for x := range width {
			out[x] = c.ink(luminance(c.rgb(in, x)))
			nonzero = nonzero || out[x] != 0
		}
		if !nonzero {
			return 1
		}
		return 0
	}

	var seen [4]bool
	for x := range width {
		r, g, b := c.rgb(in, x)
		cy, m, y := uint16(255-r)*257, uint16(255-g)*257, uint16(255-b)*257
		o := x * 4
		out[o+chanC], out[o+chanM], out[o+chanY] = cy, m, y
		out[o+chanK] = min(cy, m, y)
		for ch := range seen {
			seen[ch] = seen[ch] || out[o+ch] != 0
		}
	}
	var mask uint
	for ch, s := range seen {
		if !s {
			mask |= 1 << ch
		}
	}
	return mask
}
