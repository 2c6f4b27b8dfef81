package halftone

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/makeworld-the-better-one/dither/v2"

	"github.com/mzyy94/pclraster/internal/pcl"
)

const fullInk = 0xffff

// option is one printable dot: its darkness and the plane bits it sets.
type option struct {
	value int32
	bits  byte
	light bool
}

// channel dithers one converter channel into a dark ink plane and,
// optionally, its light companion.
type channel struct {
	src    int
	dark   pcl.Ink
	light  pcl.Ink
	levels []option // ascending, levels[0] is no dot
	vals   []int32
	phase  int // screen offset against the other channels
}

// ditherer is an ordered ditherer: each ink amount is placed between its
// two nearest dot levels and the Bayer screen picks one of them.
type ditherer struct {
	cfg      pcl.DitherConfig
	gray     bool
	blackGen bool
	channels []*channel
	srcX     []int
	mapper   dither.PixelMapper
	last     [pcl.NumInks]int
}

func optionsFor(cfg pcl.DitherConfig, ink pcl.Ink, hasLight bool) []option {
	if r := cfg.Ranges[ink]; len(r) > 0 {
		opts := make([]option, len(r))
		for i, d := range r {
			opts[i] = option{int32(d.Value * fullInk), byte(d.Bits), d.Light && hasLight}
		}
		return opts
	}
	if s := cfg.DotSizes[ink]; len(s) > 0 {
		opts := make([]option, len(s))
		for i, v := range s {
			opts[i] = option{value: int32(v * fullInk), bits: byte(i + 1)}
		}
		return opts
	}
	if ratio := cfg.LightInk[ink]; ratio > 0 && hasLight {
		return []option{
			{value: int32(ratio * fullInk), bits: 1, light: true},
			{value: fullInk, bits: 1},
		}
	}
	return []option{{value: fullInk, bits: 1}}
}

// screenSize picks the Bayer matrix side from the ink spread: small cells
// keep line art sharp, large ones give solid areas more levels.
func screenSize(spread int) uint {
	switch {
	case spread >= 19:
		return 4
	case spread >= 15:
		return 16
	}
	return 8
}

func isPow2(n int) bool { return n > 0 && n&(n-1) == 0 }

// newMapper builds the Bayer screen. On anisotropic resolutions the matrix
// is stretched along the denser axis so screen cells stay square on paper.
func newMapper(cfg pcl.DitherConfig) dither.PixelMapper {
	w, h := screenSize(cfg.InkSpread), screenSize(cfg.InkSpread)
	if cfg.YAspect > 1 && isPow2(cfg.YAspect) {
		w *= uint(cfg.YAspect)
	}
	if cfg.XAspect > 1 && isPow2(cfg.XAspect) {
		h *= uint(cfg.XAspect)
	}
	return dither.Bayer(w, h, 1.0)
}

func newDitherer(cfg pcl.DitherConfig) (*ditherer, error) {
	if cfg.ImageWidth <= 0 || cfg.OutWidth <= 0 {
		return nil, fmt.Errorf("halftone: dither widths %d -> %d", cfg.ImageWidth, cfg.OutWidth)
	}
	if len(cfg.Inks) == 0 {
		return nil, fmt.Errorf("halftone: no inks")
	}
	d := &ditherer{
		cfg:    cfg,
		gray:   cfg.Output != pcl.OutputColor,
		srcX:   make([]int, cfg.OutWidth),
		mapper: newMapper(cfg),
	}
	for x := range d.srcX {
		d.srcX[x] = x * cfg.ImageWidth / cfg.OutWidth
	}

	has := map[pcl.Ink]bool{}
	for _, ink := range cfg.Inks {
		has[ink] = true
	}
	add := func(src int, dark, light pcl.Ink) {
		hasLight := light != dark && has[light]
		levels := append([]option{{}}, optionsFor(cfg, dark, hasLight)...)
		slices.SortStableFunc(levels, func(a, b option) int { return cmp.Compare(a.value, b.value) })
		d.channels = append(d.channels, &channel{
			src:    src,
			dark:   dark,
			light:  light,
			levels: levels,
			vals:   make([]int32, cfg.OutWidth),
			phase:  len(d.channels),
		})
	}
	if d.gray {
		add(0, pcl.InkBlack, pcl.InkBlack)
		return d, nil
	}
	for _, ink := range cfg.Inks {
		switch ink {
		case pcl.InkBlack:
			d.blackGen = true
			add(chanK, pcl.InkBlack, pcl.InkBlack)
		case pcl.InkCyan:
			add(chanC, pcl.InkCyan, pcl.InkLightCyan)
		case pcl.InkMagenta:
			add(chanM, pcl.InkMagenta, pcl.InkLightMagenta)
		case pcl.InkYellow:
			add(chanY, pcl.InkYellow, pcl.InkYellow)
		}
	}
	return d, nil
}

// blackAmount maps the gray component onto black ink.
func (d *ditherer) blackAmount(k int32) int32 {
	x := float64(k) / fullInk
	lower, upper := d.cfg.BlackLower, d.cfg.BlackUpper
	if x <= lower || upper <= lower {
		return 0
	}
	level := d.cfg.BlackLevel
	if level <= 0 {
		level = 1
	}
	y := min((x-lower)/(upper-lower)*level, 1)
	return int32(y * fullInk)
}

// prepare scales the converted row to output width and applies black
// generation and density.
func (d *ditherer) prepare(in []uint16) {
	n := 4
	if d.gray {
		n = 1
	}
	density := d.cfg.Density
	if density <= 0 {
		density = 1
	}
	for x, sx := range d.srcX {
		o := sx * n
		var k int32
		if d.blackGen {
			k = d.blackAmount(int32(in[o+chanK]))
		}
		for _, ch := range d.channels {
			v := int32(in[o+ch.src])
			switch {
			case d.gray:
			case ch.src == chanK:
				v = k
			default:
				v = max(v-k, 0)
			}
			ch.vals[x] = int32(min(float64(v)*density, fullInk))
		}
	}
}

func setDot(plane []byte, x int) {
	plane[x>>3] |= 0x80 >> uint(x&7)
}

func (d *ditherer) mark(planes *pcl.Planes, ink pcl.Ink, bits byte, x int) {
	if planes.Plane(ink) == nil {
		return
	}
	if bits&1 != 0 {
		setDot(planes.Low(ink), x)
	}
	if bits&2 != 0 {
		if high := planes.High(ink); high != nil {
			setDot(high, x)
		} else {
			setDot(planes.Low(ink), x)
		}
	}
	d.last[ink] = max(d.last[ink], x>>3)
}

// pick returns the dot printed for amount v at (x, y). v is placed
// between the nearest levels below and above it; the screen decides which
// of the two is printed in proportion to the distance.
func (d *ditherer) pick(ch *channel, v int32, x, y int) option {
	i := 0
	for i+1 < len(ch.levels) && ch.levels[i+1].value <= v {
		i++
	}
	lo := ch.levels[i]
	if i+1 == len(ch.levels) {
		return lo
	}
	hi := ch.levels[i+1]
	f := uint16(int64(v-lo.value) * fullInk / int64(hi.value-lo.value))
	// Offset each channel's screen so planes do not stack dot on dot.
	p := ch.phase
	r, _, _ := d.mapper(x+3*p, y+5*p, f, f, f)
	if r > 0x8000 {
		return hi
	}
	return lo
}

// Dither implements pcl.Ditherer.
func (d *ditherer) Dither(in []uint16, row int, planes *pcl.Planes, duplicate bool, zeroMask uint) {
	for i := range d.last {
		d.last[i] = -1
	}
	if !duplicate {
		d.prepare(in)
	}

	for _, ch := range d.channels {
		if zeroMask&(1<<uint(ch.src)) != 0 {
			continue
		}
		for x, v := range ch.vals {
			o := d.pick(ch, v, x, row)
			if o.bits == 0 {
				continue
			}
			ink := ch.dark
			if o.light {
				ink = ch.light
			}
			d.mark(planes, ink, o.bits, x)
		}
	}
}

// LastPosition implements pcl.Ditherer.
func (d *ditherer) LastPosition(ink pcl.Ink) int {
	return d.last[ink]
}
