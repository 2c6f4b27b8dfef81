package pcl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// State is the position of an Encoder in the page protocol.
type State int

const (
	StateReset State = iota
	StateMediaConfigured
	StateResolutionConfigured
	StateRasterActive
	StateRowLoop
	StateRasterEnded
	StatePageEjected
)

func (s State) String() string {
	switch s {
	case StateReset:
		return "reset"
	case StateMediaConfigured:
		return "media-configured"
	case StateResolutionConfigured:
		return "resolution-configured"
	case StateRasterActive:
		return "raster-active"
	case StateRowLoop:
		return "row-loop"
	case StateRasterEnded:
		return "raster-ended"
	case StatePageEjected:
		return "page-ejected"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// stickyWriter remembers the first write error and drops everything after it.
type stickyWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (s *stickyWriter) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.w.Write(p)
	s.n += int64(n)
	s.err = err
	return n, err
}

func (s *stickyWriter) WriteString(str string) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.w.WriteString(str)
	s.n += int64(n)
	s.err = err
	return n, err
}

func (s *stickyWriter) Flush() error {
	if s.err != nil {
		return s.err
	}
	s.err = s.w.Flush()
	return s.err
}

// Encoder writes resolved jobs as PCL raster pages. An Encoder is not safe
// for concurrent use; run one per job.
type Encoder struct {
	w     *stickyWriter
	job   *Job
	ht    Halftoner
	state State

	segs   [][]byte
	packed []byte
}

// NewEncoder returns an encoder writing job to w. The job must come from
// Resolve.
func NewEncoder(w io.Writer, job *Job, ht Halftoner) (*Encoder, error) {
	if job == nil || !job.resolved {
		return nil, ErrJobNotResolved
	}
	if ht == nil {
		return nil, errors.New("pcl: nil halftoner")
	}
	return &Encoder{
		w:   &stickyWriter{w: bufio.NewWriter(w)},
		job: job,
		ht:  ht,
	}, nil
}

// State returns the current protocol state.
func (e *Encoder) State() State { return e.state }

// BytesWritten returns the number of bytes written so far.
func (e *Encoder) BytesWritten() int64 { return e.w.n }

// Job returns the job being encoded.
func (e *Encoder) Job() *Job { return e.job }

// ditherConfig builds the per-job dither setup: multi-level dot sizes for
// CRet inks, variable light/dark ranges for six-colour CRet and light ink
// ratios for plain six-colour printing.
func (e *Encoder) ditherConfig(imageWidth, outWidth int) DitherConfig {
	job := e.job
	x, y := job.Resolution.XResolution, job.Resolution.YResolution
	cfg := DitherConfig{
		ImageWidth: imageWidth,
		OutWidth:   outWidth,
		XAspect:    1,
		YAspect:    1,
		Output:     job.Output,
		Inks:       job.Inks(),
		InkSpread:  InkSpread(job.ImageType),
		Density:    job.Density,
		BlackLevel: BlackLevel,
		BlackLower: BlackLower,
		BlackUpper: BlackUpper,
	}
	if x > y {
		cfg.YAspect = x / y
	} else {
		cfg.XAspect = y / x
	}

	sizes := DotSizes
	if job.CRetB {
		sizes = DotSizesCRet
	}
	switch {
	case job.CRet:
		cfg.DotSizes = map[Ink][]float64{InkYellow: sizes}
		if !job.CRetB {
			cfg.DotSizes[InkBlack] = sizes
		}
		if job.SixColor {
			cfg.Ranges = map[Ink][]DotRange{
				InkCyan:    VariableDitherRanges,
				InkMagenta: VariableDitherRanges,
			}
		} else {
			cfg.DotSizes[InkCyan] = sizes
			cfg.DotSizes[InkMagenta] = sizes
		}
	case job.SixColor:
		cfg.LightInk = map[Ink]float64{
			InkCyan:    LightInkRatio,
			InkMagenta: LightInkRatio,
		}
	}
	return cfg
}

// geometry places img on the job's page. rotate reports that the image
// must be turned clockwise before its rows are read.
func (e *Encoder) geometry(img Image) (g Geometry, rotate bool) {
	job := e.job
	pw, ph := job.MediaSize.Width, job.MediaSize.Height
	g = ComputeGeometry(job, pw, ph, img.Width(), img.Height())
	if g.Orientation != OrientLandscape {
		return g, false
	}
	if _, ok := img.(Rotator); ok {
		return g, true
	}
	slog.Warn("image cannot be rotated, printing portrait", "model", job.Model)
	portrait := *job
	portrait.Orientation = OrientPortrait
	return ComputeGeometry(&portrait, pw, ph, img.Width(), img.Height()), false
}

func (e *Encoder) writeHeader(g Geometry) {
	job := e.job
	c := job.Capability

	if job.CRetB {
		e.w.WriteString(cmdEndRasterPCL3)
	}
	e.w.WriteString(cmdReset)
	if job.CRetB {
		e.w.WriteString(cmdPJLEnterPCL3GUI)
	}
	e.state = StateReset

	e.w.Write(MarshalPageSize(job.MediaSizeCode))
	e.w.WriteString(cmdPerfSkipOff)
	e.w.WriteString(cmdTopMarginZero)
	e.w.Write(MarshalMediaSource(job.MediaSource))
	e.w.Write(MarshalPrintQuality(job))
	e.state = StateMediaConfigured

	e.w.Write(MarshalResolution(job))
	e.w.Write(MarshalCompression(job.Compression))
	e.state = StateResolutionConfigured

	e.w.Write(MarshalRasterStart(job, g))
	e.state = StateRasterActive

	slog.Debug("raster started",
		"model", c.Model,
		"orientation", g.Orientation,
		"widthDots", g.OutWidthDots,
		"heightDots", g.OutHeightDots,
		"left", g.Left,
		"top", g.Top,
	)
}

func (e *Encoder) writeTrailer() {
	job := e.job
	e.w.Write(MarshalRasterEnd(job.Capability))
	e.state = StateRasterEnded

	e.w.WriteString(cmdEjectPage)
	if job.CRetB {
		e.w.WriteString(cmdPJLExit)
	}
	e.w.WriteString(cmdReset)
	e.state = StatePageEjected
}

// rowSegments lists the plane data of one row in wire order. With CRet each
// ink sends its high bit plane then its low one; under CRetB black is
// two-level and only its low plane is sent.
func (e *Encoder) rowSegments(p *Planes) [][]byte {
	job := e.job
	e.segs = e.segs[:0]
	for _, ink := range job.Inks() {
		switch {
		case !job.CRet:
			e.segs = append(e.segs, p.Low(ink))
		case ink == InkBlack && job.CRetB:
			e.segs = append(e.segs, p.Low(ink))
		default:
			e.segs = append(e.segs, p.High(ink), p.Low(ink))
		}
	}
	return e.segs
}

func (e *Encoder) writePlane(data []byte, last bool) {
	if e.job.Compression == CompressionTIFF {
		e.packed = PackBits(e.packed[:0], data)
		data = e.packed
	}
	e.w.Write(MarshalRowHeader(len(data), last))
	e.w.Write(data)
}

func (e *Encoder) writeRow(p *Planes) {
	segs := e.rowSegments(p)
	for i, s := range segs {
		e.writePlane(s, i == len(segs)-1)
	}
}

func (e *Encoder) blank(d Ditherer) bool {
	for _, ink := range e.job.Inks() {
		if d.LastPosition(ink) != -1 {
			return false
		}
	}
	return true
}

// PrintPage encodes one image as a complete page. The page is always
// closed once raster graphics have started: a failed source row or a
// cancelled context ends the row loop early, and that error is returned
// after the page-end commands are written.
func (e *Encoder) PrintPage(ctx context.Context, img Image) error {
	job := e.job
	if img.Width() <= 0 || img.Height() <= 0 {
		return fmt.Errorf("pcl: empty image %dx%d", img.Width(), img.Height())
	}

	g, rotate := e.geometry(img)
	imgW, imgH := img.Width(), img.Height()
	if rotate {
		imgW, imgH = imgH, imgW
	}
	bpp := img.BytesPerPixel()

	cc := ConvertConfig{
		Output:        job.Output,
		Width:         imgW,
		BytesPerPixel: bpp,
		BlackInk:      !job.Capability.Color.Has(ColorCMY),
	}
	if p, ok := img.(Paletted); ok {
		cc.Palette = p.Palette()
	}
	conv, err := e.ht.NewConverter(cc)
	if err != nil {
		return fmt.Errorf("pcl: create converter: %w", err)
	}
	dith, err := e.ht.NewDitherer(e.ditherConfig(imgW, g.OutWidthDots))
	if err != nil {
		return fmt.Errorf("pcl: create ditherer: %w", err)
	}
	// Rotate only once both exist, so a failed setup leaves img untouched.
	if rotate {
		img.(Rotator).RotateClockwise()
	}

	e.writeHeader(g)

	channels := 4
	if job.Gray() {
		channels = 1
	}
	in := make([]byte, imgW*bpp)
	out := make([]uint16, imgW*channels)
	planes := NewPlanes(job.Inks(), (g.OutWidthDots+7)/8, job.CRet)
	if job.Compression == CompressionTIFF {
		e.packed = make([]byte, 0, PackBitsBound(planes.RowBytes))
	}

	rs := NewResampler(imgH, g.OutHeightDots)
	var (
		lines    BlankLines
		zeroMask uint
		rowErr   error
		rows     int
	)
	e.state = StateRowLoop
	for y := 0; y < g.OutHeightDots; y++ {
		if y%progressInterval == 0 {
			img.Progress(y, g.OutHeightDots)
		}
		if err := ctx.Err(); err != nil {
			rowErr = err
			break
		}

		src, fetch := rs.Next()
		if fetch {
			if err := img.Row(in, src); err != nil {
				rowErr = &RowError{Row: src, Err: err}
				slog.Error("source row failed, closing page", "row", src, "err", err)
				break
			}
			zeroMask = conv.Convert(in, out)
		}

		planes.Clear()
		dith.Dither(out, y, planes, !fetch, zeroMask)

		emit, skip := lines.Row(job.BlankLines && e.blank(dith))
		if skip > 0 {
			e.w.Write(MarshalSkipLines(skip))
		}
		if emit {
			e.writeRow(planes)
		}
		if e.w.err != nil {
			break
		}
		rows++
	}
	if skip := lines.Flush(); skip > 0 {
		e.w.Write(MarshalSkipLines(skip))
	}
	img.Progress(rows, g.OutHeightDots)

	e.writeTrailer()
	err = e.w.Flush()
	e.state = StateReset
	if err != nil {
		return fmt.Errorf("pcl: write page: %w", err)
	}

	slog.Info("page encoded",
		"model", job.Model,
		"rows", rows,
		"bytes", e.w.n,
	)
	return rowErr
}
