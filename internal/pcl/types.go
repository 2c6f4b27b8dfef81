package pcl

import (
	"fmt"
	"strings"

	"github.com/OpenPrinting/go-mfp/abstract"
)

// Output is the colour mode of the emitted raster.
type Output int

const (
	OutputColor      Output = 0
	OutputGray       Output = 1
	OutputMonochrome Output = 2 // Thresholded black only
)

func (o Output) String() string {
	switch o {
	case OutputColor:
		return "color"
	case OutputGray:
		return "gray"
	case OutputMonochrome:
		return "monochrome"
	}
	return fmt.Sprintf("Output(%d)", int(o))
}

// ParseOutput accepts "color", "gray"/"grayscale" and "mono"/"monochrome"/"bw".
func ParseOutput(s string) (Output, error) {
	switch strings.ToLower(s) {
	case "", "color", "colour":
		return OutputColor, nil
	case "gray", "grey", "grayscale":
		return OutputGray, nil
	case "mono", "monochrome", "bw", "binary":
		return OutputMonochrome, nil
	}
	return OutputColor, fmt.Errorf("unknown output mode %q", s)
}

// OutputFromColorMode maps the go-mfp colour mode vocabulary onto Output.
func OutputFromColorMode(m abstract.ColorMode) Output {
	switch m {
	case abstract.ColorModeMono:
		return OutputGray
	case abstract.ColorModeBinary:
		return OutputMonochrome
	default:
		return OutputColor
	}
}

// Orientation of the image on the page.
type Orientation int

const (
	OrientAuto      Orientation = 0
	OrientPortrait  Orientation = 1
	OrientLandscape Orientation = 2
)

func (o Orientation) String() string {
	switch o {
	case OrientAuto:
		return "auto"
	case OrientPortrait:
		return "portrait"
	case OrientLandscape:
		return "landscape"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// ParseOrientation accepts "auto", "portrait" and "landscape".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return OrientAuto, nil
	case "portrait":
		return OrientPortrait, nil
	case "landscape":
		return OrientLandscape, nil
	}
	return OrientAuto, fmt.Errorf("unknown orientation %q", s)
}

// ImageType selects the dither ink spread.
type ImageType int

const (
	ImageContinuous ImageType = 0
	ImageLineArt    ImageType = 1
	ImageSolidTone  ImageType = 2
)

// ParseImageType accepts "continuous"/"photo", "lineart" and "solid".
func ParseImageType(s string) (ImageType, error) {
	switch strings.ToLower(s) {
	case "", "continuous", "photo":
		return ImageContinuous, nil
	case "lineart", "line-art", "line_art":
		return ImageLineArt, nil
	case "solid", "solidtone", "solid-tone":
		return ImageSolidTone, nil
	}
	return ImageContinuous, fmt.Errorf("unknown image type %q", s)
}

// Compression is the raster row encoding selected once per job.
type Compression int

const (
	CompressionNone Compression = 0 // ESC*b0M
	CompressionTIFF Compression = 2 // ESC*b2M, packbits
)

// Ink identifies one output plane.
type Ink int

const (
	InkBlack Ink = iota
	InkCyan
	InkMagenta
	InkYellow
	InkLightCyan
	InkLightMagenta

	NumInks = 6
)

func (i Ink) String() string {
	switch i {
	case InkBlack:
		return "black"
	case InkCyan:
		return "cyan"
	case InkMagenta:
		return "magenta"
	case InkYellow:
		return "yellow"
	case InkLightCyan:
		return "light-cyan"
	case InkLightMagenta:
		return "light-magenta"
	}
	return fmt.Sprintf("Ink(%d)", int(i))
}

// Request holds the raw, unvalidated print options.
type Request struct {
	Model       int
	MediaSize   string
	PageWidth   int // points; used when MediaSize is empty or not catalogued
	PageHeight  int
	MediaType   string
	MediaSource string
	Resolution  string
	InkType     string
	Output      Output
	Orientation Orientation
	Scaling     float64 // >0 percent of the imageable area, <0 pixels per inch, 0 = 100%
	Left        int     // points from the page edge; negative centres
	Top         int
	ImageType   ImageType
	Density     float64 // 0 = 1.0
}

// DefaultRequest returns a centred, 100% colour request for model.
func DefaultRequest(model int) Request {
	return Request{
		Model:   model,
		Output:  OutputColor,
		Scaling: 100,
		Left:    -1,
		Top:     -1,
		Density: 1,
	}
}

// Job is a fully resolved print job. Only Resolve creates one.
type Job struct {
	Model      int
	Capability *Capability

	Resolution     abstract.Resolution
	ResolutionName string

	MediaSize       MediaSize
	MediaSizeCode   int
	MediaType       int
	MediaTypeName   string
	MediaSource     int
	MediaSourceName string

	Output      Output
	Orientation Orientation
	Scaling     float64
	Left        int
	Top         int
	ImageType   ImageType
	Density     float64

	SixColor    bool
	CRet        bool // 4-level dots
	CRetB       bool // 600 dpi 4-level dots with PJL wrapping; implies CRet
	Planes      int
	Compression Compression
	BlankLines  bool // elide blank rows

	Warnings []error

	resolved bool
}

// Gray reports whether only the black plane is printed.
func (j *Job) Gray() bool {
	return j.Output == OutputGray || j.Output == OutputMonochrome
}

// Inks returns the planes allocated for this job.
func (j *Job) Inks() []Ink {
	if j.Gray() {
		return []Ink{InkBlack}
	}
	var inks []Ink
	if !j.Capability.Color.Has(ColorCMY) {
		inks = append(inks, InkBlack)
	}
	inks = append(inks, InkCyan, InkMagenta, InkYellow)
	if j.SixColor {
		inks = append(inks, InkLightCyan, InkLightMagenta)
	}
	return inks
}
