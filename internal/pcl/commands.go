package pcl

import (
	"fmt"

	"github.com/OpenPrinting/go-mfp/abstract"
)

// MarshalPageSize builds ESC&l#A.
func MarshalPageSize(code int) []byte {
	return fmt.Appendf(nil, esc+"&l%dA", code)
}

// MarshalMediaSource builds ESC&l#H for a table source code. The standard
// source sends nothing.
func MarshalMediaSource(code int) []byte {
	if code == MediaSourceStandard {
		return nil
	}
	return fmt.Appendf(nil, esc+"&l%dH", SourceCommandValue(code))
}

// MarshalMediaType builds ESC&l#M.
func MarshalMediaType(code int) []byte {
	return fmt.Appendf(nil, esc+"&l%dM", code)
}

// MarshalPrintQuality builds the DeskJet quality selection for a job:
// presentation quality plus media type on printers that take it, raster
// quality, shingling and depletion on the older ones. Only sent at 300 dpi
// and above.
func MarshalPrintQuality(job *Job) []byte {
	c := job.Capability
	if job.Resolution.XResolution < 300 || !c.Flags.Has(PrinterDJ) {
		return nil
	}
	if c.Flags.Has(PrinterMediaType) {
		b := []byte(cmdQualityPresent)
		return append(b, MarshalMediaType(job.MediaType)...)
	}
	b := []byte(cmdRasterQualHigh + cmdShingling4)
	switch job.MediaType {
	case MediaTypePlain, MediaTypeBond:
		if c.Color.Has(ColorCMY) {
			b = append(b, cmdDepletion25...)
		} else {
			b = append(b, cmdDepletion50...) // with gamma correction
		}
	case MediaTypePremium, MediaTypeGlossy, MediaTypeTrans:
		b = append(b, cmdDepletionNone...)
	}
	return b
}

// usesCRD reports whether the job needs the configure raster data command
// rather than the simple resolution form.
func usesCRD(job *Job) bool {
	return job.Resolution.XResolution != job.Resolution.YResolution || job.CRet || job.SixColor
}

func appendPlaneBlock(b []byte, res abstract.Resolution, levels int) []byte {
	x, y := res.XResolution, res.YResolution
	return append(b, byte(x>>8), byte(x), byte(y>>8), byte(y), 0, byte(levels))
}

// MarshalConfigureRasterData builds ESC*g#W with its complex direct planar
// payload: format, plane count, then one block per plane.
func MarshalConfigureRasterData(res abstract.Resolution, planes int, cret, cretb bool) []byte {
	levels := 2
	if cret {
		levels = 4
	}
	b := fmt.Appendf(nil, esc+"*g%dW", 2+planes*crdPlaneBlockLen)
	b = append(b, crdFormatComplexDirectPlanar, byte(planes))
	if planes != 3 {
		black := levels
		if cretb {
			black = 2
		}
		b = appendPlaneBlock(b, res, black)
	}
	if planes != 1 {
		for range 3 { // cyan, magenta, yellow
			b = appendPlaneBlock(b, res, levels)
		}
	}
	if planes == 6 {
		for range 2 { // light cyan, light magenta
			b = appendPlaneBlock(b, res, levels)
		}
	}
	return b
}

// MarshalResolution builds the resolution and colour configuration.
func MarshalResolution(job *Job) []byte {
	if usesCRD(job) {
		return MarshalConfigureRasterData(job.Resolution, job.Planes, job.CRet, job.CRetB)
	}
	b := fmt.Appendf(nil, esc+"*t%dR", job.Resolution.XResolution)
	if !job.Gray() {
		if job.Capability.Color.Has(ColorCMY) {
			b = append(b, cmdSimpleCMY...)
		} else {
			b = append(b, cmdSimpleKCMY...)
		}
	}
	return b
}

// MarshalCompression builds ESC*b#M.
func MarshalCompression(c Compression) []byte {
	if c == CompressionTIFF {
		return []byte(cmdCompressTIFF)
	}
	return []byte(cmdCompressNone)
}

// MarshalRasterStart positions the raster area, sets its size and starts
// raster graphics. top and left are imageable-area offsets in points.
func MarshalRasterStart(job *Job, g Geometry) []byte {
	var b []byte
	top := g.Top + job.Capability.TopMargin
	if !job.CRetB {
		b = fmt.Appendf(b, esc+"&a%dH", 10*g.Left)
		b = fmt.Appendf(b, esc+"&a%dV", 10*top)
	}
	b = fmt.Appendf(b, esc+"*r%dS", g.OutWidthDots)
	b = fmt.Appendf(b, esc+"*r%dT", g.OutHeightDots)
	if job.CRetB {
		b = fmt.Appendf(b, esc+"*p%dY", top*4)
		b = fmt.Appendf(b, esc+"*p%dX", g.Left*4)
	}
	return append(b, cmdStartRaster...)
}

// MarshalRowHeader builds ESC*b#V, or ESC*b#W for the last plane of a row.
func MarshalRowHeader(n int, last bool) []byte {
	c := 'V'
	if last {
		c = 'W'
	}
	return fmt.Appendf(nil, esc+"*b%d%c", n, c)
}

// MarshalSkipLines builds ESC*b#Y.
func MarshalSkipLines(n int) []byte {
	return fmt.Appendf(nil, esc+"*b%dY", n)
}

// MarshalRasterEnd builds the end raster graphics command for the printer.
func MarshalRasterEnd(c *Capability) []byte {
	if c.Flags.Has(PrinterNewERG) {
		return []byte(cmdEndRasterNew)
	}
	return []byte(cmdEndRasterOld)
}
