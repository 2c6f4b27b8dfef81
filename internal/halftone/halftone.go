// Package halftone converts source rows to ink amounts and dithers them
// into the bit planes a PCL printer consumes.
package halftone

import (
	"log/slog"

	"github.com/mzyy94/pclraster/internal/pcl"
)

// Halftoner creates converters and ditherers for pcl encoders.
type Halftoner struct{}

// New returns a Halftoner.
func New() *Halftoner { return &Halftoner{} }

// NewConverter implements pcl.Halftoner.
func (*Halftoner) NewConverter(cfg pcl.ConvertConfig) (pcl.Converter, error) {
	c, err := newConverter(cfg)
	if err != nil {
		return nil, err
	}
	slog.Debug("color converter", "kind", c.kind, "bpp", c.bpp, "threshold", c.threshold)
	return c, nil
}

// NewDitherer implements pcl.Halftoner.
func (*Halftoner) NewDitherer(cfg pcl.DitherConfig) (pcl.Ditherer, error) {
	d, err := newDitherer(cfg)
	if err != nil {
		return nil, err
	}
	slog.Debug("ditherer",
		"imageWidth", cfg.ImageWidth,
		"outWidth", cfg.OutWidth,
		"aspect", []int{cfg.XAspect, cfg.YAspect},
		"channels", len(d.channels),
		"inkSpread", cfg.InkSpread,
		"bayer", screenSize(cfg.InkSpread),
	)
	return d, nil
}
