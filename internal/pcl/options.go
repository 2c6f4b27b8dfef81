package pcl

import (
	"log/slog"
	"strconv"

	"github.com/OpenPrinting/go-mfp/abstract"
)

// Resolve validates req against the printer's capability and returns the
// job to print. Substitutions are logged and kept in Job.Warnings; an
// error is returned only when no valid job can be built.
func Resolve(req Request) (*Job, error) {
	c, ok := Lookup(req.Model)
	job := &Job{
		Model:       req.Model,
		Capability:  c,
		Output:      req.Output,
		Orientation: req.Orientation,
		Scaling:     req.Scaling,
		Left:        req.Left,
		Top:         req.Top,
		ImageType:   req.ImageType,
		Density:     req.Density,
	}
	if !ok {
		job.warn("model", strconv.Itoa(req.Model), ErrUnknownModel)
	}
	if job.Scaling == 0 {
		job.Scaling = 100
	}
	if job.Density <= 0 {
		job.Density = 1
	}

	if err := job.resolveMediaSize(req); err != nil {
		return nil, err
	}
	job.resolveMediaType(req.MediaType)
	job.resolveMediaSource(req.MediaSource)
	job.resolveResolution(req.Resolution)
	job.resolveOutput()
	job.resolveInkType(req.InkType)
	job.derive()

	job.resolved = true
	slog.Debug("print job resolved",
		"model", job.Model,
		"mediaSize", job.MediaSize.Name,
		"resolution", job.ResolutionName,
		"output", job.Output,
		"planes", job.Planes,
		"cret", job.CRet,
		"cretb", job.CRetB,
		"warnings", len(job.Warnings),
	)
	return job, nil
}

func (j *Job) warn(option, value string, err error) {
	oe := &OptionError{Option: option, Value: value, Err: err}
	j.Warnings = append(j.Warnings, oe)
	slog.Warn("print option substituted", "model", j.Model, "option", option, "value", value, "err", err)
}

func (j *Job) resolveMediaSize(req Request) error {
	c := j.Capability
	name := req.MediaSize
	if name == "" && req.PageWidth > 0 && req.PageHeight > 0 {
		if m, ok := MediaSizeBySize(req.PageWidth, req.PageHeight); ok {
			name = m.Name
		}
	}
	if name == "" && req.PageWidth <= 0 {
		name = c.DefaultParameter(ParamPageSize)
	}

	size, known := FindMediaSize(name)
	if !known {
		if req.PageWidth <= 0 || req.PageHeight <= 0 {
			return &OptionError{Option: "media size", Value: name, Err: ErrUnsupportedMediaSize}
		}
		if name == "" {
			name = "Custom"
		}
		size = MediaSize{Name: name, Width: req.PageWidth, Height: req.PageHeight}
	}
	j.MediaSize = size

	if code, ok := c.MediaSizeCode(size.Name); ok {
		j.MediaSizeCode = code
		return nil
	}
	if !c.Flags.Has(PrinterCustomSize) {
		return &OptionError{Option: "media size", Value: size.Name, Err: ErrUnsupportedMediaSize}
	}
	j.warn("media size", size.Name, ErrUnsupportedMediaSize)
	j.MediaSizeCode = MediaSizeCustom
	return nil
}

func (j *Job) resolveMediaType(name string) {
	j.MediaType = MediaTypePlain
	j.MediaTypeName, _ = MediaTypes.Name(MediaTypePlain)
	if name == "" {
		return
	}
	code, ok := MediaTypes.Code(name)
	if !ok || !Allowed(code, j.Capability.PaperTypes) {
		j.warn("media type", name, ErrUnsupportedMediaType)
		return
	}
	j.MediaType = code
	j.MediaTypeName = name
}

func (j *Job) resolveMediaSource(name string) {
	j.MediaSource = MediaSourceStandard
	j.MediaSourceName, _ = MediaSources.Name(MediaSourceStandard)
	if name == "" || name == j.MediaSourceName {
		return
	}
	code, ok := ResolveSource(name, j.Capability)
	if !ok || !Allowed(code, j.Capability.PaperSources) {
		j.warn("media source", name, ErrUnsupportedMediaSource)
		return
	}
	j.MediaSource = code
	j.MediaSourceName = name
}

// matchResolution finds the supported table entry for a requested name.
// Exact names win; otherwise any supported entry with the same dpi pair.
func matchResolution(c *Capability, name string) (CodeEntry, abstract.Resolution, bool) {
	res, err := ParseResolution(name)
	if err != nil {
		return CodeEntry{}, abstract.Resolution{}, false
	}
	if code, ok := Resolutions.Code(name); ok && c.Resolutions.Has(ResolutionSet(code)) {
		return CodeEntry{Name: name, Code: code}, res, true
	}
	for _, e := range Resolutions {
		if !c.Resolutions.Has(ResolutionSet(e.Code)) {
			continue
		}
		r, err := ParseResolution(e.Name)
		if err == nil && r.XResolution == res.XResolution && r.YResolution == res.YResolution {
			return e, res, true
		}
	}
	return CodeEntry{}, abstract.Resolution{}, false
}

func (j *Job) resolveResolution(name string) {
	c := j.Capability
	if name != "" {
		if e, res, ok := matchResolution(c, name); ok {
			j.Resolution, j.ResolutionName = res, e.Name
			return
		}
		j.warn("resolution", name, ErrUnsupportedResolution)
	}
	def := c.DefaultResolution()
	e, res, _ := matchResolution(c, def)
	j.Resolution, j.ResolutionName = res, e.Name
}

func (j *Job) resolveOutput() {
	c := j.Capability
	x, y := j.Resolution.XResolution, j.Resolution.YResolution
	if c.Resolutions.Has(Res600x600Mono) && !j.Gray() && x == 600 && y == 600 {
		j.warn("output", j.Output.String(), ErrResolutionDowngrade)
		j.Output = OutputGray
	}
	if c.Color == ColorNone && j.Output == OutputColor {
		slog.Info("printer has no colour ink, printing grayscale", "model", j.Model)
		j.Output = OutputGray
	}
}

func (j *Job) resolveInkType(name string) {
	switch name {
	case "", InkTypeColorBlack:
		return
	case InkTypeColorPhoto:
		if !j.Capability.Color.Has(ColorCMYKcm) || j.Gray() {
			j.warn("ink type", name, ErrUnsupportedInkType)
			return
		}
		j.SixColor = true
	default:
		j.warn("ink type", name, ErrUnsupportedInkType)
	}
}

func (j *Job) derive() {
	c := j.Capability
	x, y := j.Resolution.XResolution, j.Resolution.YResolution

	j.CRet = x >= 300 && c.Color.Has(ColorCMYK4) && j.Output != OutputMonochrome
	j.CRetB = x >= 600 && y >= 600 && c.Color.Has(ColorCMYK4b) && !j.Gray()
	if j.CRetB {
		j.CRet = true
	}

	switch {
	case j.Gray():
		j.Planes = 1
	case c.Color.Has(ColorCMY):
		j.Planes = 3
	case j.SixColor:
		j.Planes = 6
	default:
		j.Planes = 4
	}

	j.Compression = CompressionNone
	if c.Flags.Has(PrinterTIFF) {
		j.Compression = CompressionTIFF
	}
	j.BlankLines = c.Flags.Has(PrinterBlankLine)
}
