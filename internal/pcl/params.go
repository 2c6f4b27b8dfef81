package pcl

// Parameter names understood by Parameters and DefaultParameter.
const (
	ParamPageSize   = "PageSize"
	ParamMediaType  = "MediaType"
	ParamInputSlot  = "InputSlot"
	ParamResolution = "Resolution"
	ParamInkType    = "InkType"
)

// ParameterNames lists the parameters a printer may offer.
var ParameterNames = []string{ParamPageSize, ParamMediaType, ParamInputSlot, ParamResolution, ParamInkType}

// MediaSizeCode returns the ESC&l#A code for name if this printer lists it.
func (c *Capability) MediaSizeCode(name string) (int, bool) {
	code, ok := MediaSizes.Code(name)
	if !ok || !Allowed(code, c.PaperSizes) {
		return 0, false
	}
	return code, true
}

// offersPageSize reports whether a catalogue size is selectable.
func (c *Capability) offersPageSize(m MediaSize) bool {
	if m.Width > c.MaxWidth || m.Height > c.MaxHeight {
		return false
	}
	if c.Flags.Has(PrinterCustomSize) {
		return true
	}
	_, ok := c.MediaSizeCode(m.Name)
	return ok
}

// Parameters returns the selectable values of a named parameter.
// Unknown names and parameters the printer lacks yield nil.
func (c *Capability) Parameters(name string) []string {
	switch name {
	case ParamPageSize:
		var sizes []string
		for _, m := range PaperCatalogue {
			if c.offersPageSize(m) {
				sizes = append(sizes, m.Name)
			}
		}
		return sizes
	case ParamMediaType:
		if len(c.PaperTypes) == 0 {
			return nil
		}
		return MediaTypes.Names(c.PaperTypes)
	case ParamInputSlot:
		if len(c.PaperSources) == 0 {
			return nil
		}
		names := make([]string, 0, len(c.PaperSources))
		for _, code := range c.PaperSources {
			// Name lookup by code is unambiguous; names may repeat.
			if n, ok := MediaSources.Name(code); ok {
				names = append(names, n)
			}
		}
		return names
	case ParamResolution:
		var res []string
		for _, e := range Resolutions {
			if c.Resolutions.Has(ResolutionSet(e.Code)) {
				res = append(res, e.Name)
			}
		}
		return res
	case ParamInkType:
		if !c.Color.Has(ColorCMYKcm) {
			return nil
		}
		return []string{InkTypeColorBlack, InkTypeColorPhoto}
	}
	return nil
}

// DefaultParameter returns the default value of a named parameter, or ""
// when the printer has none.
func (c *Capability) DefaultParameter(name string) string {
	switch name {
	case ParamPageSize:
		for _, m := range PaperCatalogue {
			if c.offersPageSize(m) {
				return m.Name
			}
		}
		return ""
	case ParamMediaType:
		if len(c.PaperTypes) == 0 {
			return ""
		}
		n, _ := MediaTypes.Name(c.PaperTypes[0])
		return n
	case ParamInputSlot:
		if len(c.PaperSources) == 0 {
			return ""
		}
		n, _ := MediaSources.Name(c.PaperSources[0])
		return n
	case ParamResolution:
		return c.DefaultResolution()
	case ParamInkType:
		if !c.Color.Has(ColorCMYKcm) {
			return ""
		}
		return InkTypeColorBlack
	}
	return ""
}

// DefaultResolution prefers the first supported resolution of at least
// 300x300 and falls back to any supported one.
func (c *Capability) DefaultResolution() string {
	for _, e := range Resolutions {
		if c.Resolutions.Has(ResolutionSet(e.Code)) && ResolutionSet(e.Code) >= Res300x300 {
			return e.Name
		}
	}
	for _, e := range Resolutions {
		if c.Resolutions.Has(ResolutionSet(e.Code)) {
			return e.Name
		}
	}
	return ""
}
