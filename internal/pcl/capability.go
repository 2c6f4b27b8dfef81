package pcl

import "log/slog"

// Capability describes the limits and code sets of one printer model.
// Dimensions and margins are in points (1/72 inch).
type Capability struct {
	Model        int
	MaxWidth     int
	MaxHeight    int
	Resolutions  ResolutionSet
	TopMargin    int
	BottomMargin int
	LeftMargin   int
	RightMargin  int
	Color        ColorFlags
	Flags        PrinterFlags

	// Codes from MediaSizes, MediaTypes and MediaSources.
	// An empty list means nothing is selectable.
	PaperSizes   []int
	PaperTypes   []int
	PaperSources []int
}

var (
	basicTypes = []int{MediaTypePlain, MediaTypeBond, MediaTypePremium, MediaTypeGlossy, MediaTypeTrans}
	allTypes   = []int{MediaTypePlain, MediaTypeBond, MediaTypePremium, MediaTypeGlossy, MediaTypeTrans, MediaTypeQPhoto, MediaTypeQTrans}

	djSources = []int{MediaSourceStandard, MediaSourceManual, MediaSourceDJTray}
	ljSources = []int{MediaSourceStandard, MediaSourceManual, MediaSourceLJTray1, MediaSourceLJTray2, MediaSourceLJTray3, MediaSourceLJTray4}

	dj600Sizes = []int{
		MediaSizeExecutive, MediaSizeLetter, MediaSizeLegal, MediaSizeA5, MediaSizeA4,
		MediaSizeHagakiCard, MediaSizeA6Card, MediaSize4x6, MediaSize5x8,
		MediaSizeCom10Env, MediaSizeDLEnv, MediaSizeC6Env, MediaSizeInvitation,
	}
	ljSizes = []int{
		MediaSizeExecutive, MediaSizeStatement, MediaSizeLetter, MediaSizeLegal, MediaSizeA4,
		MediaSizeMonarchEnv, MediaSizeCom10Env, MediaSizeDLEnv, MediaSizeC5Env, MediaSizeC6Env,
	}
	ljWideSizes = []int{
		MediaSizeExecutive, MediaSizeStatement, MediaSizeLetter, MediaSizeLegal, MediaSizeTabloid,
		MediaSizeA5, MediaSizeA4, MediaSizeA3, MediaSizeJISB5, MediaSizeJISB4,
		MediaSize4x6, MediaSize5x8,
		MediaSizeMonarchEnv, MediaSizeCom10Env, MediaSizeDLEnv, MediaSizeC5Env, MediaSizeC6Env,
	}
)

const (
	letterWidth   = 17 * 72 / 2
	legalHeight   = 14 * 72
	superBWidth   = 13 * 72
	superBHeight  = 19 * 72
	djModernFlags = PrinterDJ | PrinterNewERG | PrinterTIFF | PrinterMediaType | PrinterCustomSize | PrinterBlankLine
	ljModernFlags = PrinterLJ | PrinterNewERG | PrinterTIFF | PrinterBlankLine
)

// capabilities is the model table. Entry 0 is the fallback profile.
var capabilities = []Capability{
	// Default/unknown printer: assume a LaserJet
	{
		Model: 0, MaxWidth: letterWidth, MaxHeight: legalHeight,
		Resolutions: Res150x150 | Res300x300,
		TopMargin:   12, BottomMargin: 12, LeftMargin: 18, RightMargin: 18,
		Color: ColorNone, Flags: PrinterLJ,
		PaperSizes: []int{MediaSizeExecutive, MediaSizeStatement, MediaSizeLetter, MediaSizeLegal, MediaSizeA4},
	},
	// Deskjet 340
	{
		Model: 340, MaxWidth: letterWidth, MaxHeight: legalHeight,
		Resolutions: Res150x150 | Res300x300,
		TopMargin:   7, BottomMargin: 41, LeftMargin: 18, RightMargin: 18,
		Color: ColorCMY, Flags: PrinterDJ | PrinterTIFF | PrinterBlankLine,
		PaperSizes:   []int{MediaSizeExecutive, MediaSizeLetter, MediaSizeLegal, MediaSizeA4},
		PaperTypes:   basicTypes,
		PaperSources: []int{MediaSourceStandard, MediaSourceManual, MediaSource340PCSF, MediaSource340DCSF},
	},
	// Deskjet 400
	{
		Model: 400, MaxWidth: letterWidth, MaxHeight: legalHeight,
		Resolutions: Res150x150 | Res300x300,
		TopMargin:   7, BottomMargin: 41, LeftMargin: 18, RightMargin: 18,
		Color: ColorCMY, Flags: PrinterDJ | PrinterTIFF | PrinterBlankLine,
		PaperSizes: []int{MediaSizeExecutive, MediaSizeLetter, MediaSizeLegal, MediaSizeA4, MediaSizeJISB5},
		PaperTypes: basicTypes,
	},
	// Deskjet 500, 520
	{
		Model: 500, MaxWidth: letterWidth, MaxHeight: legalHeight,
		Resolutions: Res150x150 | Res300x300,
		TopMargin:   7, BottomMargin: 41, LeftMargin: 18, RightMargin: 18,
		Color: ColorNone, Flags: PrinterDJ | PrinterTIFF | PrinterBlankLine,
		PaperSizes:   []int{MediaSizeLetter, MediaSizeLegal, MediaSizeA4, MediaSizeCom10Env},
		PaperTypes:   basicTypes,
		PaperSources: djSources,
	},
	// Deskjet 500C
	{
		Model: 501, MaxWidth: letterWidth, MaxHeight: legalHeight,
		Resolutions: Res150x150 | Res300x300,
		TopMargin:   7, BottomMargin: 33, LeftMargin: 18, RightMargin: 18,
		Color: ColorCMY, Flags: PrinterDJ | PrinterNewERG | PrinterTIFF | PrinterBlankLine,
		PaperSizes:   []int{MediaSizeLetter, MediaSizeLegal, MediaSizeA4, MediaSizeCom10Env},
		PaperTypes:   basicTypes,
		PaperSources: djSources,
	},
	// Deskjet 540C
	{
		Model: 540, MaxWidth: letterWidth, MaxHeight: legalHeight,
		Resolutions: Res150x150 | Res300x300,
		TopMargin:   7, BottomMargin: 33, LeftMargin: 18, RightMargin: 18,
		Color: ColorCMY, Flags: djModernFlags,
		PaperSizes: []int{
			MediaSizeExecutive, MediaSizeLetter, MediaSizeLegal, MediaSizeA4, MediaSizeA5, MediaSizeJISB5,
			MediaSizeHagakiCard, MediaSizeA6Card, MediaSize4x6, MediaSize5x8,
			MediaSizeCom10Env, MediaSizeDLEnv, MediaSizeC6Env,
		},
		PaperTypes:   basicTypes,
		PaperSources: djSources,
	},
	// Deskjet 550C, 560C
	{
		Model: 550, MaxWidth: letterWidth, MaxHeight: legalHeight,
		Resolutions: Res150x150 | Res300x300,
		TopMargin:   3, BottomMargin: 33, LeftMargin: 18, RightMargin: 18,
		Color: ColorCMYK, Flags: PrinterDJ | PrinterNewERG | PrinterTIFF | PrinterBlankLine,
		// COM10 and DL use negative (landscape) codes on these models.
		PaperSizes:   []int{MediaSizeExecutive, MediaSizeLetter, MediaSizeLegal, MediaSizeA4},
		PaperTypes:   basicTypes,
		PaperSources: djSources,
	},
	// Deskjet 600/600C
	{
		Model: 600, MaxWidth: letterWidth, MaxHeight: legalHeight,
		Resolutions: Res150x150 | Res300x300 | Res600x300 | Res600x600Mono,
		TopMargin:   0, BottomMargin: 33, LeftMargin: 18, RightMargin: 18,
		Color: ColorCMY, Flags: djModernFlags,
		PaperSizes: dj600Sizes,
		PaperTypes: basicTypes,
	},
	// Deskjet 6xx series, plus 810/812/842/895
	{
		Model: 601, MaxWidth: letterWidth, MaxHeight: legalHeight,
		Resolutions: Res150x150 | Res300x300 | Res600x300 | Res600x600Mono,
		TopMargin:   0, BottomMargin: 33, LeftMargin: 18, RightMargin: 18,
		Color: ColorCMYK, Flags: djModernFlags,
		PaperSizes: dj600Sizes,
		PaperTypes: basicTypes,
	},
	// Deskjet 69x series (photo capable)
	{
		Model: 690, MaxWidth: letterWidth, MaxHeight: legalHeight,
		Resolutions: Res150x150 | Res300x300 | Res600x300 | Res600x600,
		TopMargin:   0, BottomMargin: 33, LeftMargin: 18, RightMargin: 18,
		Color: ColorCMYK | ColorCMYKcm, Flags: djModernFlags,
		PaperSizes: dj600Sizes,
		PaperTypes: basicTypes,
	},
	// Deskjet 850/855/870/890 (CRet)
	{
		Model: 800, MaxWidth: letterWidth, MaxHeight: legalHeight,
		Resolutions: Res150x150 | Res300x300 | Res600x600Mono,
		TopMargin:   3, BottomMargin: 33, LeftMargin: 18, RightMargin: 18,
		Color: ColorCMYK | ColorCMYK4, Flags: djModernFlags,
		PaperSizes: dj600Sizes,
		PaperTypes: basicTypes,
	},
	// Deskjet 840 (CRet, PCL3GUI)
	{
		Model: 840, MaxWidth: letterWidth, MaxHeight: legalHeight,
		Resolutions: Res150x150 | Res300x300 | Res600x300 | Res600x600,
		TopMargin:   0, BottomMargin: 33, LeftMargin: 18, RightMargin: 18,
		Color: ColorCMYK | ColorCMYK4b, Flags: djModernFlags,
		PaperSizes: dj600Sizes,
		PaperTypes: basicTypes,
	},
	// Deskjet 900 series, 1220C, PhotoSmart P1000/P1100
	{
		Model: 900, MaxWidth: letterWidth, MaxHeight: legalHeight,
		Resolutions: Res150x150 | Res300x300 | Res600x600,
		TopMargin:   3, BottomMargin: 33, LeftMargin: 18, RightMargin: 18,
		Color: ColorCMYK, Flags: djModernFlags,
		PaperSizes: dj600Sizes,
		PaperTypes: basicTypes,
	},
	// Deskjet 1220C (or other large format 900)
	{
		Model: 901, MaxWidth: superBWidth, MaxHeight: superBHeight,
		Resolutions: Res150x150 | Res300x300 | Res600x600,
		TopMargin:   3, BottomMargin: 33, LeftMargin: 18, RightMargin: 18,
		Color: ColorCMYK, Flags: djModernFlags,
		PaperSizes: []int{
			MediaSizeExecutive, MediaSizeLetter, MediaSizeLegal, MediaSizeTabloid, MediaSizeStatement,
			MediaSizeSuperB, MediaSizeA5, MediaSizeA4, MediaSizeA3, MediaSizeJISB5, MediaSizeJISB4,
			MediaSizeHagakiCard, MediaSizeOufukuCard, MediaSizeA6Card, MediaSize4x6, MediaSize5x8,
			MediaSize3x5, MediaSizeHPCard, MediaSizeMonarchEnv, MediaSizeCom10Env, MediaSizeDLEnv,
			MediaSizeC5Env, MediaSizeC6Env, MediaSizeInvitation, MediaSizeJapanese3Env,
			MediaSizeJapanese4Env, MediaSizeKakuEnv,
		},
		PaperTypes: basicTypes,
	},
	// Deskjet 1100C, 1120C
	{
		Model: 1100, MaxWidth: superBWidth, MaxHeight: superBHeight,
		Resolutions: Res150x150 | Res300x300 | Res600x600Mono,
		TopMargin:   3, BottomMargin: 33, LeftMargin: 18, RightMargin: 18,
		Color: ColorCMYK | ColorCMYK4, Flags: djModernFlags,
		PaperSizes: []int{
			MediaSizeExecutive, MediaSizeLetter, MediaSizeLegal, MediaSizeTabloid, MediaSizeStatement,
			MediaSizeSuperB, MediaSizeA5, MediaSizeA4, MediaSizeA3, MediaSizeJISB5, MediaSizeJISB4,
			MediaSizeHagakiCard, MediaSizeA6Card, MediaSize4x6, MediaSize5x8, MediaSizeCom10Env,
			MediaSizeDLEnv, MediaSizeC6Env, MediaSizeInvitation, MediaSizeJapanese3Env,
			MediaSizeJapanese4Env, MediaSizeKakuEnv,
		},
		PaperTypes:   basicTypes,
		PaperSources: djSources,
	},
	// Deskjet 1200C
	{
		Model: 1200, MaxWidth: letterWidth, MaxHeight: legalHeight,
		Resolutions: Res150x150 | Res300x300,
		TopMargin:   12, BottomMargin: 12, LeftMargin: 18, RightMargin: 18,
		Color: ColorCMY, Flags: djModernFlags,
		PaperSizes:   []int{MediaSizeExecutive, MediaSizeLetter, MediaSizeLegal, MediaSizeA5, MediaSizeA4, MediaSize4x6, MediaSize5x8},
		PaperTypes:   basicTypes,
		PaperSources: djSources,
	},
	// Deskjet 1600C
	{
		Model: 1600, MaxWidth: letterWidth, MaxHeight: legalHeight,
		Resolutions: Res150x150 | Res300x300,
		TopMargin:   12, BottomMargin: 12, LeftMargin: 18, RightMargin: 18,
		Color: ColorCMYK, Flags: djModernFlags,
		PaperSizes:   []int{MediaSizeExecutive, MediaSizeLetter, MediaSizeLegal, MediaSizeA5, MediaSizeA4, MediaSize4x6, MediaSize5x8},
		PaperTypes:   basicTypes,
		PaperSources: djSources,
	},
	// Deskjet 2000
	{
		Model: 2000, MaxWidth: letterWidth, MaxHeight: legalHeight,
		Resolutions: Res150x150 | Res300x300 | Res600x600,
		TopMargin:   12, BottomMargin: 12, LeftMargin: 18, RightMargin: 18,
		Color: ColorCMYK, Flags: djModernFlags,
		PaperSizes: []int{
			MediaSizeExecutive, MediaSizeLetter, MediaSizeLegal, MediaSizeA5, MediaSizeA4,
			MediaSizeHagakiCard, MediaSizeA6Card, MediaSize4x6, MediaSize5x8, MediaSize3x5,
			MediaSizeCom10Env, MediaSizeDLEnv, MediaSizeC6Env, MediaSizeInvitation,
		},
		PaperTypes:   allTypes,
		PaperSources: djSources,
	},
	// Deskjet 2500
	{
		Model: 2500, MaxWidth: superBWidth, MaxHeight: superBHeight,
		Resolutions: Res150x150 | Res300x300 | Res600x600,
		TopMargin:   12, BottomMargin: 12, LeftMargin: 18, RightMargin: 18,
		Color: ColorCMYK, Flags: djModernFlags,
		PaperSizes: []int{
			MediaSizeExecutive, MediaSizeLetter, MediaSizeLegal, MediaSizeTabloid, MediaSizeStatement,
			MediaSizeA5, MediaSizeA4, MediaSizeA3, MediaSizeJISB5, MediaSizeJISB4,
			MediaSizeHagakiCard, MediaSizeA6Card, MediaSize4x6, MediaSize5x8,
			MediaSizeCom10Env, MediaSizeDLEnv,
		},
		PaperTypes: allTypes,
		PaperSources: []int{
			MediaSourceStandard, MediaSourceManual, MediaSourceDJAuto,
			MediaSourceDJTray, MediaSourceDJTray2, MediaSourceDJOptional,
		},
	},
	// LaserJet II series
	{
		Model: 2, MaxWidth: letterWidth, MaxHeight: legalHeight,
		Resolutions: Res150x150 | Res300x300,
		TopMargin:   12, BottomMargin: 12, LeftMargin: 18, RightMargin: 18,
		Color: ColorNone, Flags: PrinterLJ,
		PaperSizes:   ljSizes,
		PaperSources: ljSources,
	},
	// LaserJet III series
	{
		Model: 3, MaxWidth: letterWidth, MaxHeight: legalHeight,
		Resolutions: Res150x150 | Res300x300,
		TopMargin:   12, BottomMargin: 12, LeftMargin: 18, RightMargin: 18,
		Color: ColorNone, Flags: PrinterLJ | PrinterTIFF | PrinterBlankLine,
		PaperSizes:   ljSizes,
		PaperSources: ljSources,
	},
	// LaserJet 4L
	{
		Model: 4, MaxWidth: letterWidth, MaxHeight: legalHeight,
		Resolutions: Res150x150 | Res300x300,
		TopMargin:   12, BottomMargin: 12, LeftMargin: 18, RightMargin: 18,
		Color: ColorNone, Flags: ljModernFlags,
		PaperSizes:   ljSizes,
		PaperSources: ljSources,
	},
	// LaserJet 4V, 4Si, 5Si
	{
		Model: 5, MaxWidth: superBWidth, MaxHeight: superBHeight,
		Resolutions: Res150x150 | Res300x300 | Res600x600,
		TopMargin:   12, BottomMargin: 12, LeftMargin: 18, RightMargin: 18,
		Color: ColorNone, Flags: ljModernFlags,
		PaperSizes:   ljWideSizes,
		PaperSources: ljSources,
	},
	// LaserJet 4 series (except as above), 5 series, 6 series
	{
		Model: 6, MaxWidth: letterWidth, MaxHeight: legalHeight,
		Resolutions: Res150x150 | Res300x300 | Res600x600,
		TopMargin:   12, BottomMargin: 12, LeftMargin: 18, RightMargin: 18,
		Color: ColorNone, Flags: ljModernFlags,
		PaperSizes:   ljSizes,
		PaperSources: ljSources,
	},
	// LaserJet 5Si
	{
		Model: 7, MaxWidth: superBWidth, MaxHeight: superBHeight,
		Resolutions: Res150x150 | Res300x300 | Res600x600,
		TopMargin:   12, BottomMargin: 12, LeftMargin: 18, RightMargin: 18,
		Color: ColorNone, Flags: ljModernFlags,
		PaperSizes:   ljWideSizes,
		PaperSources: ljSources,
	},
}

var capabilityIndex = func() map[int]*Capability {
	m := make(map[int]*Capability, len(capabilities))
	for i := range capabilities {
		m[capabilities[i].Model] = &capabilities[i]
	}
	return m
}()

// DefaultCapability returns the fallback profile used for unknown models.
func DefaultCapability() *Capability { return &capabilities[0] }

// Lookup returns the capability record for model. Unknown models get the
// default profile and ok=false.
func Lookup(model int) (c *Capability, ok bool) {
	if c, ok := capabilityIndex[model]; ok {
		return c, true
	}
	slog.Warn("unknown printer model, using default profile", "model", model)
	return DefaultCapability(), false
}

// Models returns the registered model ids in table order.
func Models() []int {
	ids := make([]int, len(capabilities))
	for i, c := range capabilities {
		ids[i] = c.Model
	}
	return ids
}

// Limits returns the largest page the printer accepts, in points.
func (c *Capability) Limits() (width, height int) {
	return c.MaxWidth, c.MaxHeight
}

// ImageableArea returns the printable region of a pageWidth x pageHeight
// page in bottom-up point coordinates.
func (c *Capability) ImageableArea(pageWidth, pageHeight int) (left, right, bottom, top int) {
	left = c.LeftMargin
	right = pageWidth - c.RightMargin
	top = pageHeight - c.TopMargin
	bottom = c.BottomMargin
	return
}

// IsColor reports whether the printer has any colour ink.
func (c *Capability) IsColor() bool { return c.Color != ColorNone }
