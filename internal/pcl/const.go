package pcl

// ColorFlags describes the ink/head configuration of a printer.
type ColorFlags int

const (
	ColorNone   ColorFlags = 0
	ColorCMY    ColorFlags = 1  // One print head
	ColorCMYK   ColorFlags = 2  // Two print heads
	ColorCMYK4  ColorFlags = 4  // CRet (4-level) printing
	ColorCMYKcm ColorFlags = 8  // CMY + photo cartridge
	ColorCMYK4b ColorFlags = 16 // CRet at 600 dpi (DJ 840C)
)

// Has reports whether all bits of f are set.
func (c ColorFlags) Has(f ColorFlags) bool { return c&f == f }

// PrinterFlags describes the printer family and its protocol quirks.
type PrinterFlags int

const (
	PrinterLJ         PrinterFlags = 1
	PrinterDJ         PrinterFlags = 2
	PrinterNewERG     PrinterFlags = 4  // ESC*rC ends raster graphics instead of ESC*rB
	PrinterTIFF       PrinterFlags = 8  // TIFF (packbits) compression
	PrinterMediaType  PrinterFlags = 16 // Media type & print quality commands
	PrinterCustomSize PrinterFlags = 32 // Custom page sizes accepted
	PrinterBlankLine  PrinterFlags = 64 // Blank raster rows may be skipped
)

// Has reports whether all bits of f are set.
func (p PrinterFlags) Has(f PrinterFlags) bool { return p&f == f }

// ResolutionSet is a bitmask of resolution codes.
type ResolutionSet int

const (
	Res150x150     ResolutionSet = 1
	Res300x300     ResolutionSet = 2
	Res600x300     ResolutionSet = 4  // DJ 600 series
	Res600x600Mono ResolutionSet = 8  // DJ 600/800/1100/2000, black only
	Res600x600     ResolutionSet = 16 // DJ 9xx/1220C/PhotoSmart
	Res1200x600    ResolutionSet = 32
	Res2400x600    ResolutionSet = 64
)

// Has reports whether all bits of r are set.
func (s ResolutionSet) Has(r ResolutionSet) bool { return s&r == r }

// Media size codes (ESC&l#A).
const (
	MediaSizeExecutive    = 1
	MediaSizeLetter       = 2
	MediaSizeLegal        = 3
	MediaSizeTabloid      = 6  // Ledger
	MediaSizeStatement    = 15 // "Manual"
	MediaSizeSuperB       = 16 // 13x19
	MediaSizeA5           = 25
	MediaSizeA4           = 26
	MediaSizeA3           = 27
	MediaSizeJISB5        = 45
	MediaSizeJISB4        = 46
	MediaSizeHagakiCard   = 71
	MediaSizeOufukuCard   = 72
	MediaSizeA6Card       = 73
	MediaSize4x6          = 74
	MediaSize5x8          = 75
	MediaSize3x5          = 78
	MediaSizeMonarchEnv   = 80
	MediaSizeCom10Env     = 81
	MediaSizeDLEnv        = 90
	MediaSizeC5Env        = 91
	MediaSizeC6Env        = 92
	MediaSizeCustom       = 101
	MediaSizeInvitation   = 109
	MediaSizeJapanese3Env = 110
	MediaSizeJapanese4Env = 111
	MediaSizeKakuEnv      = 113
	MediaSizeHPCard       = 114
)

// Media type codes (ESC&l#M).
const (
	MediaTypePlain   = 0
	MediaTypeBond    = 1
	MediaTypePremium = 2
	MediaTypeGlossy  = 3 // or photo
	MediaTypeTrans   = 4
	MediaTypeQPhoto  = 5 // Quick dry photo (2000 only)
	MediaTypeQTrans  = 6 // Quick dry transparency (2000 only)
)

// SourceModulus separates printer-family variants of the same media
// source command value. A table code of base+k*SourceModulus is sent as base.
const SourceModulus = 16

// Media source codes. Values above SourceModulus are family variants.
const (
	MediaSourceStandard = 0 // Nothing is sent
	MediaSourceManual   = 2

	MediaSourceLJTray2 = 1
	MediaSourceLJTray3 = 4
	MediaSourceLJTray4 = 5
	MediaSourceLJTray1 = 8

	MediaSource340PCSF = 1 + SourceModulus // Portable sheet feeder (DJ 340)
	MediaSource340DCSF = 4 + SourceModulus // Desktop sheet feeder (DJ 340)

	MediaSourceDJTray     = 1 + 2*SourceModulus
	MediaSourceDJTray2    = 4 + 2*SourceModulus // DJ 2500
	MediaSourceDJOptional = 5 + 2*SourceModulus // DJ 2500
	MediaSourceDJAuto     = 7 + 2*SourceModulus // DJ 2500
)

// Ink type names offered by photo-capable printers.
const (
	InkTypeColorBlack = "Color + Black Cartridges"
	InkTypeColorPhoto = "Color + Photo Cartridges"
)

// Escape sequences with no parameters.
const (
	esc = "\033"

	cmdReset           = esc + "E"
	cmdPerfSkipOff     = esc + "&l0L"
	cmdTopMarginZero   = esc + "&l0E"
	cmdQualityPresent  = esc + "*o1M"
	cmdRasterQualHigh  = esc + "*r2Q"
	cmdShingling4      = esc + "*o2Q"
	cmdDepletion25     = esc + "*o2D"
	cmdDepletion50     = esc + "*o5D"
	cmdDepletionNone   = esc + "*o1D"
	cmdSimpleCMY       = esc + "*r-3U"
	cmdSimpleKCMY      = esc + "*r-4U"
	cmdCompressTIFF    = esc + "*b2M"
	cmdCompressNone    = esc + "*b0M"
	cmdStartRaster     = esc + "*r1A"
	cmdEndRasterNew    = esc + "*rC"
	cmdEndRasterOld    = esc + "*rB"
	cmdEndRasterPCL3   = esc + "*rbC"
	cmdEjectPage       = esc + "&l0H"
	cmdPJLEnterPCL3GUI = esc + "%-12345X@PJL ENTER LANGUAGE=PCL3GUI\n"
	cmdPJLExit         = esc + "%-12345X\n"
)

// CRD (configure raster data) format and per-plane block size.
const (
	crdFormatComplexDirectPlanar = 2
	crdPlaneBlockLen             = 6
)

// Progress is reported every progressInterval output rows.
const progressInterval = 64
