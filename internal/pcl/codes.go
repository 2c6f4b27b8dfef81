package pcl

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/OpenPrinting/go-mfp/abstract"
)

// CodeEntry pairs a display name with its device code.
type CodeEntry struct {
	Name string
	Code int
}

// CodeTable maps display names to device codes and back.
type CodeTable []CodeEntry

// Code returns the device code for an exact (case-sensitive) name match.
func (t CodeTable) Code(name string) (int, bool) {
	for _, e := range t {
		if e.Name == name {
			return e.Code, true
		}
	}
	return 0, false
}

// Name returns the display name of code. The first match wins.
func (t CodeTable) Name(code int) (string, bool) {
	for _, e := range t {
		if e.Code == code {
			return e.Name, true
		}
	}
	return "", false
}

// Names returns the display names of codes, in order, skipping unknown ones.
func (t CodeTable) Names(codes []int) []string {
	names := make([]string, 0, len(codes))
	for _, c := range codes {
		if n, ok := t.Name(c); ok {
			names = append(names, n)
		}
	}
	return names
}

// MediaSizes maps media size names to ESC&l#A codes.
var MediaSizes = CodeTable{
	{"Executive", MediaSizeExecutive},         // 7.25 x 10.5 in
	{"Letter", MediaSizeLetter},               // 8.5 x 11 in
	{"Legal", MediaSizeLegal},                 // 8.5 x 14 in
	{"Tabloid", MediaSizeTabloid},             // 11 x 17 in
	{"Manual", MediaSizeStatement},            // 5.5 x 8.5 in
	{"13x19", MediaSizeSuperB},                // 13 x 19 in
	{"A5", MediaSizeA5},                       // 148 x 210 mm
	{"A4", MediaSizeA4},                       // 210 x 297 mm
	{"A3", MediaSizeA3},                       // 297 x 420 mm
	{"B5 JIS", MediaSizeJISB5},                // 182 x 257 mm
	{"B4 JIS", MediaSizeJISB4},                // 257 x 364 mm
	{"Hagaki Card", MediaSizeHagakiCard},      // 100 x 148 mm
	{"Oufuku Card", MediaSizeOufukuCard},      // 148 x 200 mm
	{"A6", MediaSizeA6Card},                   // 105 x 148 mm
	{"4x6", MediaSize4x6},                     // index card
	{"5x8", MediaSize5x8},                     // index card
	{"3x5", MediaSize3x5},                     // index card
	{"Monarch", MediaSizeMonarchEnv},          // 3 7/8 x 7 1/2 in
	{"Commercial 10", MediaSizeCom10Env},      // 4.125 x 9.5 in
	{"DL", MediaSizeDLEnv},                    // 110 x 220 mm
	{"C5", MediaSizeC5Env},                    // 162 x 229 mm
	{"C6", MediaSizeC6Env},                    // 114 x 162 mm
	{"A2 Invitation", MediaSizeInvitation},    // 4 3/8 x 5 3/4 in
	{"Long 3", MediaSizeJapanese3Env},         // 120 x 235 mm
	{"Long 4", MediaSizeJapanese4Env},         // 90 x 205 mm
	{"Kaku", MediaSizeKakuEnv},                // 240 x 332.1 mm
	{"HP Greeting Card", MediaSizeHPCard},
}

// MediaTypes maps media type names to ESC&l#M codes.
var MediaTypes = CodeTable{
	{"Plain", MediaTypePlain},
	{"Bond", MediaTypeBond},
	{"Premium", MediaTypePremium},
	{"Glossy/Photo", MediaTypeGlossy},
	{"Transparency", MediaTypeTrans},
	{"Quick-dry Photo", MediaTypeQPhoto},
	{"Quick-dry Transparency", MediaTypeQTrans},
}

// MediaSources maps media source names to family-encoded source codes.
// "Tray 2" appears twice: once for LaserJets and once for the DJ 2500.
var MediaSources = CodeTable{
	{"Standard", MediaSourceStandard},
	{"Manual", MediaSourceManual},
	{"Tray 1", MediaSourceLJTray1},
	{"Tray 2", MediaSourceLJTray2},
	{"Tray 3", MediaSourceLJTray3},
	{"Tray 4", MediaSourceLJTray4},
	{"Portable Sheet Feeder", MediaSource340PCSF},
	{"Desktop Sheet Feeder", MediaSource340DCSF},
	{"Tray", MediaSourceDJTray},
	{"Tray 2", MediaSourceDJTray2},
	{"Optional Source", MediaSourceDJOptional},
	{"Autoselect", MediaSourceDJAuto},
}

// Resolutions maps resolution names to ResolutionSet bits.
var Resolutions = CodeTable{
	{"150x150 DPI", int(Res150x150)},
	{"300x300 DPI", int(Res300x300)},
	{"600x300 DPI", int(Res600x300)},
	{"600x600 DPI monochrome", int(Res600x600Mono)},
	{"600x600 DPI", int(Res600x600)},
	{"1200x600 DPI", int(Res1200x600)},
	{"2400x600 DPI", int(Res2400x600)},
}

// Allowed reports whether code appears in a capability list.
func Allowed(code int, list []int) bool {
	return slices.Contains(list, code)
}

// SourceCommandValue strips the family encoding from a media source code,
// giving the value sent in ESC&l#H.
func SourceCommandValue(code int) int {
	return code % SourceModulus
}

// ResolveSource looks up a media source name for a given printer. When the
// name is shared by several families, the code the printer lists wins.
func ResolveSource(name string, c *Capability) (int, bool) {
	first, found := 0, false
	for _, e := range MediaSources {
		if e.Name != name {
			continue
		}
		if c != nil && Allowed(e.Code, c.PaperSources) {
			return e.Code, true
		}
		if !found {
			first, found = e.Code, true
		}
	}
	return first, found
}

// ParseResolution extracts the "<x>x<y>" pair leading a resolution name.
func ParseResolution(name string) (abstract.Resolution, error) {
	field, _, _ := strings.Cut(strings.TrimSpace(name), " ")
	xs, ys, ok := strings.Cut(field, "x")
	if !ok {
		return abstract.Resolution{}, fmt.Errorf("resolution %q: missing 'x'", name)
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return abstract.Resolution{}, fmt.Errorf("resolution %q: %w", name, err)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return abstract.Resolution{}, fmt.Errorf("resolution %q: %w", name, err)
	}
	if x <= 0 || y <= 0 {
		return abstract.Resolution{}, fmt.Errorf("resolution %q: non-positive dpi", name)
	}
	return abstract.Resolution{XResolution: x, YResolution: y}, nil
}

// DescribeResolution returns the dpi pair of a known resolution name,
// or (-1, -1) when the name is not in the Resolutions table.
func DescribeResolution(name string) (x, y int) {
	if _, ok := Resolutions.Code(name); !ok {
		return -1, -1
	}
	res, err := ParseResolution(name)
	if err != nil {
		return -1, -1
	}
	return res.XResolution, res.YResolution
}
