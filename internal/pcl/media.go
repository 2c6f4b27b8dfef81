package pcl

import "github.com/OpenPrinting/go-mfp/abstract"

// MediaSize is a named paper size in points.
type MediaSize struct {
	Name   string
	Width  int
	Height int
}

// Dimensions returns the paper size in go-mfp physical units.
func (m MediaSize) Dimensions() (width, height abstract.Dimension) {
	return PointsToDimension(m.Width), PointsToDimension(m.Height)
}

// PointsToDimension converts points (1/72 inch) to 1/100 mm.
func PointsToDimension(pt int) abstract.Dimension {
	return abstract.Dimension(pt * 2540 / 72)
}

// DimensionToPoints converts 1/100 mm to points, rounding down.
func DimensionToPoints(d abstract.Dimension) int {
	return int(d) * 72 / 2540
}

// PaperCatalogue lists the known paper sizes. Names used by MediaSizes
// must match; the remaining entries are only reachable on printers that
// accept custom sizes.
var PaperCatalogue = []MediaSize{
	{"Letter", 612, 792},
	{"Legal", 612, 1008},
	{"Tabloid", 792, 1224},
	{"Executive", 522, 756},
	{"Manual", 396, 612},
	{"13x19", 936, 1368},
	{"A3", 842, 1191},
	{"A4", 595, 842},
	{"A5", 420, 595},
	{"A6", 297, 420},
	{"B4 JIS", 729, 1032},
	{"B5 JIS", 516, 729},
	{"Hagaki Card", 283, 420},
	{"Oufuku Card", 420, 567},
	{"4x6", 288, 432},
	{"5x8", 360, 576},
	{"3x5", 216, 360},
	{"Monarch", 279, 540},
	{"Commercial 10", 297, 684},
	{"DL", 312, 624},
	{"C5", 459, 649},
	{"C6", 323, 459},
	{"A2 Invitation", 315, 414},
	{"Long 3", 340, 666},
	{"Long 4", 255, 581},
	{"Kaku", 680, 941},
	{"HP Greeting Card", 396, 612},
	{"Photo 5x7", 360, 504},
	{"8x10", 576, 720},
	{"B6 JIS", 363, 516},
	{"C4", 649, 918},
	{"A2", 1191, 1684},
}

// FindMediaSize returns the catalogue entry named name.
func FindMediaSize(name string) (MediaSize, bool) {
	for _, m := range PaperCatalogue {
		if m.Name == name {
			return m, true
		}
	}
	return MediaSize{}, false
}

// MediaSizeBySize returns the catalogue entry with the given dimensions.
func MediaSizeBySize(width, height int) (MediaSize, bool) {
	for _, m := range PaperCatalogue {
		if m.Width == width && m.Height == height {
			return m, true
		}
	}
	return MediaSize{}, false
}
