package pcl

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCodeTables_UniqueCodes(t *testing.T) {
	tables := map[string]CodeTable{
		"MediaSizes":  MediaSizes,
		"MediaTypes":  MediaTypes,
		"Resolutions": Resolutions,
	}
	for name, table := range tables {
		seen := map[int]string{}
		for _, e := range table {
			if prev, dup := seen[e.Code]; dup {
				t.Errorf("%s: code %d used by %q and %q", name, e.Code, prev, e.Name)
			}
			seen[e.Code] = e.Name
		}
	}
}

func TestCodeTable_Lookup(t *testing.T) {
	code, ok := MediaSizes.Code("A4")
	if !ok || code != MediaSizeA4 {
		t.Errorf("Code(A4) = %d, %v, want %d, true", code, ok, MediaSizeA4)
	}
	if _, ok := MediaSizes.Code("A0"); ok {
		t.Error("Code(A0) ok = true, want false")
	}
	name, ok := MediaTypes.Name(MediaTypeGlossy)
	if !ok || name != "Glossy/Photo" {
		t.Errorf("Name(%d) = %q, %v, want Glossy/Photo, true", MediaTypeGlossy, name, ok)
	}
}

func TestCodeTable_Names(t *testing.T) {
	got := MediaTypes.Names([]int{MediaTypePlain, 99, MediaTypeTrans})
	want := []string{"Plain", "Transparency"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
}

func TestSourceCommandValue(t *testing.T) {
	tests := []struct {
		code int
		want int
	}{
		{MediaSourceStandard, 0},
		{MediaSourceManual, 2},
		{MediaSourceLJTray1, 8},
		{MediaSourceLJTray2, 1},
		{MediaSource340PCSF, 1},
		{MediaSource340DCSF, 4},
		{MediaSourceDJTray, 1},
		{MediaSourceDJTray2, 4},
		{MediaSourceDJOptional, 5},
		{MediaSourceDJAuto, 7},
	}
	for _, tt := range tests {
		if got := SourceCommandValue(tt.code); got != tt.want {
			t.Errorf("SourceCommandValue(%d) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestMediaSources_CommandValuesInRange(t *testing.T) {
	for _, e := range MediaSources {
		if v := SourceCommandValue(e.Code); v < 0 || v >= SourceModulus {
			t.Errorf("%q: command value %d out of range", e.Name, v)
		}
	}
}

func TestResolveSource_SharedName(t *testing.T) {
	lj, _ := Lookup(3)
	dj, _ := Lookup(2500)

	code, ok := ResolveSource("Tray 2", lj)
	if !ok || code != MediaSourceLJTray2 {
		t.Errorf("LaserJet Tray 2 = %d, %v, want %d, true", code, ok, MediaSourceLJTray2)
	}
	code, ok = ResolveSource("Tray 2", dj)
	if !ok || code != MediaSourceDJTray2 {
		t.Errorf("DJ 2500 Tray 2 = %d, %v, want %d, true", code, ok, MediaSourceDJTray2)
	}
	code, ok = ResolveSource("Tray 2", nil)
	if !ok || code != MediaSourceLJTray2 {
		t.Errorf("Tray 2 without printer = %d, %v, want first entry %d", code, ok, MediaSourceLJTray2)
	}
	if _, ok := ResolveSource("Drawer 9", dj); ok {
		t.Error("ResolveSource(Drawer 9) ok = true, want false")
	}
}

func TestParseResolution(t *testing.T) {
	tests := []struct {
		name    string
		x, y    int
		wantErr bool
	}{
		{"300x300 DPI", 300, 300, false},
		{"600x600 DPI monochrome", 600, 600, false},
		{"2400x600 DPI", 2400, 600, false},
		{"600x300", 600, 300, false},
		{" 150x150 DPI", 150, 150, false},
		{"300 DPI", 0, 0, true},
		{"x300", 0, 0, true},
		{"0x300", 0, 0, true},
		{"", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseResolution(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseResolution(%q) error = nil, want error", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseResolution(%q) failed: %v", tt.name, err)
			}
			if res.XResolution != tt.x || res.YResolution != tt.y {
				t.Errorf("ParseResolution(%q) = %dx%d, want %dx%d", tt.name, res.XResolution, res.YResolution, tt.x, tt.y)
			}
		})
	}
}

func TestDescribeResolution(t *testing.T) {
	x, y := DescribeResolution("1200x600 DPI")
	if x != 1200 || y != 600 {
		t.Errorf("DescribeResolution(1200x600 DPI) = %d, %d, want 1200, 600", x, y)
	}
	x, y = DescribeResolution("4800x4800 DPI")
	if x != -1 || y != -1 {
		t.Errorf("DescribeResolution(unknown) = %d, %d, want -1, -1", x, y)
	}
}

func TestResolutions_Parse(t *testing.T) {
	for _, e := range Resolutions {
		if _, err := ParseResolution(e.Name); err != nil {
			t.Errorf("table entry %q does not parse: %v", e.Name, err)
		}
	}
}
