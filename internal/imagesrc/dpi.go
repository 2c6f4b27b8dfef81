package imagesrc

import "encoding/binary"

// DetectDPI extracts the horizontal resolution recorded in TIFF, JPEG
// (JFIF) or PNG (pHYs) data. It returns 0 when none is found.
func DetectDPI(data []byte) int {
	if len(data) < 8 {
		return 0
	}
	switch {
	case (data[0] == 'I' && data[1] == 'I') || (data[0] == 'M' && data[1] == 'M'):
		return tiffDPI(data)
	case data[0] == 0xFF && data[1] == 0xD8:
		return jpegDPI(data)
	case string(data[:8]) == "\x89PNG\r\n\x1a\n":
		return pngDPI(data)
	}
	return 0
}

func tiffDPI(data []byte) int {
	var bo binary.ByteOrder = binary.BigEndian
	if data[0] == 'I' {
		bo = binary.LittleEndian
	}
	if bo.Uint16(data[2:4]) != 42 {
		return 0
	}
	ifd := int(bo.Uint32(data[4:8]))
	if ifd+2 > len(data) {
		return 0
	}
	unit := uint16(2) // inches
	dpi := 0
	for i := range int(bo.Uint16(data[ifd : ifd+2])) {
		off := ifd + 2 + i*12
		if off+12 > len(data) {
			break
		}
		switch bo.Uint16(data[off : off+2]) {
		case 282: // XResolution, RATIONAL
			val := int(bo.Uint32(data[off+8 : off+12]))
			if val+8 > len(data) {
				return 0
			}
			num, den := bo.Uint32(data[val:val+4]), bo.Uint32(data[val+4:val+8])
			if den == 0 {
				return 0
			}
			dpi = int(num / den)
		case 296: // ResolutionUnit, SHORT
			unit = bo.Uint16(data[off+8 : off+10])
		}
	}
	if unit == 3 { // centimetres
		return int(float64(dpi) * 2.54)
	}
	return dpi
}

func jpegDPI(data []byte) int {
	i := 2
	for i+4 < len(data) {
		if data[i] != 0xFF {
			break
		}
		marker := data[i+1]
		segLen := int(binary.BigEndian.Uint16(data[i+2 : i+4]))
		if marker == 0xE0 && segLen >= 14 { // APP0
			seg := data[i+4:]
			if len(seg) >= 10 && string(seg[0:5]) == "JFIF\x00" {
				xd := int(binary.BigEndian.Uint16(seg[8:10]))
				switch seg[7] {
				case 1:
					return xd
				case 2:
					return int(float64(xd) * 2.54)
				}
			}
		}
		i += 2 + segLen
	}
	return 0
}

func pngDPI(data []byte) int {
	for i := 8; i+12 <= len(data); {
		n := int(binary.BigEndian.Uint32(data[i : i+4]))
		typ := string(data[i+4 : i+8])
		if typ == "pHYs" && n >= 9 && i+8+9 <= len(data) {
			ppu := binary.BigEndian.Uint32(data[i+8 : i+12])
			if data[i+16] == 1 { // metre
				return int(float64(ppu)*0.0254 + 0.5)
			}
			return 0
		}
		if typ == "IDAT" || typ == "IEND" {
			return 0
		}
		i += 12 + n
	}
	return 0
}
