package pcl

// Geometry is the placement of the image on the page. Point values are
// relative to the imageable area, top-down.
type Geometry struct {
	Orientation Orientation

	// Imageable area in points.
	PageWidth  int
	PageHeight int

	// Printed image size.
	OutWidth      int // points
	OutHeight     int // points
	OutWidthDots  int
	OutHeightDots int

	// Offset of the image from the imageable area's top-left corner.
	Left int
	Top  int
}

// fit scales an image into the imageable area for one orientation.
func fit(scaling float64, pageW, pageH, imgW, imgH int) (w, h int) {
	if scaling < 0 {
		ppi := -scaling
		w = int(float64(imgW) * 72 / ppi)
		h = int(float64(imgH) * 72 / ppi)
	} else {
		w = int(float64(pageW) * scaling / 100)
		h = w * imgH / imgW
		if h > pageH {
			h = int(float64(pageH) * scaling / 100)
			w = h * imgW / imgH
		}
	}
	return max(w, 1), max(h, 1)
}

// ComputeGeometry places an imgW x imgH pixel image on a pageW x pageH
// point page according to the job's scaling, orientation and offsets.
func ComputeGeometry(job *Job, pageW, pageH, imgW, imgH int) Geometry {
	c := job.Capability
	left, right, bottom, top := c.ImageableArea(pageW, pageH)
	g := Geometry{
		Orientation: job.Orientation,
		PageWidth:   right - left,
		PageHeight:  top - bottom,
	}
	imgW, imgH = max(imgW, 1), max(imgH, 1)

	pw, ph := fit(job.Scaling, g.PageWidth, g.PageHeight, imgW, imgH)
	lw, lh := fit(job.Scaling, g.PageWidth, g.PageHeight, imgH, imgW)

	if g.Orientation == OrientAuto {
		g.Orientation = OrientPortrait
		if job.Scaling < 0 {
			portraitFits := pw <= g.PageWidth && ph <= g.PageHeight
			landscapeFits := lw <= g.PageWidth && lh <= g.PageHeight
			if !portraitFits && landscapeFits {
				g.Orientation = OrientLandscape
			}
		} else if lw*lh > pw*ph {
			g.Orientation = OrientLandscape
		}
	}

	reqLeft, reqTop := job.Left, job.Top
	if g.Orientation == OrientLandscape {
		g.OutWidth, g.OutHeight = lw, lh
		reqLeft, reqTop = reqTop, reqLeft
	} else {
		g.OutWidth, g.OutHeight = pw, ph
	}

	if reqLeft < 0 {
		g.Left = (g.PageWidth - g.OutWidth) / 2
	} else {
		g.Left = max(reqLeft-c.LeftMargin, 0)
	}
	if reqTop < 0 {
		g.Top = (g.PageHeight - g.OutHeight) / 2
	} else {
		g.Top = max(reqTop-c.TopMargin, 0)
		if g.Orientation == OrientLandscape {
			g.Top = max(g.PageHeight-g.Top-g.OutHeight, 0)
		}
	}

	g.OutWidthDots = job.Resolution.XResolution * g.OutWidth / 72
	g.OutHeightDots = job.Resolution.YResolution * g.OutHeight / 72
	return g
}
