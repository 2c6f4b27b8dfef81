// Package proof renders a PDF preview of where a job puts its image on
// the page.
package proof

import (
	"bytes"
	"fmt"
	"image/png"
	"os"

	"codeberg.org/go-pdf/fpdf"

	"github.com/mzyy94/pclraster/internal/imagesrc"
	"github.com/mzyy94/pclraster/internal/pcl"
)

// Layout is the placement drawn on a proof sheet, in top-down points from
// the page corner.
type Layout struct {
	Geometry pcl.Geometry

	PageWidth  float64
	PageHeight float64

	// Imageable area.
	AreaX, AreaY, AreaW, AreaH float64
	// Image rectangle.
	ImageX, ImageY, ImageW, ImageH float64
}

// Place computes the proof layout of src on job's page. A landscape page
// rotates src, as the encoder does.
func Place(job *pcl.Job, src *imagesrc.Source) Layout {
	pw, ph := job.MediaSize.Width, job.MediaSize.Height
	g := pcl.ComputeGeometry(job, pw, ph, src.Width(), src.Height())
	if g.Orientation == pcl.OrientLandscape {
		src.RotateClockwise()
	}
	left, right, bottom, top := job.Capability.ImageableArea(pw, ph)
	l := Layout{
		Geometry:   g,
		PageWidth:  float64(pw),
		PageHeight: float64(ph),
		AreaX:      float64(left),
		AreaY:      float64(ph - top),
		AreaW:      float64(right - left),
		AreaH:      float64(top - bottom),
	}
	l.ImageX = l.AreaX + float64(g.Left)
	l.ImageY = l.AreaY + float64(g.Top)
	l.ImageW = float64(g.OutWidth)
	l.ImageH = float64(g.OutHeight)
	return l
}

// Caption describes the job in one line.
func Caption(job *pcl.Job, g pcl.Geometry) string {
	return fmt.Sprintf("HP model %d  %s  %s  %s  %d plane(s)  %dx%d dots",
		job.Model, job.MediaSize.Name, job.ResolutionName, g.Orientation,
		job.Planes, g.OutWidthDots, g.OutHeightDots)
}

// Generate renders a one-page proof of src printed with job.
func Generate(job *pcl.Job, src *imagesrc.Source) ([]byte, error) {
	if src.Width() <= 0 || src.Height() <= 0 {
		return nil, fmt.Errorf("no image to proof")
	}
	l := Place(job, src)

	pdf := fpdf.New("P", "pt", "", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("pclraster", true)
	pdf.AddPageFormat("P", fpdf.SizeType{Wd: l.PageWidth, Ht: l.PageHeight})

	var buf bytes.Buffer
	if err := png.Encode(&buf, src.Image()); err != nil {
		return nil, fmt.Errorf("encode proof image: %w", err)
	}
	pdf.RegisterImageOptionsReader("page", fpdf.ImageOptions{ImageType: "PNG"}, &buf)
	pdf.ImageOptions("page", l.ImageX, l.ImageY, l.ImageW, l.ImageH, false, fpdf.ImageOptions{}, 0, "")

	pdf.SetLineWidth(0.5)
	pdf.SetDrawColor(0, 0, 0)
	pdf.Rect(0, 0, l.PageWidth, l.PageHeight, "D")

	// Imageable area, dashed.
	pdf.SetDrawColor(0, 102, 204)
	pdf.SetDashPattern([]float64{4, 2}, 0)
	pdf.Rect(l.AreaX, l.AreaY, l.AreaW, l.AreaH, "D")
	pdf.SetDashPattern(nil, 0)

	pdf.SetDrawColor(204, 0, 0)
	pdf.Rect(l.ImageX, l.ImageY, l.ImageW, l.ImageH, "D")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(96, 96, 96)
	pdf.Text(l.AreaX, l.PageHeight-2, Caption(job, l.Geometry))

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}
	return out.Bytes(), nil
}

// WriteFile writes the proof PDF to path.
func WriteFile(job *pcl.Job, src *imagesrc.Source, path string) error {
	data, err := Generate(job, src)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
