package report

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// PlotSize is the edge length of the square trajectory plot.
const PlotSize = 6 * vg.Inch

// WritePlot renders the mean path and the final position cloud as a PNG.
func WritePlot(w io.Writer, title string, traj []PoseSummary, cloud Cloud) error {
	if len(traj) == 0 {
		return fmt.Errorf("empty trajectory")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	if len(cloud.X) > 0 {
		scatter, err := plotter.NewScatter(cloudXYs(cloud))
		if err != nil {
			return fmt.Errorf("failed to build sample scatter: %w", err)
		}
		scatter.GlyphStyle.Color = color.RGBA{R: 49, G: 104, B: 142, A: 96}
		scatter.GlyphStyle.Radius = vg.Points(1)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
		p.Legend.Add("final samples", scatter)
	}

	path, err := plotter.NewLine(meanXYs(traj))
	if err != nil {
		return fmt.Errorf("failed to build mean path: %w", err)
	}
	path.Width = vg.Points(1.5)
	path.Color = color.RGBA{R: 220, G: 80, B: 40, A: 255}
	p.Add(path)
	p.Legend.Add("mean path", path)
	p.Legend.Top = true

	wt, err := p.WriterTo(PlotSize, PlotSize, "png")
	if err != nil {
		return fmt.Errorf("failed to create plot writer: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

func meanXYs(traj []PoseSummary) plotter.XYs {
	pts := make(plotter.XYs, len(traj))
	for i, p := range traj {
		pts[i] = plotter.XY{X: p.X.Mean, Y: p.Y.Mean}
	}
	return pts
}

func cloudXYs(c Cloud) plotter.XYs {
	n := min(len(c.X), len(c.Y))
	pts := make(plotter.XYs, n)
	for i := range n {
		pts[i] = plotter.XY{X: float64(c.X[i]), Y: float64(c.Y[i])}
	}
	return pts
}
