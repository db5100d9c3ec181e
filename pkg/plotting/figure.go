package plotting

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"cleanviz/pkg/stats"
)

const (
	beforeTitle = "%s Before Cleaning"
	afterTitle  = "%s After Cleaning"
)

var (
	barColor  = color.NRGBA{R: 31, G: 119, B: 180, A: 160}
	lineColor = color.NRGBA{R: 31, G: 119, B: 180, A: 255}
)

// Options controls figure geometry and the density overlay.
type Options struct {
	Width, Height vg.Length
	// KDEPoints is the number of samples along the density curve.
	KDEPoints int
	// Padding separates the two panels and the figure border.
	Padding vg.Length
}

// DefaultOptions returns an 8x4 inch figure.
func DefaultOptions() Options {
	return Options{
		Width:     8 * vg.Inch,
		Height:    4 * vg.Inch,
		KDEPoints: 200,
		Padding:   vg.Points(8),
	}
}

// Panel is one histogram sub-plot of a figure.
type Panel struct {
	Title string
	// Values are the finite values that were binned.
	Values   []float64
	Bins     int
	BinWidth float64
	// Density is the KDE overlay scaled to counts, nil if none could be estimated.
	Density plotter.XYs
	Plot    *plot.Plot
}

// Figure holds the before and after panels for one column.
type Figure struct {
	Column        string
	Width, Height vg.Length
	Panels        []*Panel
	padding       vg.Length
}

// BuildFigure lays out the before/after histogram pair for column.
func BuildFigure(column string, before, after []float64, opts Options) (*Figure, error) {
	left, err := buildPanel(column, fmt.Sprintf(beforeTitle, column), before, opts)
	if err != nil {
		return nil, errors.Wrap(err, "before panel")
	}
	right, err := buildPanel(column, fmt.Sprintf(afterTitle, column), after, opts)
	if err != nil {
		return nil, errors.Wrap(err, "after panel")
	}
	return &Figure{
		Column:  column,
		Width:   opts.Width,
		Height:  opts.Height,
		Panels:  []*Panel{left, right},
		padding: opts.Padding,
	}, nil
}

func buildPanel(column, title string, raw []float64, opts Options) (*Panel, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = column
	p.Y.Label.Text = "Count"

	panel := &Panel{Title: title, Values: stats.Finite(raw), Plot: p}
	if len(panel.Values) == 0 {
		return panel, nil
	}

	h, err := plotter.NewHist(plotter.Values(panel.Values), stats.AutoBins(panel.Values))
	if err != nil {
		return nil, err
	}
	h.FillColor = barColor
	h.LineStyle.Color = color.White
	p.Add(h)
	panel.Bins = len(h.Bins)
	panel.BinWidth = h.Width

	kde, err := stats.NewKDE(panel.Values)
	if err != nil {
		// too few distinct values for a density curve
		return panel, nil
	}
	lo, hi := stats.MinMax(panel.Values)
	panel.Density = kde.Curve(lo, hi, opts.KDEPoints, float64(len(panel.Values))*h.Width)
	line, err := plotter.NewLine(panel.Density)
	if err != nil {
		return nil, err
	}
	line.Color = lineColor
	line.Width = vg.Points(1.5)
	p.Add(line)
	return panel, nil
}

// Draw renders both panels side by side onto dc, aligning their axes.
func (f *Figure) Draw(dc draw.Canvas) {
	plots := make([][]*plot.Plot, 1)
	for _, panel := range f.Panels {
		plots[0] = append(plots[0], panel.Plot)
	}
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(plots[0]),
		PadX:      f.padding * 2,
		PadTop:    f.padding,
		PadBottom: f.padding,
		PadLeft:   f.padding,
		PadRight:  f.padding,
	}
	canvases := plot.Align(plots, tiles, dc)
	for j, p := range plots[0] {
		p.Draw(canvases[0][j])
	}
}

// Formats lists the image formats WriteTo accepts.
var Formats = []string{"png", "jpg", "svg"}

// SupportedFormat reports whether format is one of Formats.
func SupportedFormat(format string) bool {
	format = strings.ToLower(format)
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// WriteTo renders the figure in the given image format.
func (f *Figure) WriteTo(w io.Writer, format string) (int64, error) {
	switch strings.ToLower(format) {
	case "png":
		c := vgimg.New(f.Width, f.Height)
		f.Draw(draw.New(c))
		return vgimg.PngCanvas{Canvas: c}.WriteTo(w)
	case "jpg":
		c := vgimg.New(f.Width, f.Height)
		f.Draw(draw.New(c))
		return vgimg.JpegCanvas{Canvas: c}.WriteTo(w)
	case "svg":
		c := vgsvg.New(f.Width, f.Height)
		f.Draw(draw.New(c))
		return c.WriteTo(w)
	}
	return 0, errors.Errorf("unsupported figure format %q", format)
}
