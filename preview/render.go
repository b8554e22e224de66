// Package preview renders normalized digit grids as grayscale JPEG images and
// reads such images back into intensity grids.
package preview

import (
	"image/color"
	"io"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/YuminosukeSato/mnistexport/pkg/errors"
)

// Default canvas: 4.8in square at 100 dpi (480×480 pixels), the height of a
// default matplotlib figure with square pixels.
const (
	DefaultSize = 4.8 * vg.Inch
	DefaultDPI  = 100
	grayLevels  = 256
)

// JPEGRenderer draws a grid as a heat map with a linear gray palette: the
// grid minimum is black, the maximum white. Axes are hidden and the grid
// fills the whole canvas with row 0 at the top.
type JPEGRenderer struct {
	Size vg.Length
	DPI  int
}

// NewJPEGRenderer returns a renderer with the default canvas.
func NewJPEGRenderer() *JPEGRenderer {
	return &JPEGRenderer{Size: DefaultSize, DPI: DefaultDPI}
}

// Render encodes img as a JPEG to w.
func (r *JPEGRenderer) Render(w io.Writer, img mat.Matrix) error {
	rows, cols := img.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrap(errors.ErrEmptyData, "JPEGRenderer.Render")
	}

	hm := plotter.NewHeatMap(grid{m: img}, grayPalette(grayLevels))
	hm.Rasterized = true
	if hm.Max == hm.Min {
		// constant image maps to the low end of the palette
		hm.Max = hm.Min + 1
	}

	p := plot.New()
	p.HideAxes()
	p.X.Padding = 0
	p.Y.Padding = 0
	p.Add(hm)

	c := vgimg.NewWith(vgimg.UseWH(r.Size, r.Size), vgimg.UseDPI(r.DPI))
	p.Draw(draw.New(c))

	if _, err := (vgimg.JpegCanvas{Canvas: c}).WriteTo(w); err != nil {
		return errors.Wrap(err, "encode jpeg")
	}
	return nil
}

// grid adapts a matrix to plotter.GridXYZ. Plot Y grows upwards, so plot row
// y shows matrix row rows-1-y.
type grid struct {
	m mat.Matrix
}

func (g grid) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}

func (g grid) Z(c, r int) float64 {
	rows, _ := g.m.Dims()
	return g.m.At(rows-1-r, c)
}

func (g grid) X(c int) float64 { return float64(c) }

func (g grid) Y(r int) float64 { return float64(r) }

// grayPalette is a linear black-to-white palette.Palette.
type grayPalette int

func (n grayPalette) Colors() []color.Color {
	colors := make([]color.Color, int(n))
	for i := range colors {
		colors[i] = color.Gray{Y: uint8(i * 255 / (int(n) - 1))}
	}
	return colors
}
