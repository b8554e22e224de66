package preview

import (
	"image"
	_ "image/jpeg" // registers JPEG for image.Decode
	"io"
	"os"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mnistexport/pkg/errors"
)

// Decode reads an image of any size, rescales it to side×side and returns
// its luma in [0, 1], row 0 at the top.
func Decode(r io.Reader, side int) (*mat.Dense, error) {
	if side <= 0 {
		return nil, errors.NewValidationError("side", "must be positive", side)
	}

	src, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}

	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.CatmullRom.Scale(dst, dst.Rect, src, src.Bounds(), draw.Over, nil)

	out := mat.NewDense(side, side, nil)
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			cr, cg, cb, _ := dst.At(x, y).RGBA()
			gray := 0.299*float64(cr>>8) + 0.587*float64(cg>>8) + 0.114*float64(cb>>8)
			out.Set(y, x, gray/255.0)
		}
	}
	return out, nil
}

// DecodeFile opens path and decodes it with Decode.
func DecodeFile(path string, side int) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open file %s", path)
	}
	defer f.Close()

	return Decode(f, side)
}
