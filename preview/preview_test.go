package preview

import (
	"bytes"
	"image"
	"image/jpeg"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mnistexport/pkg/errors"
)

func rowMean(m mat.Matrix, i int) float64 {
	_, c := m.Dims()
	sum := 0.0
	for j := 0; j < c; j++ {
		sum += m.At(i, j)
	}
	return sum / float64(c)
}

func TestRenderProducesJPEG(t *testing.T) {
	img := mat.NewDense(28, 28, nil)
	img.Set(14, 14, 1)

	var buf bytes.Buffer
	require.NoError(t, NewJPEGRenderer().Render(&buf, img))

	cfg, format, err := image.DecodeConfig(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 480, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
}

func TestRenderOrientation(t *testing.T) {
	// rows 0-13 black, rows 14-27 white
	img := mat.NewDense(28, 28, nil)
	for i := 14; i < 28; i++ {
		for j := 0; j < 28; j++ {
			img.Set(i, j, 1)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, NewJPEGRenderer().Render(&buf, img))

	back, err := Decode(&buf, 28)
	require.NoError(t, err)

	for i := 3; i <= 10; i++ {
		assert.Less(t, rowMean(back, i), 0.25, "row %d should be dark", i)
	}
	for i := 17; i <= 24; i++ {
		assert.Greater(t, rowMean(back, i), 0.75, "row %d should be bright", i)
	}
}

func TestRenderConstantImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJPEGRenderer().Render(&buf, mat.NewDense(28, 28, nil)))

	back, err := Decode(&buf, 28)
	require.NoError(t, err)
	assert.Less(t, rowMean(back, 14), 0.1)
}

func TestGrayPalette(t *testing.T) {
	colors := grayPalette(256).Colors()

	require.Len(t, colors, 256)
	r, g, b, _ := colors[0].RGBA()
	assert.Zero(t, r+g+b)
	r, _, _, _ = colors[255].RGBA()
	assert.Equal(t, uint32(0xffff), r)
}

func TestDecodeRescales(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 56, 56))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, src, nil))

	back, err := Decode(&buf, 28)
	require.NoError(t, err)

	r, c := back.Dims()
	assert.Equal(t, 28, r)
	assert.Equal(t, 28, c)
	assert.Greater(t, rowMean(back, 0), 0.95)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader("not an image"), 28)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader(""), 0)
	var vErr *errors.ValidationError
	assert.True(t, errors.As(err, &vErr))

	_, err = DecodeFile("does/not/exist.jpeg", 28)
	assert.Error(t, err)
}
