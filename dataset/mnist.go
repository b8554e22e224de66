// Package dataset loads the MNIST handwritten-digit splits from the IDX files
// distributed by the dataset authors.
//
// A Split owns its pixels and labels and hands out read-only Sample views.
// Nothing in this package normalizes or reshapes: it only decodes.
package dataset

import (
	"context"
	"fmt"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mnistexport/pkg/errors"
	"github.com/YuminosukeSato/mnistexport/pkg/log"
)

// Side is the width and height of an MNIST digit.
const Side = 28

// Standard file names inside the dataset directory. Each may also be present
// with a ".gz" suffix.
const (
	TrainImagesFile = "train-images-idx3-ubyte"
	TrainLabelsFile = "train-labels-idx1-ubyte"
	TestImagesFile  = "t10k-images-idx3-ubyte"
	TestLabelsFile  = "t10k-labels-idx1-ubyte"
)

// Provider supplies the raw training and test splits.
type Provider interface {
	LoadTraining(ctx context.Context) (*Split, error)
	LoadTest(ctx context.Context) (*Split, error)
}

// Sample is one raw image with its label. Pixels is row-major and must not
// be modified; it aliases the Split's storage.
type Sample struct {
	Pixels []uint8
	Rows   int
	Cols   int
	Label  int
}

// At returns the raw intensity at row i, column j.
func (s Sample) At(i, j int) uint8 {
	return s.Pixels[i*s.Cols+j]
}

// Matrix returns the raw intensities as a new Rows×Cols matrix.
func (s Sample) Matrix() *mat.Dense {
	data := make([]float64, len(s.Pixels))
	for i, p := range s.Pixels {
		data[i] = float64(p)
	}
	return mat.NewDense(s.Rows, s.Cols, data)
}

// Split is an ordered collection of samples of identical extent.
type Split struct {
	rows   int
	cols   int
	pixels []uint8
	labels []int
}

// NewSplit builds a split from row-major pixels (len = len(labels)*rows*cols).
func NewSplit(rows, cols int, pixels []uint8, labels []int) (*Split, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.NewValidationError("extent", "rows and cols must be positive", fmt.Sprintf("%dx%d", rows, cols))
	}
	if len(pixels) != len(labels)*rows*cols {
		return nil, errors.NewDimensionError("NewSplit", len(labels)*rows*cols, len(pixels), 0)
	}
	return &Split{rows: rows, cols: cols, pixels: pixels, labels: labels}, nil
}

// Len returns the number of samples.
func (s *Split) Len() int {
	return len(s.labels)
}

// Dims returns the extent of every image in the split.
func (s *Split) Dims() (rows, cols int) {
	return s.rows, s.cols
}

// Sample returns the i-th sample in provider order.
func (s *Split) Sample(i int) Sample {
	size := s.rows * s.cols
	return Sample{
		Pixels: s.pixels[i*size : (i+1)*size : (i+1)*size],
		Rows:   s.rows,
		Cols:   s.cols,
		Label:  s.labels[i],
	}
}

// Labels returns a copy of all labels in provider order.
func (s *Split) Labels() []int {
	out := make([]int, len(s.labels))
	copy(out, s.labels)
	return out
}

// FileProvider reads the four IDX files from Dir.
type FileProvider struct {
	Dir    string
	Side   int
	Logger log.Logger
}

// NewFileProvider returns a provider for 28×28 MNIST files in dir.
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{Dir: dir, Side: Side, Logger: log.GetLogger()}
}

// LoadTraining loads the 60000-sample training split.
func (p *FileProvider) LoadTraining(ctx context.Context) (*Split, error) {
	return p.load(ctx, log.PhaseTraining, TrainImagesFile, TrainLabelsFile)
}

// LoadTest loads the 10000-sample test split.
func (p *FileProvider) LoadTest(ctx context.Context) (*Split, error) {
	return p.load(ctx, log.PhaseTesting, TestImagesFile, TestLabelsFile)
}

func (p *FileProvider) load(ctx context.Context, phase, imagesFile, labelsFile string) (*Split, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "load "+phase+" split")
	}

	imagesPath := filepath.Join(p.Dir, imagesFile)
	labelsPath := filepath.Join(p.Dir, labelsFile)

	images, err := readImagesFile(imagesPath, p.Side)
	if err != nil {
		return nil, err
	}

	raw, err := readLabelsFile(labelsPath, images.count)
	if err != nil {
		return nil, err
	}

	labels := make([]int, len(raw))
	for i, l := range raw {
		labels[i] = int(l)
	}

	if p.Logger != nil {
		p.Logger.Info("Split loaded",
			log.ComponentKey, "dataset",
			log.OperationKey, log.OperationLoad,
			log.PhaseKey, phase,
			log.SamplesKey, images.count,
			log.FeaturesKey, images.rows*images.cols,
			log.PathKey, p.Dir,
		)
	}

	return &Split{rows: images.rows, cols: images.cols, pixels: images.pixels, labels: labels}, nil
}
