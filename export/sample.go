package export

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mnistexport/core/model"
	"github.com/YuminosukeSato/mnistexport/csvmat"
	"github.com/YuminosukeSato/mnistexport/dataset"
	"github.com/YuminosukeSato/mnistexport/pkg/errors"
	"github.com/YuminosukeSato/mnistexport/pkg/log"
	"github.com/YuminosukeSato/mnistexport/preprocessing"
)

// Renderer rasterizes a normalized grid to an image stream.
type Renderer interface {
	Render(w io.Writer, img mat.Matrix) error
}

// Draw describes one exported sample.
type Draw struct {
	Number   int // 1-based draw counter
	Index    int // index in the split
	Label    int
	CSVPath  string
	JPEGPath string
}

// SampleExporter writes randomly drawn samples as CSV columns and JPEG
// previews.
type SampleExporter struct {
	cfg      Config
	scaler   model.Transformer
	renderer Renderer
	rng      *rand.Rand
	console  io.Writer
	logger   log.Logger
}

// NewSampleExporter validates cfg and builds the exporter. Summary blocks are
// printed to console.
func NewSampleExporter(cfg Config, renderer Renderer, rng *rand.Rand, console io.Writer, logger log.Logger) (*SampleExporter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	scaler, err := preprocessing.NewPixelScaler(cfg.MaxIntensity)
	if err != nil {
		return nil, err
	}
	if renderer == nil {
		return nil, errors.NewValidationError("renderer", "required", nil)
	}
	if rng == nil {
		return nil, errors.NewValidationError("rng", "required", nil)
	}
	if console == nil {
		console = io.Discard
	}
	if logger == nil {
		logger = log.GetLogger()
	}
	return &SampleExporter{
		cfg:      cfg,
		scaler:   scaler,
		renderer: renderer,
		rng:      rng,
		console:  console,
		logger:   logger.With(log.ComponentKey, "sample"),
	}, nil
}

// DrawIndices draws k indices uniformly from [0, n) with replacement.
// Repeats are kept and reported through errors.Warn.
func DrawIndices(rng *rand.Rand, n, k int) []int {
	indices := make([]int, k)
	first := make(map[int]int, k)
	for i := range indices {
		idx := rng.IntN(n)
		indices[i] = idx
		if d, seen := first[idx]; seen {
			errors.Warn(errors.NewDuplicateDrawWarning(idx, i+1, d))
			continue
		}
		first[idx] = i + 1
	}
	return indices
}

// Export draws cfg.Draws samples and writes them. The first failure aborts
// the run; files already written are left in place.
func (s *SampleExporter) Export(ctx context.Context, split *dataset.Split) (draws []Draw, err error) {
	defer errors.Recover(&err, "SampleExporter.Export")

	if split.Len() == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "SampleExporter.Export")
	}
	if err := s.cfg.checkExtent("SampleExporter.Export", split); err != nil {
		return nil, err
	}
	if err := s.cfg.EnsureOutputDir(); err != nil {
		return nil, err
	}

	indices := DrawIndices(s.rng, split.Len(), s.cfg.Draws)
	draws = make([]Draw, 0, len(indices))
	for i, idx := range indices {
		if err := ctx.Err(); err != nil {
			return draws, errors.Wrap(err, "sample export")
		}
		d, err := s.exportOne(split.Sample(idx), idx, i+1)
		if err != nil {
			return draws, err
		}
		draws = append(draws, d)
		s.printSummary(d)
	}
	return draws, nil
}

func (s *SampleExporter) exportOne(sample dataset.Sample, idx, number int) (Draw, error) {
	base := s.cfg.SampleBase(sample.Label, number)
	d := Draw{
		Number:   number,
		Index:    idx,
		Label:    sample.Label,
		CSVPath:  base + ".csv",
		JPEGPath: base + ".jpeg",
	}

	image, err := s.scaler.Transform(sample.Matrix())
	if err != nil {
		return d, err
	}
	flat := preprocessing.Flatten(image)

	if err := csvmat.WriteFile(d.CSVPath, flat); err != nil {
		return d, err
	}
	if err := s.renderFile(d.JPEGPath, image); err != nil {
		return d, err
	}

	s.logger.Debug("Sample written",
		log.OperationKey, log.OperationWrite,
		log.DrawKey, d.Number,
		log.IndexKey, d.Index,
		log.LabelKey, d.Label,
		log.PathKey, base,
	)
	return d, nil
}

func (s *SampleExporter) renderFile(path string, image mat.Matrix) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewWriteError("create", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.NewWriteError("close", path, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := s.renderer.Render(bw, image); err != nil {
		return errors.NewWriteError("render", path, err)
	}
	if err := bw.Flush(); err != nil {
		return errors.NewWriteError("flush", path, err)
	}
	return nil
}

func (s *SampleExporter) printSummary(d Draw) {
	fmt.Fprintf(s.console, "Image %d:\n", d.Number)
	fmt.Fprintf(s.console, "  Selected test image index: %d\n", d.Index)
	fmt.Fprintf(s.console, "  True label: %d\n", d.Label)
	fmt.Fprintf(s.console, "  CSV file created: %s\n", d.CSVPath)
	fmt.Fprintf(s.console, "  JPEG file created: %s\n", d.JPEGPath)
}
