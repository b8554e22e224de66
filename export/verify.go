package export

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mnistexport/core/model"
	"github.com/YuminosukeSato/mnistexport/core/parallel"
	"github.com/YuminosukeSato/mnistexport/csvmat"
	"github.com/YuminosukeSato/mnistexport/dataset"
	"github.com/YuminosukeSato/mnistexport/pkg/errors"
	"github.com/YuminosukeSato/mnistexport/pkg/log"
	"github.com/YuminosukeSato/mnistexport/preprocessing"
	"github.com/YuminosukeSato/mnistexport/preview"
)

// Report summarizes a successful verification.
type Report struct {
	TrainSamples int // columns checked in train_data.csv / train_labels.csv
	SampleFiles  int // single_image_label_*_*.csv files checked
}

func (r Report) String() string {
	return fmt.Sprintf("verified %d training columns and %d sample files", r.TrainSamples, r.SampleFiles)
}

// Verifier reads exported files back with the same shape-checked reader the
// downstream trainer uses and checks them against the source splits.
type Verifier struct {
	cfg     Config
	scaler  *preprocessing.PixelScaler
	inverse model.InverseTransformer
	encoder model.LabelEncoder
	logger  log.Logger
}

// intensityTolerance is how far a de-normalized CSV value may sit from an
// integer intensity.
const intensityTolerance = 1e-9

// NewVerifier validates cfg and builds the verifier.
func NewVerifier(cfg Config, logger log.Logger) (*Verifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	scaler, err := preprocessing.NewPixelScaler(cfg.MaxIntensity)
	if err != nil {
		return nil, err
	}
	encoder, err := preprocessing.NewOneHotEncoder(cfg.Classes)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.GetLogger()
	}
	return &Verifier{
		cfg:     cfg,
		scaler:  scaler,
		inverse: scaler,
		encoder: encoder,
		logger:  logger.With(log.ComponentKey, "verify"),
	}, nil
}

// Verify checks the bulk export against train and the sample export against
// test.
func (v *Verifier) Verify(ctx context.Context, train, test *dataset.Split) (Report, error) {
	var report Report
	if err := v.VerifyTraining(ctx, train); err != nil {
		return report, err
	}
	report.TrainSamples = train.Len()

	n, err := v.VerifySamples(ctx, test)
	if err != nil {
		return report, err
	}
	report.SampleFiles = n
	return report, nil
}

// VerifyTraining checks that train_data.csv holds every training sample,
// normalized, as a column in provider order, and that train_labels.csv holds
// the matching one-hot columns.
func (v *Verifier) VerifyTraining(ctx context.Context, train *dataset.Split) error {
	n := train.Len()
	if n == 0 {
		return errors.Wrap(errors.ErrEmptyData, "Verifier.VerifyTraining")
	}

	design, err := v.readExact(v.cfg.TrainDataPath(), v.cfg.Features(), n)
	if err != nil {
		return err
	}
	data := design.RawMatrix().Data
	if lo, hi := floats.Min(data), floats.Max(data); lo < 0 || hi > 1 {
		return errors.NewValueErrorf(v.cfg.TrainDataPath(), "values outside [0,1]: min %g, max %g", lo, hi)
	}

	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "verify training")
	}
	if j := v.firstMismatch(design, train); j >= 0 {
		return errors.NewValueErrorf(v.cfg.TrainDataPath(), "column %d does not match training sample %d", j, j)
	}

	labels, err := v.readExact(v.cfg.TrainLabelsPath(), v.cfg.Classes, n)
	if err != nil {
		return err
	}
	decoded, err := v.encoder.Decode(labels)
	if err != nil {
		return errors.Wrapf(err, "decode %s", v.cfg.TrainLabelsPath())
	}
	for j, want := range train.Labels() {
		if decoded[j] != want {
			return errors.NewValueErrorf(v.cfg.TrainLabelsPath(), "column %d encodes label %d, sample has %d", j, decoded[j], want)
		}
	}

	v.logger.Info("Training export verified",
		log.OperationKey, log.OperationVerify,
		log.SamplesKey, n,
	)
	return nil
}

// VerifySamples checks every single_image_label_{label}_{n}.csv in the output
// directory: 784×1 values that de-normalize to whole intensities equal to a
// test sample carrying the label from the file name, and a decodable JPEG
// next to it. It returns the number of
// files checked.
func (v *Verifier) VerifySamples(ctx context.Context, test *dataset.Split) (int, error) {
	paths, err := filepath.Glob(filepath.Join(v.cfg.OutputDir, "single_image_label_*_*.csv"))
	if err != nil {
		return 0, errors.Wrap(err, "glob sample files")
	}
	sort.Strings(paths)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return 0, errors.Wrap(err, "verify samples")
		}

		var label, draw int
		if _, err := fmt.Sscanf(filepath.Base(path), samplePattern+".csv", &label, &draw); err != nil {
			return 0, errors.NewValueErrorf(path, "file name does not match %s.csv", samplePattern)
		}

		column, err := v.readExact(path, v.cfg.Features(), 1)
		if err != nil {
			return 0, err
		}
		pixels, err := v.intensities(path, column)
		if err != nil {
			return 0, err
		}
		if !matchesTestSample(pixels, label, test) {
			return 0, errors.NewValueErrorf(path, "no test sample with label %d has these pixels", label)
		}

		jpegPath := strings.TrimSuffix(path, ".csv") + ".jpeg"
		if _, err := preview.DecodeFile(jpegPath, v.cfg.ImageSide); err != nil {
			return 0, err
		}

		v.logger.Debug("Sample verified",
			log.OperationKey, log.OperationVerify,
			log.DrawKey, draw,
			log.LabelKey, label,
			log.PathKey, path,
		)
	}
	return len(paths), nil
}

// firstMismatch returns the lowest column of design that differs from the
// normalized training sample with the same index, or -1.
func (v *Verifier) firstMismatch(design *mat.Dense, train *dataset.Split) int {
	chunks := parallel.Chunks(train.Len(), 0)
	found := make([]int, len(chunks))
	parallel.Run(len(chunks), 0, func(start, end int) {
		for c := start; c < end; c++ {
			found[c] = -1
			col := make([]float64, v.cfg.Features())
			for j := chunks[c][0]; j < chunks[c][1]; j++ {
				mat.Col(col, j, design)
				if !floats.Equal(col, v.scaler.NormalizePixels(train.Sample(j).Pixels)) {
					found[c] = j
					break
				}
			}
		}
	})
	for _, j := range found {
		if j >= 0 {
			return j
		}
	}
	return -1
}

// intensities reshapes a flattened sample column to its grid, maps it back
// to [0, MaxIntensity] and returns the row-major bytes. Every value must be
// a whole intensity.
func (v *Verifier) intensities(path string, column *mat.Dense) ([]uint8, error) {
	side := v.cfg.ImageSide
	grid, err := preprocessing.Reshape(column.ColView(0), side, side)
	if err != nil {
		return nil, err
	}
	raw, err := v.inverse.InverseTransform(grid)
	if err != nil {
		return nil, err
	}

	pixels := make([]uint8, 0, side*side)
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			x := raw.At(i, j)
			r := math.Round(x)
			if math.Abs(x-r) > intensityTolerance || r < 0 || r > 255 {
				return nil, errors.NewValueErrorf(path, "value at row %d, col %d is not a pixel intensity: %g", i, j, x)
			}
			pixels = append(pixels, uint8(r))
		}
	}
	return pixels, nil
}

func matchesTestSample(pixels []uint8, label int, test *dataset.Split) bool {
	if test == nil {
		return true
	}
	for i := 0; i < test.Len(); i++ {
		s := test.Sample(i)
		if s.Label == label && bytes.Equal(pixels, s.Pixels) {
			return true
		}
	}
	return false
}

// readExact reads path and requires exactly rows×cols cells.
func (v *Verifier) readExact(path string, rows, cols int) (*mat.Dense, error) {
	r, c, err := csvmat.Dims(path)
	if err != nil {
		return nil, err
	}
	if r != rows {
		return nil, errors.NewDimensionError(path, rows, r, 0)
	}
	if c != cols {
		return nil, errors.NewDimensionError(path, cols, c, 1)
	}
	return csvmat.ReadFile(path, rows, cols)
}
