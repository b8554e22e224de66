package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/YuminosukeSato/mnistexport/dataset"
	"github.com/YuminosukeSato/mnistexport/pkg/errors"
)

// Fixed output file names.
const (
	TrainDataFile   = "train_data.csv"
	TrainLabelsFile = "train_labels.csv"
	samplePattern   = "single_image_label_%d_%d"
)

// Config holds the fixed parameters of both pipelines. There is no flag,
// environment or file source: DefaultConfig is what the commands run with.
type Config struct {
	DatasetDir   string  `validate:"required"`
	OutputDir    string  `validate:"required"`
	Draws        int     `validate:"gt=0"`
	Classes      int     `validate:"gte=2"`
	ImageSide    int     `validate:"gt=0"`
	MaxIntensity float64 `validate:"gt=0"`
	LogLevel     string  `validate:"required,oneof=debug info warn error"`
}

// DefaultConfig returns the configuration the commands use.
func DefaultConfig() Config {
	return Config{
		DatasetDir:   "mnist",
		OutputDir:    "data",
		Draws:        10,
		Classes:      10,
		ImageSide:    28,
		MaxIntensity: 255,
		LogLevel:     "info",
	}
}

var validate = validator.New()

// Validate checks the struct tags and reports the first failing field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		reason := fe.Tag()
		if fe.Param() != "" {
			reason += "=" + fe.Param()
		}
		return errors.NewValidationError(fe.Field(), reason, fe.Value())
	}
	return errors.Wrap(err, "validate config")
}

// Features is the number of pixels per image.
func (c Config) Features() int {
	return c.ImageSide * c.ImageSide
}

// TrainDataPath is where the design matrix is written.
func (c Config) TrainDataPath() string {
	return filepath.Join(c.OutputDir, TrainDataFile)
}

// TrainLabelsPath is where the label matrix is written.
func (c Config) TrainLabelsPath() string {
	return filepath.Join(c.OutputDir, TrainLabelsFile)
}

// SampleBase returns the output path without extension for draw number
// draw (1-based) of a sample labelled label.
func (c Config) SampleBase(label, draw int) string {
	return filepath.Join(c.OutputDir, fmt.Sprintf(samplePattern, label, draw))
}

// EnsureOutputDir creates the output directory; it is not an error if it
// already exists.
func (c Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return errors.NewWriteError("mkdir", c.OutputDir, err)
	}
	return nil
}

// checkExtent requires every image of split to be ImageSide×ImageSide.
func (c Config) checkExtent(op string, split *dataset.Split) error {
	rows, cols := split.Dims()
	if rows != c.ImageSide {
		return errors.NewDimensionError(op, c.ImageSide, rows, 0)
	}
	if cols != c.ImageSide {
		return errors.NewDimensionError(op, c.ImageSide, cols, 1)
	}
	return nil
}
