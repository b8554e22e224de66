// Package export implements the two MNIST export pipelines and the verifier
// that reads their output back.
//
// The bulk exporter writes the whole training split as a features×samples
// design matrix plus a one-hot label matrix. The sample exporter draws a few
// test images at random and writes each as a 784×1 CSV column and a JPEG
// preview.
package export

import (
	"context"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mnistexport/core/model"
	"github.com/YuminosukeSato/mnistexport/core/parallel"
	"github.com/YuminosukeSato/mnistexport/csvmat"
	"github.com/YuminosukeSato/mnistexport/dataset"
	"github.com/YuminosukeSato/mnistexport/pkg/errors"
	"github.com/YuminosukeSato/mnistexport/pkg/log"
	"github.com/YuminosukeSato/mnistexport/preprocessing"
)

// BulkExporter converts a whole split into train_data.csv and
// train_labels.csv.
type BulkExporter struct {
	cfg     Config
	scaler  *preprocessing.PixelScaler
	encoder model.LabelEncoder
	logger  log.Logger
}

// parallelThreshold is the sample count at or below which the design
// matrix is filled on one goroutine.
const parallelThreshold = 2048

// NewBulkExporter validates cfg and builds the exporter.
func NewBulkExporter(cfg Config, logger log.Logger) (*BulkExporter, error) {
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
	return &BulkExporter{
		cfg:     cfg,
		scaler:  scaler,
		encoder: encoder,
		logger:  logger.With(log.ComponentKey, "bulk"),
	}, nil
}

// Build returns the design matrix (features × samples, column j is sample j
// normalized and flattened row-major) and the one-hot label matrix
// (classes × samples). Labels are checked before any pixel is touched.
func (b *BulkExporter) Build(split *dataset.Split) (design, labels *mat.Dense, err error) {
	defer errors.Recover(&err, "BulkExporter.Build")

	if split.Len() == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "BulkExporter.Build")
	}
	if err := b.cfg.checkExtent("BulkExporter.Build", split); err != nil {
		return nil, nil, err
	}

	labels, err = b.encoder.Encode(split.Labels())
	if err != nil {
		return nil, nil, err
	}

	design = mat.NewDense(b.cfg.Features(), split.Len(), nil)
	parallel.Run(split.Len(), parallelThreshold, func(start, end int) {
		for j := start; j < end; j++ {
			// row-major pixel storage is already the flattened column
			design.SetCol(j, b.scaler.NormalizePixels(split.Sample(j).Pixels))
		}
	})
	return design, labels, nil
}

// Export builds both matrices and writes them to the output directory.
func (b *BulkExporter) Export(ctx context.Context, split *dataset.Split) (err error) {
	defer errors.Recover(&err, "BulkExporter.Export")
	start := time.Now()

	design, labels, err := b.Build(split)
	if err != nil {
		return err
	}
	b.logger.Info("Matrices built",
		log.OperationKey, log.OperationEncode,
		log.SamplesKey, split.Len(),
		log.FeaturesKey, b.cfg.Features(),
		log.ClassesKey, b.cfg.Classes,
	)

	if err := b.cfg.EnsureOutputDir(); err != nil {
		return err
	}

	for _, out := range []struct {
		path string
		m    *mat.Dense
	}{
		{b.cfg.TrainDataPath(), design},
		{b.cfg.TrainLabelsPath(), labels},
	} {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "bulk export")
		}
		if err := csvmat.WriteFile(out.path, out.m); err != nil {
			return err
		}
		r, c := out.m.Dims()
		b.logger.Info("Matrix written",
			log.OperationKey, log.OperationWrite,
			log.PathKey, out.path,
			log.RowsKey, r,
			log.ColsKey, c,
		)
	}

	b.logger.Debug("Bulk export finished", log.DurationMsKey, time.Since(start).Milliseconds())
	return nil
}
