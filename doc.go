// Package mnistexport converts the MNIST handwritten digit dataset into the
// CSV files a downstream neural network trainer consumes.
//
// The raw dataset is read from the four IDX files (optionally gzip
// compressed) in the mnist/ directory. Two commands write to data/:
//
//   - mnist-bulk-export: the full training split as train_data.csv, a
//     784×60000 matrix whose column j is sample j scaled to [0,1] and
//     flattened row-major, and train_labels.csv, the 10×60000 one-hot
//     label matrix with the same column order.
//   - mnist-sample-export: ten test images drawn uniformly at random, each
//     written as single_image_label_{label}_{n}.csv (784×1) plus a
//     grayscale JPEG preview of the same name.
//
// A third command, mnist-verify, reads the output back with the same shape
// checks the trainer applies and compares it with the source splits.
//
// # Quick Start
//
//	go run ./cmd/mnist-bulk-export
//	go run ./cmd/mnist-sample-export
//	go run ./cmd/mnist-verify
//
// # CSV format
//
// Values are written in scientific notation with 18 fractional digits
// (1.000000000000000000e+00), comma separated, no header. Every row has the
// same number of fields, so a file is exactly one matrix.
//
// # Packages
//
//   - dataset: IDX parsing and the training/test splits
//   - preprocessing: pixel scaling, one-hot encoding, flattening
//   - csvmat: matrix CSV writer and shape-checked reader
//   - preview: JPEG rendering and decode-back
//   - export: the bulk and sample pipelines, fixed Config and the verifier
//   - pkg/errors, pkg/log: error taxonomy and zerolog-backed logging
//
// There are no flags, environment variables or config files; the paths
// and counts are fixed by export.DefaultConfig.
package mnistexport
