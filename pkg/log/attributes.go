// Package log defines standard attribute keys for the export pipelines.
//
// Keys follow a hierarchical naming convention (e.g. "data.samples",
// "file.path") so log lines from the bulk and sample exporters can be
// filtered the same way.

package log

// Operation context
const (
	// ComponentKey identifies which pipeline emits the record.
	// Examples: "bulk", "sample", "verify", "dataset"
	ComponentKey = "ml.component"

	// OperationKey specifies the step being performed.
	OperationKey = "ml.operation"

	// PhaseKey indicates which dataset split is processed.
	// Examples: "training", "testing"
	PhaseKey = "ml.phase"
)

// Data shape
const (
	// SamplesKey indicates the number of samples in a split or matrix.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (pixels) per sample.
	FeaturesKey = "data.features"

	// ClassesKey indicates the number of label classes.
	ClassesKey = "data.classes"

	// RowsKey and ColsKey describe a written or read matrix.
	RowsKey = "data.rows"
	ColsKey = "data.cols"
)

// Sampling
const (
	// DrawKey is the 1-based draw counter of the sample exporter.
	DrawKey = "sample.draw"

	// IndexKey is the index of the drawn sample in its split.
	IndexKey = "sample.index"

	// LabelKey is the true label of a sample.
	LabelKey = "sample.label"

	// RandomSeedKey records the seed of the sampling source when known.
	RandomSeedKey = "config.random_seed"
)

// Files and timing
const (
	// PathKey is a file or directory path.
	PathKey = "file.path"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Error context
const (
	// ErrorDetailKey holds the structured fields of a typed error.
	ErrorDetailKey = "error.detail"

	// WarningKey holds the structured fields of a warning.
	WarningKey = "warning"
)

// Standard attribute values.
const (
	OperationLoad      = "load"
	OperationNormalize = "normalize"
	OperationEncode    = "encode"
	OperationSample    = "sample"
	OperationWrite     = "write"
	OperationRender    = "render"
	OperationVerify    = "verify"

	PhaseTraining = "training"
	PhaseTesting  = "testing"
)
