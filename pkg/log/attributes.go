// Package log defines standard attribute keys for pipeline operations.
//
// Using the same keys from every stage keeps the run log filterable: each
// record carries the stage it came from plus the shape of the data it
// touched, and training/evaluation records carry their metric values under
// stable names.
package log

// Stage and operation context.
const (
	// StageKey identifies the pipeline stage emitting the record.
	// Values: "generate", "engineer", "explore", "train", "evaluate", "summarize"
	StageKey = "pipeline.stage"

	// ModelNameKey identifies the estimator involved, when there is one.
	// Examples: "LinearRegression", "RandomForest", "StandardScaler"
	ModelNameKey = "model.name"

	// OperationKey names the estimator operation being performed.
	// Standard values: "fit", "predict", "transform"
	OperationKey = "ml.operation"
)

// Data shape.
const (
	// SamplesKey is the number of rows being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns being processed.
	FeaturesKey = "data.features"

	// TrainSamplesKey and TestSamplesKey describe a train/test split.
	TrainSamplesKey = "data.train_samples"
	TestSamplesKey  = "data.test_samples"
)

// Metrics and timing.
const (
	// RMSEKey, MAEKey and R2Key carry evaluation metric values.
	RMSEKey = "metric.rmse"
	MAEKey  = "metric.mae"
	R2Key   = "metric.r2"

	// DurationMsKey is the wall-clock duration of an operation in milliseconds.
	DurationMsKey = "duration_ms"

	// FigureKey is the path of a rendered figure.
	FigureKey = "figure.path"
)
