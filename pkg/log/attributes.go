// Standard attribute keys for machine learning operations. Using these
// keys keeps log output consistent across the dataset, training and serving
// layers and makes the records filterable.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "RandomForestRegressor".
	ModelNameKey = "model.name"

	// OperationKey names the ML operation: "fit", "predict", "transform", "score".
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation,
	// e.g. "ensemble", "dataset", "server".
	ComponentKey = "ml.component"
)

// Data shape.
const (
	// SamplesKey is the number of rows being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns.
	FeaturesKey = "data.features"

	// RowsDroppedKey is the number of rows removed by filtering.
	RowsDroppedKey = "data.rows_dropped"
)

// Performance and evaluation.
const (
	// DurationMsKey is the elapsed time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// MAEKey is the mean absolute error of an evaluation.
	MAEKey = "metrics.mae"

	// R2Key is the coefficient of determination of an evaluation.
	R2Key = "metrics.r2"
)

// Error context.
const (
	// ErrAttrKey carries an error value.
	ErrAttrKey = "error"

	// StacktraceAttrKey carries a formatted stack trace.
	StacktraceAttrKey = "stacktrace"
)

// Request context for the serving layer.
const (
	// RequestIDKey is the per-request UUID assigned by the server middleware.
	RequestIDKey = "http.request_id"
)
