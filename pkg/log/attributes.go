// Package log defines standard attribute keys for model fitting, validation
// and plotting operations.
//
// This file contains predefined attribute keys that provide consistency across
// all logging operations in the library. Using these standard keys enables
// better log analysis, monitoring, and debugging of modelling workflows.
//
// The attributes are organized into categories:
//   - Model and Operation Context
//   - Data Shape and Characteristics
//   - Cross-Validation and Resampling Context
//   - Performance Metrics
//   - Error Context
//
// These keys follow a hierarchical naming convention (e.g., "model.name",
// "data.samples") to enable structured log analysis and filtering.

package log

// Model and Operation Context
// These attributes identify the model type, instance, and operation being performed.
const (
	// ModelNameKey identifies the type of model or transformer.
	// Examples: "PLSRegression", "StandardScaler", "LinearDiscriminantAnalysis"
	ModelNameKey = "model.name"

	// EstimatorIDKey provides a unique identifier for a specific model instance.
	// This is useful for tracking multiple instances of the same model type.
	// Examples: "pls-001", "scaler-abc123", UUID strings
	EstimatorIDKey = "estimator.id"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "fit_transform",
	// "cross_validate", "permutation_test", "plot"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "preprocessing", "cross_decomposition", "model_selection"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the analysis pipeline.
	// Examples: "preprocessing", "training", "validation", "permutation"
	PhaseKey = "ml.phase"

	// RunIDKey identifies a single pipeline run. All log records belonging to
	// one invocation of the pipeline carry the same run ID.
	RunIDKey = "run.id"
)

// Data Shape and Characteristics
// These attributes describe the structure and properties of data being processed.
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	// Important for dimensionality tracking and debugging shape mismatches.
	FeaturesKey = "data.features"

	// TargetsKey indicates the number of target columns, i.e. the width of the
	// one-hot indicator matrix for classification.
	TargetsKey = "data.targets"

	// ClassesKey indicates the number of distinct class labels.
	ClassesKey = "data.classes"

	// DataTypeKey specifies the type of data being processed.
	// Examples: "float64", "int64", "categorical"
	DataTypeKey = "data.type"
)

// Cross-Validation and Resampling Context
// These attributes describe fold structure and resampling configuration.
const (
	// ComponentsKey records the number of latent components in use.
	ComponentsKey = "pls.n_components"

	// MaxComponentsKey records the upper end of a component search range.
	MaxComponentsKey = "pls.max_components"

	// FoldKey records the index of the current cross-validation fold.
	FoldKey = "cv.fold"

	// NSplitsKey records the total number of cross-validation folds.
	NSplitsKey = "cv.n_splits"

	// PermutationsKey records the number of label permutations performed.
	PermutationsKey = "permutation.count"

	// WorkersKey records the number of parallel workers.
	WorkersKey = "parallel.workers"
)

// Performance Metrics
// These attributes capture timing, accuracy, and significance information.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// DurationSecondsKey records the execution time in seconds for longer operations.
	// Useful for permutation runs that take minutes.
	DurationSecondsKey = "perf.duration_seconds"

	// AccuracyKey records classification accuracy for evaluation operations.
	// Range typically [0.0, 1.0].
	AccuracyKey = "metrics.accuracy"

	// MSEKey records mean squared prediction error against indicator targets.
	MSEKey = "metrics.mse"

	// R2ScoreKey records the R² coefficient of determination.
	R2ScoreKey = "metrics.r2_score"

	// PValueKey records a significance level from a statistical test.
	PValueKey = "metrics.p_value"

	// UStatisticKey records the U statistic from a rank-sum comparison.
	UStatisticKey = "metrics.u_statistic"

	// IterationKey records the current iteration number during iterative processes.
	// Useful for tracking convergence of the inner NIPALS loop.
	IterationKey = "training.iteration"
)

// Error and Warning Context
// These attributes provide additional context for error and warning messages.
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	// Examples: "DIMENSION_MISMATCH", "NOT_FITTED", "ZERO_VARIANCE"
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "ValidationError", "NotFittedError", "NumericalInstabilityError"
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	// Automatically populated by the error logging functions.
	StacktraceKey = "error.stacktrace"

	// SuggestionKey provides helpful suggestions for resolving issues.
	// Examples: "Check input data shape", "Increase max_iter"
	SuggestionKey = "error.suggestion"
)

// Configuration and Output
// These attributes capture run configuration and artifact locations.
const (
	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"

	// ConfigPathKey records the path of the loaded configuration file.
	ConfigPathKey = "config.path"

	// FigureKey identifies a generated figure by name.
	// Examples: "scores_scatter", "vip_bars", "mse_curve"
	FigureKey = "plot.figure"

	// OutputDirKey records the directory artifacts are written to.
	OutputDirKey = "output.dir"
)

// Standard attribute value constants for common operations.
// Using these constants ensures consistency across the codebase.
const (
	// Standard operations
	OperationFit             = "fit"
	OperationPredict         = "predict"
	OperationTransform       = "transform"
	OperationFitTransform    = "fit_transform"
	OperationScore           = "score"
	OperationCrossValidate   = "cross_validate"
	OperationPermutationTest = "permutation_test"
	OperationPlot            = "plot"

	// Standard pipeline phases
	PhasePreprocessing = "preprocessing"
	PhaseTraining      = "training"
	PhaseValidation    = "validation"
	PhaseEvaluation    = "evaluation"
	PhasePermutation   = "permutation"
	PhasePlotting      = "plotting"

	// Standard error codes
	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorConvergence       = "CONVERGENCE_FAILURE"
	ErrorSingularMatrix    = "SINGULAR_MATRIX"
	ErrorZeroVariance      = "ZERO_VARIANCE"
	ErrorDegenerateClass   = "DEGENERATE_CLASS"
)
