// Package log defines standard attribute keys for machine learning operations.
//
// This file contains predefined attribute keys that provide consistency across
// all logging operations in SemiGo. Using these standard keys enables better
// log analysis, monitoring, and debugging of semi-supervised learning
// workflows.
//
// The attributes are organized into categories:
//   - Model and Operation Context
//   - Data Shape and Characteristics
//   - Pseudo-Labeling Context
//   - Performance Metrics
//   - Error Context
//
// These keys follow a hierarchical naming convention (e.g., "model.name",
// "data.samples") to enable structured log analysis and filtering.

package log

// Model and Operation Context
// These attributes identify the model type, instance, and operation being performed.
const (
	// ModelNameKey identifies the type of machine learning model.
	// Examples: "LogisticRegression", "StandardScaler", "PseudoLabeler"
	ModelNameKey = "model.name"

	// EstimatorIDKey provides a unique identifier for a specific model instance.
	// This is useful for tracking multiple instances of the same model type.
	// Examples: "lr-001", "pl-abc123", UUID strings
	EstimatorIDKey = "estimator.id"

	// OperationKey specifies the machine learning operation being performed.
	// Standard values: "fit", "predict", "transform", "augment", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component or package is performing the operation.
	// Examples: "linear_model", "semisupervised", "metrics"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	// Examples: "training", "inference", "augmentation", "validation"
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
// These attributes describe the structure and properties of data being processed.
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	// This is crucial for understanding the scale of data being processed.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	// Important for dimensionality tracking and debugging shape mismatches.
	FeaturesKey = "data.features"

	// TargetsKey indicates the number of target variables for supervised learning.
	// Usually 1 for single-target problems.
	TargetsKey = "data.targets"
)

// Pseudo-Labeling Context
// These attributes describe one augmentation pass over an unlabeled pool.
const (
	// LabeledSizeKey indicates the number of labeled examples fed to the classifier.
	LabeledSizeKey = "pseudo.labeled_size"

	// PoolSizeKey indicates the number of unlabeled examples scored in this pass.
	PoolSizeKey = "pseudo.pool_size"

	// SelectedKey indicates how many unlabeled examples achieved a per-class
	// maximum probability and were adopted as pseudo-labels.
	SelectedKey = "pseudo.selected"

	// ResidualKey indicates how many unlabeled examples were rejected and
	// returned for downstream evaluation.
	ResidualKey = "pseudo.residual"
)

// Performance Metrics
// These attributes capture timing and accuracy information.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	// This is essential for performance monitoring and optimization.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records model accuracy for evaluation operations.
	// Range typically [0.0, 1.0] for classification accuracy.
	AccuracyKey = "metrics.accuracy"

	// LossKey records loss value during training or evaluation.
	// Lower values typically indicate better model performance.
	LossKey = "metrics.loss"

	// IterationKey records the current iteration number during iterative processes.
	// Useful for tracking convergence in iterative algorithms.
	IterationKey = "training.iteration"
)

// Error and Warning Context
// These attributes provide additional context for error and warning messages.
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	// Examples: "DIMENSION_MISMATCH", "NOT_FITTED", "CONVERGENCE_FAILURE"
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "ValidationError", "ModelError", "PanicError"
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	// Automatically populated by the error logging functions.
	StacktraceKey = "error.stacktrace"
)

// Hyperparameters and Configuration
const (
	// HyperParamsKey contains model hyperparameters as a structured object.
	// Useful for tracking model configuration and reproducibility.
	HyperParamsKey = "model.hyperparams"

	// LearningRateKey records the learning rate for gradient-based algorithms.
	LearningRateKey = "hyperparams.learning_rate"

	// RandomSeedKey records the random seed for reproducibility.
	// Essential for debugging and ensuring reproducible results.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute value constants for common operations.
// Using these constants ensures consistency across the codebase.
const (
	// Standard ML operations
	OperationFit       = "fit"
	OperationPredict   = "predict"
	OperationTransform = "transform"
	OperationAugment   = "augment"
	OperationScore     = "score"

	// Standard ML phases
	PhaseTraining     = "training"
	PhaseAugmentation = "augmentation"
	PhaseValidation   = "validation"
	PhaseInference    = "inference"

	// Standard error codes
	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorConvergence       = "CONVERGENCE_FAILURE"
	ErrorClassifier        = "CLASSIFIER_FAILURE"
)
