// Package errors provides the error and warning taxonomy used across the
// library. It is inspired by scikit-learn's warning/exception system and
// provides structured error information with stack traces.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// Default handler logs to standard error.
		log.Printf("rfa-warning: %v\n", w)
	}
	// zerolog warn function, injected lazily to avoid a circular import
	// with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler sets the library-wide warning handler. Use it to
// silence or redirect warnings such as UndefinedMetricWarning.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // ignore warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc injects the zerolog warning sink (set by pkg/log to
// avoid a circular import).
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning. When zerolog is configured the warning is emitted
// as a structured log entry, otherwise the plain handler is used.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// UndefinedMetricWarning is raised when a metric cannot be computed and a
// fallback value is returned instead, e.g. R² on a constant target.
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
	Result    float64 // value returned under this condition
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("'%s' is ill-defined and being set to %f due to %s.", w.Metric, w.Result, w.Condition)
}

// NewUndefinedMetricWarning creates a new UndefinedMetricWarning.
func NewUndefinedMetricWarning(metric, condition string, result float64) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition, Result: result}
}

// NonFiniteImportanceWarning is raised when an estimator's importance
// signal contains NaN or Inf values that were zero-substituted before
// ranking. The substitution is local and silent with respect to errors;
// the warning exists for diagnostics only.
type NonFiniteImportanceWarning struct {
	ModelName string
	Count     int
}

func (w *NonFiniteImportanceWarning) Error() string {
	return fmt.Sprintf("%d non-finite importance value(s) from %s were replaced with 0", w.Count, w.ModelName)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *NonFiniteImportanceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("model_name", w.ModelName).
		Int("count", w.Count).
		Str("type", "NonFiniteImportanceWarning")
}

// NewNonFiniteImportanceWarning creates a new NonFiniteImportanceWarning.
func NewNonFiniteImportanceWarning(modelName string, count int) *NonFiniteImportanceWarning {
	return &NonFiniteImportanceWarning{ModelName: modelName, Count: count}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// NotFittedError is returned when Predict, Transform or an attribute
// accessor is called before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("rfa: %s: this selector is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace attached.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError is returned when the shape of an input does not match the
// expected shape.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("rfa: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace attached.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError is returned when a parameter fails validation, e.g. a
// target feature count outside [1, n_features].
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("rfa: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a ValidationError with a stack trace attached.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError is returned when an argument value is invalid, e.g. a
// resolved step that is not positive.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("rfa: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace attached.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ImportanceError is returned when a fitted estimator exposes neither a
// coefficient signal nor a feature-importance signal. This is a fatal
// configuration error: the addition loop cannot rank features without it.
type ImportanceError struct {
	ModelName string
}

func (e *ImportanceError) Error() string {
	return fmt.Sprintf("rfa: the estimator %s does not expose coefficients or feature importances", e.ModelName)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ImportanceError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("type", "ImportanceError")
}

// NewImportanceError creates an ImportanceError with a stack trace attached.
func NewImportanceError(modelName string) error {
	err := &ImportanceError{ModelName: modelName}
	return errors.WithStack(err)
}

// UnsupportedOperationError is returned by the capability-checked
// forwarding layer when the wrapped estimator does not implement the
// requested method.
type UnsupportedOperationError struct {
	ModelName string
	Method    string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("rfa: the underlying estimator of %s does not support %s", e.ModelName, e.Method)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *UnsupportedOperationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "UnsupportedOperationError")
}

// NewUnsupportedOperationError creates an UnsupportedOperationError with a
// stack trace attached.
func NewUnsupportedOperationError(modelName, method string) error {
	err := &UnsupportedOperationError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As reports whether err can be assigned to target's type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack attaches a stack trace to an error.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error variables
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an empty matrix or vector is passed.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix is returned when a matrix cannot be solved.
	ErrSingularMatrix = New("singular matrix")
)
