// Package retrieval provides the pluggable retrieval subsystem: backend
// abstraction, the two-level registry and factory, and the error taxonomy
// shared by every retriever implementation.
package retrieval

import (
	"errors"
	"fmt"
)

// Kind classifies a RetrievalError by the policy a caller should apply,
// independent of which backend produced it.
type Kind string

const (
	KindConfigInvalid             Kind = "config_invalid"
	KindBackendUnavailable        Kind = "backend_unavailable"
	KindCollectionNotFound        Kind = "collection_not_found"
	KindDimensionMismatch         Kind = "dimension_mismatch"
	KindNoMatchingTemplate        Kind = "no_matching_template"
	KindParameterExtractionFailed Kind = "parameter_extraction_failed"
	KindTemplateExecutionFailed   Kind = "template_execution_failed"
	KindTimeout                   Kind = "timeout"
	KindUnexpected                Kind = "unexpected"
	KindNotFound                  Kind = "not_found"
	KindUnknownType               Kind = "unknown_type"
	KindNoCollection               Kind = "no_collection"
)

// RetrievalError is the single error type returned across the retrieval
// package tree. Callers branch on Kind via errors.As, never on string
// matching or sentinel values.
type RetrievalError struct {
	Op      string // operation that failed, e.g. "VectorRetriever.GetRelevantContext"
	Kind    Kind
	Message string
	Err     error
}

func (e *RetrievalError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("retrieval: %s: %s (%s)", e.Op, e.Message, e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("retrieval: %s: %v (%s)", e.Op, e.Err, e.Kind)
	}
	return fmt.Sprintf("retrieval: %s: %s", e.Op, e.Kind)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// NewError constructs a RetrievalError carrying an underlying cause.
func NewError(op string, kind Kind, err error) *RetrievalError {
	return &RetrievalError{Op: op, Kind: kind, Err: err}
}

// NewErrorMessage constructs a RetrievalError with a human-readable message
// and no wrapped cause (used for sentinel conditions like NoMatchingTemplate).
func NewErrorMessage(op string, kind Kind, message string) *RetrievalError {
	return &RetrievalError{Op: op, Kind: kind, Message: message}
}

// Is reports whether target is (or wraps) a *RetrievalError with the same
// Kind, so errors.Is(err, &RetrievalError{Kind: k}) matches on Kind alone;
// used by tests that only care about the Kind.
func (e *RetrievalError) Is(target error) bool {
	var other *RetrievalError
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// KindOf extracts the Kind of err if it is (or wraps) a *RetrievalError,
// returning KindUnexpected otherwise.
func KindOf(err error) Kind {
	var re *RetrievalError
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindUnexpected
}
