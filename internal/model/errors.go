package model

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is returned by every operation when the knowledge base
// is missing or empty. The core degrades to this mode instead of crashing.
var ErrNotInitialized = errors.New("knowledge base not initialized")

// InputError indicates the symptom text yielded no usable tokens
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "invalid input: " + e.Reason
}

// NotFoundError indicates an unknown disease ID
type NotFoundError struct {
	DiseaseID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("disease %s not found", e.DiseaseID)
}

// IsInputError reports whether err is an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
