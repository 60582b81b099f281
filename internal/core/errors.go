// ABOUTME: Failure categories raised by the pipeline stages
// ABOUTME: Each stage wraps collaborator failures into exactly one category
package core

import (
	"errors"
	"fmt"
)

// Category is the coarse classification reported for a failed run
type Category string

const (
	CategoryNone            Category = ""
	CategoryValidation      Category = "validation"
	CategoryAlignment       Category = "alignment"
	CategoryModelGeneration Category = "model_generation"
	CategoryTransfer        Category = "transfer"
	CategoryInternal        Category = "internal"
)

// ValidationError reports a missing input field or an unsupported value
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("validation failed for %s=%q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("validation failed for %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// AlignmentError reports a missing alignment record or a failed alignment call
type AlignmentError struct {
	Key string
	Err error
}

func (e *AlignmentError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("alignment error: missing key %s", e.Key)
	}
	return fmt.Sprintf("alignment error: %v", e.Err)
}

func (e *AlignmentError) Unwrap() error { return e.Err }

// ModelGenerationError reports an absent first candidate or a failed generation call
type ModelGenerationError struct {
	Path string
	Err  error
}

func (e *ModelGenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model generation error (expected %s): %v", e.Path, e.Err)
	}
	return fmt.Sprintf("model generation error: model file not generated at %s", e.Path)
}

func (e *ModelGenerationError) Unwrap() error { return e.Err }

// TransferError reports an object-storage fetch or store failure
type TransferError struct {
	Op     string // "fetch" or "store"
	Bucket string
	Key    string
	Err    error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer error: %s %s: %v", e.Op, ObjectURI(e.Bucket, e.Key), e.Err)
}

// ObjectURI formats an object location. Without a bucket the key is a local path.
func ObjectURI(bucket, key string) string {
	if bucket == "" {
		return key
	}
	return "s3://" + bucket + "/" + key
}

func (e *TransferError) Unwrap() error { return e.Err }

// CategoryOf classifies err. Errors outside the four stage categories are internal.
func CategoryOf(err error) Category {
	var (
		ve *ValidationError
		ae *AlignmentError
		me *ModelGenerationError
		te *TransferError
	)
	switch {
	case err == nil:
		return CategoryNone
	case errors.As(err, &ve):
		return CategoryValidation
	case errors.As(err, &ae):
		return CategoryAlignment
	case errors.As(err, &me):
		return CategoryModelGeneration
	case errors.As(err, &te):
		return CategoryTransfer
	default:
		return CategoryInternal
	}
}
