package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrCardNotFound    = errors.New("card not found in catalog")
	ErrDeckNotFound    = errors.New("deck not found")
	ErrSpreadNotFound  = errors.New("spread not found")
	ErrReadingNotFound = errors.New("reading not found")
	ErrInvalidN        = errors.New("card count does not fit the spread layout")
	ErrNExceedsDeck    = errors.New("spread requires more cards than the deck holds")
	ErrUpstreamLLM     = errors.New("upstream LLM failure")
	ErrInvalidLLMJSON  = errors.New("LLM returned invalid JSON after retry")
)

// ValidationError reports which field of a reading failed validation.
// It matches ErrInvalidInput under errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// ConfigError reports which engine configuration parameter is out of range.
// It matches ErrInvalidConfig under errors.Is.
type ConfigError struct {
	Param  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Param, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }
