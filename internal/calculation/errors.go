package calculation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks structurally invalid calculation input.
	ErrInvalidInput = errors.New("invalid calculation input")
	// ErrMissingSelfEmployedIncome is returned when a self-employment path has no business data.
	ErrMissingSelfEmployedIncome = fmt.Errorf("%w: self-employed income is required", ErrInvalidInput)
	// ErrUnsupportedEmploymentType is returned for employment types no engine handles.
	ErrUnsupportedEmploymentType = errors.New("unsupported employment type")
)
