// Package validation checks analysis requests and configuration values.
package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxNodeIDLength = 256
	MaxTopRankings  = 100

	nodeIDPattern = regexp.MustCompile(`^\S+$`)
)

func init() {
	validate = validator.New()
}

// AnalyzeRequest carries the tunable knobs of an analysis request.
type AnalyzeRequest struct {
	Top              int     `json:"top" validate:"omitempty,min=1,max=100"`
	Recommendations  int     `json:"recommendations" validate:"omitempty,min=1,max=100"`
	AnomalyLimit     int     `json:"anomaly_limit" validate:"omitempty,min=1,max=1000"`
	AnomalyThreshold float64 `json:"anomaly_threshold" validate:"omitempty,gt=0,lte=1"`
	SampleSize       int     `json:"sample_size" validate:"omitempty,min=1"`
	Layout           string  `json:"layout" validate:"omitempty,oneof=force circular"`
}

// ValidateAnalyzeRequest validates the request knobs for an analysis run
func ValidateAnalyzeRequest(req *AnalyzeRequest) error {
	if req == nil {
		return errors.New("analyze request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateNodeID validates a user identifier from input data
func ValidateNodeID(id string) error {
	if id == "" {
		return errors.New("node id cannot be empty")
	}
	if len(id) > MaxNodeIDLength {
		return fmt.Errorf("node id '%s' exceeds maximum length of %d characters", id[:32], MaxNodeIDLength)
	}
	if !nodeIDPattern.MatchString(id) {
		return fmt.Errorf("node id '%s' contains whitespace", id)
	}
	return nil
}

// Struct validates any tagged struct with the shared validator instance.
// Config types lean on this so their tags live next to the fields.
func Struct(s any) error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "lte":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
