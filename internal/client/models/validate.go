package models

import "github.com/dmitrijs2005/simkeeper/internal/common"

// ValidationError reports a field that breaks a size constraint.
type ValidationError struct {
	Field   string
	Limit   int
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets errors.Is match common.ErrorValidation.
func (e *ValidationError) Is(target error) bool {
	return target == common.ErrorValidation
}

var (
	errLogTooLong = &ValidationError{
		Field: "log", Limit: MaxLogLength,
		Message: "Log content exceeds maximum length (10,000 characters)",
	}
	errKeyTooLong = &ValidationError{
		Field: "key", Limit: MaxKeyLength,
		Message: "Metadata key exceeds maximum length (100 characters)",
	}
	errValueTooLong = &ValidationError{
		Field: "value", Limit: MaxValueLength,
		Message: "Metadata value exceeds maximum length (10,000 characters)",
	}
	errUpdatedAtNotPositive = &ValidationError{
		Field: "updatedAt", Limit: 1,
		Message: "Updated timestamp must be a positive number",
	}
)

func ValidateCreateSim(in CreateSimInput) error {
	if in.Log != nil && !IsValidLogLength(*in.Log) {
		return errLogTooLong
	}
	return nil
}

func ValidateUpdateSim(in UpdateSimInput) error {
	if in.Log != nil && !IsValidLogLength(*in.Log) {
		return errLogTooLong
	}
	if in.UpdatedAt != nil && *in.UpdatedAt <= 0 {
		return errUpdatedAtNotPositive
	}
	return nil
}

func ValidateCreateMetadata(in CreateMetadataInput) error {
	return validateKeyValue(&in.Key, &in.Value)
}

func ValidateUpdateMetadata(in UpdateMetadataInput) error {
	return validateKeyValue(in.Key, in.Value)
}

func validateKeyValue(key, value *string) error {
	if key != nil && !IsValidKeyLength(*key) {
		return errKeyTooLong
	}
	if value != nil && !IsValidValueLength(*value) {
		return errValueTooLong
	}
	return nil
}
