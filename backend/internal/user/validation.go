package user

import (
	"strings"

	apperrors "lovemining/backend/pkg/errors"
)

const (
	minAge = 18
	maxAge = 100

	minPasswordLength = 4
)

var validStatuses = map[string]bool{
	"available":      true,
	"single":         true,
	"seeing someone": true,
	"married":        true,
	"unknown":        true,
}

var validOrientations = map[string]bool{
	"straight": true,
	"gay":      true,
	"bisexual": true,
}

func validateEmail(email string) error {
	if email == "" || !strings.Contains(email, "@") {
		return apperrors.NewValidation("email is missing or invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperrors.NewValidationf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

func validateAge(age int) error {
	if age < minAge || age > maxAge {
		return apperrors.NewValidationf("age must be between %d and %d", minAge, maxAge)
	}
	return nil
}

func validateSex(sex string) error {
	if sex != "m" && sex != "f" {
		return apperrors.NewValidation("sex must be 'm' or 'f'")
	}
	return nil
}

func validateOrientation(orientation string) error {
	if !validOrientations[orientation] {
		return apperrors.NewValidation("orientation must be 'straight', 'gay', or 'bisexual'")
	}
	return nil
}

func validateStatus(status string) error {
	if !validStatuses[status] {
		return apperrors.NewValidation("status must be 'available', 'single', 'seeing someone', 'married' or 'unknown'")
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
