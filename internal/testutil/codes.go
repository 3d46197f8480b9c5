package testutil

import "regexp"

var validationCodePattern = regexp.MustCompile(`^[0-9a-f]{42}$`)

// IsValidationCode reports whether code has the shape of an issued validation code
func IsValidationCode[T ~string](code T) bool {
	return validationCodePattern.MatchString(string(code))
}
