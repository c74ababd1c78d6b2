package validate

import "fmt"

// ValidatePortRange validates that a port number is within the valid range (1-65535).
func ValidatePortRange(port int) error {
	return ValidateField(port, "required,min=1,max=65535")
}

// ValidateRequiredString validates that a string field is not empty.
func ValidateRequiredString(value, fieldName string) error {
	if err := ValidateField(value, "required"); err != nil {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidatePositiveSeconds validates that a timeout given in seconds is positive.
func ValidatePositiveSeconds(seconds int, name string) error {
	if err := ValidateField(seconds, "gt=0"); err != nil {
		return fmt.Errorf("%s must be positive", name)
	}
	return nil
}

// ValidateSecondaryID validates that id is a usable secondary client id.
// Secondary ids start at 1; 0 is reserved for the primary.
func ValidateSecondaryID(id, maxID int) error {
	if err := ValidateField(id, fmt.Sprintf("min=1,max=%d", maxID)); err != nil {
		return fmt.Errorf("secondary id %d out of range 1-%d", id, maxID)
	}
	return nil
}
