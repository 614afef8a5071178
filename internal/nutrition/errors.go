// internal/nutrition/errors.go
package nutrition

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidProfile is wrapped by every profile rejection.
	ErrInvalidProfile = errors.New("invalid profile")
	// ErrInvalidSlotCount is returned for meal distributions with fewer than one slot.
	ErrInvalidSlotCount = errors.New("invalid slot count")
)

// ProfileError names the profile field that failed validation.
type ProfileError struct {
	Field  string
	Reason string
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("invalid profile: %s: %s", e.Field, e.Reason)
}

func (e *ProfileError) Unwrap() error {
	return ErrInvalidProfile
}

func invalid(field, format string, args ...interface{}) error {
	return &ProfileError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
