package engine

import "fmt"

// ValidationError rejects malformed input before it reaches the repository
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
