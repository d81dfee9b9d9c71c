package utils

import (
	"fmt"
)

// MakeError wraps err with a formatted detail message. The result still
// matches err with errors.Is.
func MakeError(err error, detailsBody string, args ...any) error {
	return fmt.Errorf("%w: "+detailsBody, append([]any{err}, args...)...)
}
