package errs

import (
	"fmt"
	"strings"
)

// sanitize renders a value for an error message on a single line.
func sanitize(value any) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(fmt.Sprintf("%v", value))
}
