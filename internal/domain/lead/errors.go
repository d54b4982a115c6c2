package lead

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrLeadNotFound = errors.New("lead not found")
	ErrNoValidLeads = errors.New("no valid leads found in the CSV file")
)

// MissingColumnsError rejects an import whose header row lacks
// one or more required columns.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}
