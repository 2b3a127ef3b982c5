package aiusage

import (
	"fmt"
	"time"
)

// RateLimitError reports that the local per-(user, operation) hourly quota is
// exhausted. ResetAt is when the oldest counted record ages out of the window.
type RateLimitError struct {
	Operation Operation
	Limit     int
	ResetAt   time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit of %d/hour reached for %s; resets at %s",
		e.Limit, e.Operation, e.ResetAt.UTC().Format(time.RFC3339))
}
