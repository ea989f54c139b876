package resolver

import (
	"fmt"
	"strings"
)

// InvalidOverrideError is returned when an explicit override does not point at
// a usable installation. An override is user intent, so it is never silently
// skipped in favour of the remaining strategies.
type InvalidOverrideError struct {
	Path   string
	Reason string
}

func (e *InvalidOverrideError) Error() string {
	return fmt.Sprintf("formatter override %s is not usable: %s", e.Path, e.Reason)
}

// ResolutionError is returned when every strategy failed. It carries the full
// attempt list so the failure can be reported location by location.
type ResolutionError struct {
	Attempts []Attempt
}

func (e *ResolutionError) Error() string {
	locations := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		locations = append(locations, a.Location)
	}
	return fmt.Sprintf("%s not found (checked %s)", ExecutableName, strings.Join(locations, ", "))
}
