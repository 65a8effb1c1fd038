package geometry

import (
	"errors"
	"fmt"
)

// ErrUnknownStrategy is returned when a sampling strategy is not
// implemented for the requested domain and region.
var ErrUnknownStrategy = errors.New("geometry: unknown sampling strategy")

func unknownStrategy(domain, region, strategy string) error {
	return fmt.Errorf("%w: %q for %s %s sampling", ErrUnknownStrategy, strategy, domain, region)
}
