package ring

import (
	"errors"
	"fmt"
)

// ErrAllocation is matched by every error New returns.
var ErrAllocation = errors.New("ring: allocation failed")

// AllocationError describes why a ring could not be built. No partial ring is
// ever returned alongside it.
type AllocationError struct {
	Size   int
	Reason string
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("ring: cannot allocate %d slots: %s", e.Size, e.Reason)
}

// Is lets errors.Is(err, ErrAllocation) match.
func (e *AllocationError) Is(target error) bool {
	return target == ErrAllocation
}
