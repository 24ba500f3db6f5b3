package service

import (
	"fmt"

	"appiumhub/domain"
)

// ValidatePortRange checks that r yields at least one even primary port whose backend
// port (primary + 1) is still a valid TCP port. An odd From or Step would let a primary
// land on the backend port of its neighbour.
func ValidatePortRange(r domain.PortRange) error {
	if r.Step < 2 || r.Step%2 != 0 {
		return fmt.Errorf("port range step must be a positive even number, got %d", r.Step)
	}
	if r.From <= 0 || r.From%2 != 0 {
		return fmt.Errorf("port range must start at a positive even port, got %d", r.From)
	}
	if r.From >= r.To {
		return fmt.Errorf("invalid port range [%d, %d)", r.From, r.To)
	}
	// primaries stay below To, so their backend ports stay at or below To
	if r.To > 65535 {
		return fmt.Errorf("port range [%d, %d) exceeds the TCP port space", r.From, r.To)
	}
	return nil
}

// allocatePort returns the lowest candidate in r that is not a primary port of any
// allocation, or 0 when the range is exhausted.
func allocatePort(r domain.PortRange, allocations map[domain.UDID]domain.ServerAllocation) int {
	used := make(map[int]bool, len(allocations))
	for _, a := range allocations {
		used[a.PrimaryPort] = true
	}

	for p := r.From; p < r.To; p += r.Step {
		if !used[p] {
			return p
		}
	}
	return 0
}
