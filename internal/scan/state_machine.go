package scan

import (
	"fmt"

	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
)

// ValidateStateTransition checks if a scan state transition is valid.
// Returns an error if the transition is not allowed.
func ValidateStateTransition(from, to domain.ScanStatus) error {
	validTransitions := map[domain.ScanStatus][]domain.ScanStatus{
		domain.ScanStatusPending: {
			domain.ScanStatusRunning,   // Start flips the new row immediately
			domain.ScanStatusCancelled, // Force stop
			domain.ScanStatusFailed,    // Stale cleanup or start failure
		},
		domain.ScanStatusRunning: {
			domain.ScanStatusCompleted, // Queue drained
			domain.ScanStatusCancelled, // Stop or force stop
			domain.ScanStatusFailed,    // Stale cleanup or discovery failure
		},
		// Terminal states; a new scan row is created instead.
		domain.ScanStatusCompleted: {},
		domain.ScanStatusCancelled: {},
		domain.ScanStatusFailed:    {},
	}

	allowed, exists := validTransitions[from]
	if !exists {
		return fmt.Errorf("unknown source state: %s", from)
	}

	for _, state := range allowed {
		if state == to {
			return nil
		}
	}

	return fmt.Errorf("invalid state transition from %s to %s", from, to)
}

// CanStop reports whether s can be cancelled by a stop request.
func CanStop(s *domain.Scan) bool {
	return s != nil && ValidateStateTransition(s.Status, domain.ScanStatusCancelled) == nil
}
