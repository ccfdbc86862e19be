package scan

import (
	"testing"

	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
)

func TestValidateStateTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.ScanStatus
		to      domain.ScanStatus
		wantErr bool
	}{
		{"pending to running", domain.ScanStatusPending, domain.ScanStatusRunning, false},
		{"pending to cancelled", domain.ScanStatusPending, domain.ScanStatusCancelled, false},
		{"pending to failed", domain.ScanStatusPending, domain.ScanStatusFailed, false},
		{"pending to completed", domain.ScanStatusPending, domain.ScanStatusCompleted, true},

		{"running to completed", domain.ScanStatusRunning, domain.ScanStatusCompleted, false},
		{"running to cancelled", domain.ScanStatusRunning, domain.ScanStatusCancelled, false},
		{"running to failed", domain.ScanStatusRunning, domain.ScanStatusFailed, false},
		{"running to pending", domain.ScanStatusRunning, domain.ScanStatusPending, true},

		{"completed to running", domain.ScanStatusCompleted, domain.ScanStatusRunning, true},
		{"cancelled to running", domain.ScanStatusCancelled, domain.ScanStatusRunning, true},
		{"failed to pending", domain.ScanStatusFailed, domain.ScanStatusPending, true},

		{"unknown source", domain.ScanStatus("paused"), domain.ScanStatusRunning, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStateTransition(tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStateTransition(%s, %s) error = %v, wantErr %v", tt.from, tt.to, err, tt.wantErr)
			}
		})
	}
}

func TestCanStop(t *testing.T) {
	if CanStop(nil) {
		t.Error("nil scan cannot be stopped")
	}
	if !CanStop(&domain.Scan{Status: domain.ScanStatusPending}) {
		t.Error("pending scan can be stopped")
	}
	if !CanStop(&domain.Scan{Status: domain.ScanStatusRunning}) {
		t.Error("running scan can be stopped")
	}
	for _, status := range []domain.ScanStatus{
		domain.ScanStatusCompleted, domain.ScanStatusCancelled, domain.ScanStatusFailed, "unknown",
	} {
		if CanStop(&domain.Scan{Status: status}) {
			t.Errorf("%s scan cannot be stopped", status)
		}
	}
}
