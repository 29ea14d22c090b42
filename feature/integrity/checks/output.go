package checks

import (
	"fmt"
	"os"
)

// OutputReport is the result of the output directory check.
type OutputReport struct {
	Dir string `json:"dir"`
	// ManifestPresent is true when a previous scan left a manifest behind.
	ManifestPresent bool   `json:"manifest_present"`
	Status          string `json:"status"`
}

// CheckOutput creates dir if needed and verifies a file can be written into it.
func CheckOutput(dir, manifestPath string) (*OutputReport, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return nil, fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	probe.Close()
	os.Remove(probe.Name())

	_, statErr := os.Stat(manifestPath)

	return &OutputReport{Dir: dir, ManifestPresent: statErr == nil, Status: StatusOK}, nil
}
