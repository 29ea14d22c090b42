package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Read loads and validates the manifest in dir.
func Read(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrManifestMissing, path)
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrManifestCorrupt, path, err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrManifestCorrupt, path, err)
	}

	return &m, nil
}

// Validate checks the manifest shape: every entry is a non-marker key with the
// orphaned status, ids run 1..n, and the summary agrees with the entries.
func (m *Manifest) Validate() error {
	if m.OrphanedFiles == nil {
		return errors.New("orphanedFiles is missing")
	}
	if m.Metadata.Generated.IsZero() {
		return errors.New("metadata.generated is missing")
	}

	if err := validate.Struct(m); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s failed %q validation", fe.Namespace(), fe.Tag())
		}
		return err
	}

	for i, e := range m.OrphanedFiles {
		if e.ID != i+1 {
			return fmt.Errorf("entry %d has id %d", i+1, e.ID)
		}
	}

	if m.Metadata.Summary.OrphanedFiles != len(m.OrphanedFiles) {
		return fmt.Errorf("summary lists %d orphans but manifest has %d entries",
			m.Metadata.Summary.OrphanedFiles, len(m.OrphanedFiles))
	}

	return nil
}
