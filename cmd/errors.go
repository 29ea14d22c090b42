package cmd

import (
	"errors"
	"fmt"

	"content-sweeper/core/cleanup"
	"content-sweeper/core/config"
	"content-sweeper/core/corpus"
	"content-sweeper/core/manifest"
	"content-sweeper/core/storage"
	"content-sweeper/feature/orphans"
)

// ExitError carries the process exit code of a failed command and an optional
// remediation hint for the operator.
type ExitError struct {
	Code int
	Err  error
	Hint string
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// hints maps known failures to what the operator should do about them.
var hints = []struct {
	target error
	hint   string
}{
	{config.ErrInvalid, "Check your .env file or environment variables."},
	{storage.ErrStoreUnavailable, "Check your AWS credentials, region and bucket configuration."},
	{corpus.ErrInvalidRoot, "Set CONTENT_FOLDER_PATH to the directory holding your content files."},
	{manifest.ErrManifestMissing, "Run 'content-sweeper scan' first to generate the manifest."},
	{manifest.ErrManifestCorrupt, "Re-run 'content-sweeper scan' to regenerate the manifest."},
	{orphans.ErrBucketMismatch, "Re-run 'content-sweeper scan' against the configured bucket."},
	{cleanup.ErrConfirmationDeclined, "Deletion cancelled. No changes were made."},
	{cleanup.ErrPartialDeletion, "Some objects could not be deleted; the manifest is unchanged, so destroy can be re-run."},
}

// exitError wraps err with exit code 1 and the hint of the first known failure it matches.
func exitError(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	e := &ExitError{Code: 1, Err: err}
	for _, h := range hints {
		if errors.Is(err, h.target) {
			e.Hint = h.hint
			break
		}
	}
	return e
}
