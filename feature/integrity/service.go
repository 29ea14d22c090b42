package integrity

import (
	"context"
	"fmt"

	"content-sweeper/core/corpus"
	"content-sweeper/core/storage"
	"content-sweeper/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options wires what the preflight checks inspect.
type Options struct {
	Client storage.Client
	Bucket string
	Prefix string
	// ContentPath is opened on every content check so that a root created
	// after startup is picked up.
	ContentPath    string
	ContentWorkers int
	OutputDir      string
	ManifestPath   string
	// DB is the optional audit ledger.
	DB     *gorm.DB
	Logger *zap.Logger
}

// Service handles integrity checks.
type Service struct {
	opts   Options
	logger *zap.Logger
}

// NewService creates a new integrity service.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{opts: opts, logger: logger}
}

// CheckBucket verifies the bucket is reachable and listable.
func (s *Service) CheckBucket(ctx context.Context) (*checks.BucketReport, error) {
	return checks.CheckBucket(ctx, s.opts.Client, s.opts.Bucket, s.opts.Prefix)
}

// CheckContent verifies the content root exists and counts its files.
func (s *Service) CheckContent(ctx context.Context) (*checks.ContentReport, error) {
	c, err := corpus.Open(s.opts.ContentPath, s.opts.ContentWorkers, s.logger)
	if err != nil {
		return nil, err
	}
	return checks.CheckContent(ctx, c)
}

// CheckOutput verifies the output directory is writable.
func (s *Service) CheckOutput() (*checks.OutputReport, error) {
	return checks.CheckOutput(s.opts.OutputDir, s.opts.ManifestPath)
}

// HasLedger reports whether an audit ledger is configured.
func (s *Service) HasLedger() bool {
	return s.opts.DB != nil
}

// CheckLedger verifies the audit ledger schema.
func (s *Service) CheckLedger() (*checks.LedgerReport, error) {
	return checks.CheckLedger(s.opts.DB)
}

// Result is one named check outcome in a Report.
type Result struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Detail any    `json:"detail,omitempty"`
}

// Report is the outcome of RunAll.
type Report struct {
	Healthy bool     `json:"healthy"`
	Checks  []Result `json:"checks"`
}

// RunAll runs every check in order. A failing check does not stop the others.
func (s *Service) RunAll(ctx context.Context) *Report {
	report := &Report{Healthy: true}

	add := func(name string, status func() string, detail any, err error) {
		r := Result{Name: name}
		if err != nil {
			r.Status = checks.StatusError
			r.Error = err.Error()
		} else {
			r.Status = status()
			r.Detail = detail
		}
		if r.Status == checks.StatusError {
			report.Healthy = false
		}
		report.Checks = append(report.Checks, r)

		if r.Status != checks.StatusOK {
			s.logger.Warn("Integrity check did not pass",
				zap.String("check", name),
				zap.String("status", r.Status),
				zap.String("error", r.Error),
			)
		}
	}

	bucket, err := s.CheckBucket(ctx)
	add("bucket", func() string { return bucket.Status }, bucket, err)

	content, err := s.CheckContent(ctx)
	add("content", func() string { return content.Status }, content, err)

	output, err := s.CheckOutput()
	add("output", func() string { return output.Status }, output, err)

	if s.HasLedger() {
		ledger, err := s.CheckLedger()
		add("ledger", func() string {
			if ledger.Matched {
				return checks.StatusOK
			}
			return checks.StatusError
		}, ledger, err)
	}

	return report
}

// Failed returns the names of the checks that did not pass.
func (r *Report) Failed() []string {
	var names []string
	for _, c := range r.Checks {
		if c.Status == checks.StatusError {
			names = append(names, c.Name)
		}
	}
	return names
}

// String summarizes the failures of r.
func (r *Report) String() string {
	if r.Healthy {
		return "all checks passed"
	}
	return fmt.Sprintf("failed checks: %v", r.Failed())
}
