package orphans

import (
	"context"
	"errors"
	"fmt"
	"time"

	"content-sweeper/core/audit"
	"content-sweeper/core/cleanup"
	"content-sweeper/core/corpus"
	"content-sweeper/core/manifest"
	"content-sweeper/core/metrics"
	"content-sweeper/core/reconcile"
	"content-sweeper/core/scanner"
	"content-sweeper/core/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrBucketMismatch is returned when the manifest was produced for another bucket.
var ErrBucketMismatch = errors.New("manifest was generated for a different bucket")

// Options wires the components a Service drives.
type Options struct {
	Bucket  *storage.Bucket
	Corpus  *corpus.Corpus
	Scanner *scanner.Scanner
	// OutputDir holds the report and the manifest.
	OutputDir string
	// CleanupWorkers bounds concurrent deletes during Destroy.
	CleanupWorkers int
	// Recorder is the optional audit ledger.
	Recorder *audit.Recorder
	// Metrics is optional; MetricsTextfile is written after each phase when set.
	Metrics         *metrics.Metrics
	MetricsTextfile string
	Logger          *zap.Logger
}

// Service runs the scan and destroy phases.
type Service struct {
	bucket         *storage.Bucket
	corpus         *corpus.Corpus
	scanner        *scanner.Scanner
	writer         *manifest.Writer
	outputDir      string
	cleanupWorkers int
	recorder       *audit.Recorder
	metrics        *metrics.Metrics
	textfile       string
	logger         *zap.Logger

	now      func() time.Time
	newRunID func() string
}

// NewService creates a new orphans service.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		bucket:         opts.Bucket,
		corpus:         opts.Corpus,
		scanner:        opts.Scanner,
		writer:         manifest.NewWriter(opts.OutputDir, logger),
		outputDir:      opts.OutputDir,
		cleanupWorkers: opts.CleanupWorkers,
		recorder:       opts.Recorder,
		metrics:        opts.Metrics,
		textfile:       opts.MetricsTextfile,
		logger:         logger,
		now:            time.Now,
		newRunID:       uuid.NewString,
	}
}

// ScanResult is the outcome of a scan.
type ScanResult struct {
	Manifest *manifest.Manifest
	// Skipped lists content files that could not be read.
	Skipped      []*corpus.ReadError
	ReportPath   string
	ManifestPath string
}

// HasOrphans reports whether the scan found any orphaned object.
func (r *ScanResult) HasOrphans() bool {
	return r != nil && r.Manifest != nil && len(r.Manifest.OrphanedFiles) > 0
}

// Scan lists the bucket and loads the content corpus concurrently, finds every
// reference and writes the report and manifest. A listing or corpus failure
// aborts the scan before anything is written.
func (s *Service) Scan(ctx context.Context) (*ScanResult, error) {
	start := s.now()

	var (
		objects []storage.Object
		loaded  *corpus.LoadResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Fetching objects from bucket", zap.String("bucket", s.bucket.Name()))
		listed, err := s.bucket.ListAll(gctx)
		if err != nil {
			return err
		}
		objects = listed
		return nil
	})
	g.Go(func() error {
		s.logger.Info("Loading content files", zap.String("root", s.corpus.Root()))
		res, err := s.corpus.Load(gctx)
		if err != nil {
			return fmt.Errorf("failed to load content: %w", err)
		}
		loaded = res
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ids := reconcile.ObjectIDs(objects)
	s.logger.Info("Scanning content for references",
		zap.Int("objects", len(objects)),
		zap.Int("ids", len(ids)),
		zap.Int("files", len(loaded.Files)),
	)

	refs, err := s.scanner.Scan(ctx, loaded.Files, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to scan content: %w", err)
	}

	result := reconcile.Compare(objects, refs, loaded.Discovered)
	m := manifest.New(result, s.now().UTC(), s.newRunID(), s.bucket.Name())

	if err := s.writer.Write(m); err != nil {
		return nil, err
	}

	if err := s.recorder.RecordScan(ctx, m); err != nil {
		s.logger.Warn("Failed to record scan in audit ledger", zap.Error(err))
	}

	finished := s.now()
	s.metrics.ObserveScan(metrics.ScanStats{
		Objects:       result.TotalObjects,
		ContentFiles:  len(loaded.Files),
		SkippedFiles:  len(loaded.Skipped),
		Referenced:    len(result.Referenced),
		Orphaned:      len(result.Orphaned),
		OrphanedBytes: result.OrphanedBytes,
		Duration:      finished.Sub(start),
		FinishedAt:    finished,
	})
	s.writeMetrics()

	s.logger.Info("Scan completed",
		zap.String("run_id", m.Metadata.RunID),
		zap.Int("referenced", len(result.Referenced)),
		zap.Int("orphaned", len(result.Orphaned)),
		zap.Duration("took", finished.Sub(start)),
	)

	return &ScanResult{
		Manifest:     m,
		Skipped:      loaded.Skipped,
		ReportPath:   s.writer.ReportPath(),
		ManifestPath: s.writer.ManifestPath(),
	}, nil
}

// DestroyResult is the outcome of a destroy run.
type DestroyResult struct {
	Manifest *manifest.Manifest
	Report   *cleanup.Report
}

// Destroy deletes the objects listed in the manifest on disk, after confirmation.
// Nothing but the manifest decides which keys are deleted; the bucket is never
// listed again. The result is nil only when the manifest could not be loaded.
func (s *Service) Destroy(ctx context.Context, confirmer cleanup.Confirmer) (*DestroyResult, error) {
	m, err := manifest.Read(s.outputDir)
	if err != nil {
		return nil, err
	}

	if m.Metadata.Bucket != "" && m.Metadata.Bucket != s.bucket.Name() {
		return &DestroyResult{Manifest: m, Report: &cleanup.Report{State: cleanup.StateAborted, Total: len(m.OrphanedFiles)}},
			fmt.Errorf("%w: manifest bucket %q, configured bucket %q", ErrBucketMismatch, m.Metadata.Bucket, s.bucket.Name())
	}

	executor := cleanup.NewExecutor(s.bucket, s.cleanupWorkers, s.logger)
	report, runErr := executor.Run(ctx, m, confirmer)

	if err := s.recorder.RecordDeletions(ctx, m, report); err != nil {
		s.logger.Warn("Failed to record deletions in audit ledger", zap.Error(err))
	}

	s.metrics.ObserveDestroy(string(report.State), report.DeletedCount, report.FailedCount)
	s.writeMetrics()

	return &DestroyResult{Manifest: m, Report: report}, runErr
}

// Manifest returns the manifest currently on disk.
func (s *Service) Manifest() (*manifest.Manifest, error) {
	return manifest.Read(s.outputDir)
}

// RefreshMetrics loads the gauges from the manifest on disk, so that a process
// that did not run the scan can export it.
func (s *Service) RefreshMetrics() error {
	m, err := manifest.Read(s.outputDir)
	if err != nil {
		return err
	}

	sum := m.Metadata.Summary
	s.metrics.ObserveScan(metrics.ScanStats{
		Objects:       sum.TotalS3Files,
		ContentFiles:  sum.TotalContentFiles,
		Referenced:    sum.ReferencedInContent,
		Orphaned:      sum.OrphanedFiles,
		OrphanedBytes: sum.OrphanedBytes,
		FinishedAt:    m.Metadata.Generated,
	})
	return nil
}

// ReportPath returns the path of the narrative report.
func (s *Service) ReportPath() string {
	return s.writer.ReportPath()
}

// History returns the most recent scans from the audit ledger.
func (s *Service) History(ctx context.Context, limit int) ([]audit.ScanRun, error) {
	return s.recorder.RecentScans(ctx, limit)
}

// HasHistory reports whether an audit ledger is configured.
func (s *Service) HasHistory() bool {
	return s.recorder != nil
}

func (s *Service) writeMetrics() {
	if err := s.metrics.WriteTextfile(s.textfile); err != nil {
		s.logger.Warn("Failed to export metrics", zap.Error(err))
	}
}
