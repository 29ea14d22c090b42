package audit

import (
	"context"
	"fmt"
	"time"

	"content-sweeper/core/cleanup"
	"content-sweeper/core/manifest"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Recorder writes scan and deletion history to the ledger database.
// A nil *Recorder records nothing.
type Recorder struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewRecorder creates a Recorder. It returns nil when db is nil.
func NewRecorder(db *gorm.DB, logger *zap.Logger) *Recorder {
	if db == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{db: db, logger: logger, now: time.Now}
}

// Migrate creates or updates the ledger tables.
func (r *Recorder) Migrate() error {
	if r == nil {
		return nil
	}
	if err := r.db.AutoMigrate(&ScanRun{}, &DeletionRecord{}); err != nil {
		return fmt.Errorf("failed to migrate audit tables: %w", err)
	}
	return nil
}

// RecordScan stores the summary of a freshly written manifest.
func (r *Recorder) RecordScan(ctx context.Context, m *manifest.Manifest) error {
	if r == nil {
		return nil
	}

	s := m.Metadata.Summary
	run := ScanRun{
		RunID:             m.Metadata.RunID,
		Bucket:            m.Metadata.Bucket,
		GeneratedAt:       m.Metadata.Generated,
		TotalContentFiles: s.TotalContentFiles,
		TotalObjects:      s.TotalS3Files,
		TotalReferences:   s.TotalContentReferences,
		Referenced:        s.ReferencedInContent,
		Orphaned:          s.OrphanedFiles,
		OrphanedBytes:     s.OrphanedBytes,
	}

	if err := r.db.WithContext(ctx).Create(&run).Error; err != nil {
		return fmt.Errorf("failed to record scan run: %w", err)
	}

	r.logger.Debug("Recorded scan run", zap.String("run_id", run.RunID))
	return nil
}

// RecordDeletions stores one row per outcome of a destroy run, in one transaction.
func (r *Recorder) RecordDeletions(ctx context.Context, m *manifest.Manifest, report *cleanup.Report) error {
	if r == nil || report == nil || len(report.Outcomes) == 0 {
		return nil
	}

	attemptedAt := r.now().UTC()
	records := make([]DeletionRecord, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		rec := DeletionRecord{
			RunID:       m.Metadata.RunID,
			Bucket:      m.Metadata.Bucket,
			S3Key:       o.Entry.S3Key,
			Deleted:     o.Deleted(),
			AttemptedAt: attemptedAt,
		}
		if o.Err != nil {
			rec.Error = o.Err.Error()
		}
		records = append(records, rec)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&records, 500).Error
	})
	if err != nil {
		return fmt.Errorf("failed to record deletions: %w", err)
	}

	r.logger.Debug("Recorded deletions", zap.Int("count", len(records)))
	return nil
}

// RecentScans returns up to limit scan runs, newest first.
func (r *Recorder) RecentScans(ctx context.Context, limit int) ([]ScanRun, error) {
	if r == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	var runs []ScanRun
	if err := r.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to load scan runs: %w", err)
	}
	return runs, nil
}
