package audit

import "time"

// ScanRun is one row per completed scan.
type ScanRun struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	RunID             string    `gorm:"size:36;uniqueIndex" json:"runId"`
	Bucket            string    `gorm:"size:255;index" json:"bucket"`
	GeneratedAt       time.Time `json:"generatedAt"`
	TotalContentFiles int       `json:"totalContentFiles"`
	TotalObjects      int       `json:"totalObjects"`
	TotalReferences   int       `json:"totalReferences"`
	Referenced        int       `json:"referenced"`
	Orphaned          int       `json:"orphaned"`
	OrphanedBytes     int64     `json:"orphanedBytes"`
	CreatedAt         time.Time `json:"createdAt"`
}

// DeletionRecord is one row per attempted deletion.
type DeletionRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RunID       string    `gorm:"size:36;index" json:"runId"`
	Bucket      string    `gorm:"size:255" json:"bucket"`
	S3Key       string    `gorm:"column:s3_key;size:1024" json:"s3Key"`
	Deleted     bool      `json:"deleted"`
	Error       string    `gorm:"type:text" json:"error,omitempty"`
	AttemptedAt time.Time `json:"attemptedAt"`
}

// Tables lists the ledger tables and the columns the recorder writes.
var Tables = map[string][]string{
	"scan_runs": {
		"id", "run_id", "bucket", "generated_at", "total_content_files", "total_objects",
		"total_references", "referenced", "orphaned", "orphaned_bytes", "created_at",
	},
	"deletion_records": {
		"id", "run_id", "bucket", "s3_key", "deleted", "error", "attempted_at",
	},
}
