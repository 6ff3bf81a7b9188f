// Package repository persists assessment run history.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuditRun is the stored summary of one assessment run.
type AuditRun struct {
	ID           uuid.UUID `json:"id"`
	FileName     string    `json:"file_name"`
	TotalRecords int       `json:"total_records"`
	PassCount    int       `json:"pass_count"`
	Critical     int       `json:"critical"`
	High         int       `json:"high"`
	Medium       int       `json:"medium"`
	CreatedAt    time.Time `json:"created_at"`
}

// RowIssue is one stored (row, field) failure belonging to a run.
type RowIssue struct {
	ID        uuid.UUID `json:"id"`
	RunID     uuid.UUID `json:"run_id"`
	RowNumber int       `json:"row_number"`
	Field     string    `json:"field"`
	Issues    []string  `json:"issues"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditRunRepository stores run summaries and their row issues for
// observability across runs. The validation engine itself never touches it.
type AuditRunRepository interface {
	CreateRun(ctx context.Context, run AuditRun) error
	RecordIssues(ctx context.Context, issues []RowIssue) error
	ListRuns(ctx context.Context, limit, offset int) ([]AuditRun, error)
	ListIssues(ctx context.Context, runID uuid.UUID, limit, offset int) ([]RowIssue, error)
}
