package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const issueSeparator = "; "

type auditRunRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRunRepository wires a repository backed by pgxpool.
func NewAuditRunRepository(pool *pgxpool.Pool) AuditRunRepository {
	return &auditRunRepository{pool: pool}
}

func (r *auditRunRepository) CreateRun(ctx context.Context, run AuditRun) error {
	if r.pool == nil {
		return fmt.Errorf("audit run repository not initialized")
	}

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO audit_runs (id, file_name, total_records, pass_count, critical, high, medium)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		run.ID,
		run.FileName,
		run.TotalRecords,
		run.PassCount,
		run.Critical,
		run.High,
		run.Medium,
	)
	if err != nil {
		return fmt.Errorf("failed to record audit run: %w", err)
	}

	return nil
}

func (r *auditRunRepository) RecordIssues(ctx context.Context, issues []RowIssue) error {
	if r.pool == nil {
		return fmt.Errorf("audit run repository not initialized")
	}

	for _, issue := range issues {
		_, err := r.pool.Exec(
			ctx,
			`INSERT INTO audit_row_issues (id, run_id, row_number, field, issues)
			 VALUES ($1, $2, $3, $4, $5)`,
			issue.ID,
			issue.RunID,
			issue.RowNumber,
			issue.Field,
			strings.Join(issue.Issues, issueSeparator),
		)
		if err != nil {
			return fmt.Errorf("failed to record row issue: %w", err)
		}
	}

	return nil
}

func (r *auditRunRepository) ListRuns(ctx context.Context, limit, offset int) ([]AuditRun, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("audit run repository not initialized")
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, file_name, total_records, pass_count, critical, high, medium, created_at
		 FROM audit_runs
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit runs: %w", err)
	}
	defer rows.Close()

	var runs []AuditRun
	for rows.Next() {
		var run AuditRun
		if err := rows.Scan(
			&run.ID,
			&run.FileName,
			&run.TotalRecords,
			&run.PassCount,
			&run.Critical,
			&run.High,
			&run.Medium,
			&run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit runs: %w", err)
	}

	return runs, nil
}

func (r *auditRunRepository) ListIssues(ctx context.Context, runID uuid.UUID, limit, offset int) ([]RowIssue, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("audit run repository not initialized")
	}

	if limit <= 0 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, run_id, row_number, field, issues, created_at
		 FROM audit_row_issues
		 WHERE run_id = $1
		 ORDER BY row_number ASC
		 LIMIT $2 OFFSET $3`,
		runID,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list row issues: %w", err)
	}
	defer rows.Close()

	var issues []RowIssue
	for rows.Next() {
		var issue RowIssue
		var joined string
		if err := rows.Scan(
			&issue.ID,
			&issue.RunID,
			&issue.RowNumber,
			&issue.Field,
			&joined,
			&issue.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row issue: %w", err)
		}
		if joined != "" {
			issue.Issues = strings.Split(joined, issueSeparator)
		}
		issues = append(issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate row issues: %w", err)
	}

	return issues, nil
}
