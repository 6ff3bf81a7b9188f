// Package assess orchestrates one full assessment over an uploaded dataset:
// load, validate, profile, classify, assemble, and optionally record the run.
package assess

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tmcf/custaudit/internal/dataset"
	"github.com/tmcf/custaudit/internal/quality"
	"github.com/tmcf/custaudit/internal/repository"
	"github.com/tmcf/custaudit/internal/validation"
)

// Service runs assessments. runs may be nil; the service then keeps no
// history.
type Service struct {
	runs          repository.AuditRunRepository
	logger        *logrus.Logger
	referenceYear int
	now           func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithRunRepository enables run-history persistence.
func WithRunRepository(runs repository.AuditRunRepository) Option {
	return func(s *Service) { s.runs = runs }
}

// WithReferenceYear pins the year used by the unrealistic-age check, making
// assessments reproducible across calendar years.
func WithReferenceYear(year int) Option {
	return func(s *Service) { s.referenceYear = year }
}

// NewService creates an assessment service.
func NewService(logger *logrus.Logger, opts ...Option) *Service {
	s := &Service{
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logrus.New()
	}
	return s
}

// Request describes one assessment input.
type Request struct {
	FileName string
	Data     io.Reader
}

// Assessment is the combined structured payload returned to clients.
type Assessment struct {
	RunID       uuid.UUID         `json:"runId"`
	FileName    string            `json:"fileName"`
	Validation  validation.Result `json:"validation"`
	Quality     *quality.Profile  `json:"quality"`
	GeneratedAt time.Time         `json:"generatedAt"`
}

// Assess loads the payload and runs the full pipeline. Structural input
// defects (*validation.SchemaError) propagate with no partial result;
// value-level defects are part of the result, never errors.
func (s *Service) Assess(ctx context.Context, req Request) (Assessment, error) {
	if req.Data == nil {
		return Assessment{}, errors.New("data reader is required")
	}

	payload, err := io.ReadAll(req.Data)
	if err != nil {
		return Assessment{}, fmt.Errorf("failed to read upload: %w", err)
	}

	ds, err := dataset.Load(req.FileName, payload)
	if err != nil {
		return Assessment{}, err
	}

	run, err := validation.Validate(ds)
	if err != nil {
		return Assessment{}, err
	}

	profile := quality.Analyze(ds, s.referenceYear)

	tally := validation.Classify(validation.ClassifierInput{
		Failures:        run.Failures,
		MissingCounts:   profile.MissingCounts(),
		UnrealisticAges: profile.UnrealisticAgeCount(),
	})

	assessment := Assessment{
		RunID:       uuid.New(),
		FileName:    req.FileName,
		Validation:  validation.Assemble(run, tally),
		Quality:     profile,
		GeneratedAt: s.now().UTC(),
	}

	s.recordRun(ctx, assessment, run)

	return assessment, nil
}

// recordRun persists the run summary and row issues when a repository is
// configured. Persistence failures are logged, never surfaced: history is an
// observability concern, not part of the assessment contract.
func (s *Service) recordRun(ctx context.Context, assessment Assessment, run *validation.Run) {
	if s.runs == nil {
		return
	}

	summary := repository.AuditRun{
		ID:           assessment.RunID,
		FileName:     assessment.FileName,
		TotalRecords: assessment.Validation.TotalRecords,
		PassCount:    assessment.Validation.PassCount,
		Critical:     assessment.Validation.Severity.Critical,
		High:         assessment.Validation.Severity.High,
		Medium:       assessment.Validation.Severity.Medium,
	}
	if err := s.runs.CreateRun(ctx, summary); err != nil {
		s.logger.WithError(err).WithField("runId", assessment.RunID).Warn("failed to persist audit run")
		return
	}

	issues := make([]repository.RowIssue, 0, len(run.Failures))
	for _, failure := range run.Failures {
		issues = append(issues, repository.RowIssue{
			ID:        uuid.New(),
			RunID:     assessment.RunID,
			RowNumber: failure.Row,
			Field:     failure.Field,
			Issues:    failure.IssueTexts(),
		})
	}
	if err := s.runs.RecordIssues(ctx, issues); err != nil {
		s.logger.WithError(err).WithField("runId", assessment.RunID).Warn("failed to persist row issues")
	}
}
