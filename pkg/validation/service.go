package validation

import (
	"context"
	"os"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/extractor"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Service orchestrates extraction, duplicate detection, suggestion and
// formatting into a single validate-or-report call.
type Service struct {
	logger    ectologger.Logger
	config    models.ValidationConfig
	detector  *Detector
	suggester *SuggestionEngine
	formatter *Formatter
}

// NewService creates a validation service. Fails when the configured ID
// pattern does not compile.
func NewService(cfg models.ValidationConfig, logger ectologger.Logger) (*Service, error) {
	ex, err := extractor.New(cfg.IDPattern)
	if err != nil {
		return nil, err
	}

	return &Service{
		logger:    logger,
		config:    cfg,
		detector:  NewDetector(ex),
		suggester: NewSuggestionEngine(),
		formatter: NewFormatter(),
	}, nil
}

// Validate checks the given workflows and fails with a DuplicateError when
// any internal ID is shared by two or more of them. Any duplicate fails the
// run regardless of the Strict flag; this mirrors the established behavior
// and Strict is logged for visibility.
func (s *Service) Validate(ctx context.Context, workflows []models.Workflow) (*models.ValidationResult, error) {
	ctx, span := tracing.StartSpan(ctx, "validation.Service.Validate")
	defer span.End()

	start := time.Now()
	result := s.check(workflows)

	log := s.logger.WithContext(ctx).WithFields(map[string]any{
		"total_checked":    result.TotalChecked,
		"duplicate_groups": len(result.Groups),
		"strict":           s.config.Strict,
		"duration":         time.Since(start),
	})

	if !result.Valid {
		messages := make([]string, 0, len(result.Groups))
		for _, group := range result.Groups {
			messages = append(messages, s.formatter.FormatGroup(group))
			log.WithFields(map[string]any{"group": s.formatter.FormatCompact(group)}).Warn("Duplicate internal ID")
		}
		log.Error("Validation failed")
		s.writeLogArtifact(ctx, result, messages)
		return result, &DuplicateError{Messages: messages, Groups: result.Groups}
	}

	log.Info("Validation passed")
	s.writeLogArtifact(ctx, result, nil)
	return result, nil
}

// ValidateNonBlocking runs the same computation but returns the report
// instead of failing, for advisory call sites.
func (s *Service) ValidateNonBlocking(ctx context.Context, workflows []models.Workflow) *models.ValidationResult {
	_, span := tracing.StartSpan(ctx, "validation.Service.ValidateNonBlocking")
	defer span.End()

	return s.check(workflows)
}

// GenerateReport returns the formatted text for either outcome.
func (s *Service) GenerateReport(ctx context.Context, workflows []models.Workflow) string {
	_, span := tracing.StartSpan(ctx, "validation.Service.GenerateReport")
	defer span.End()

	result := s.check(workflows)
	if result.Valid {
		return s.formatter.FormatSuccess(result.TotalChecked)
	}
	return s.formatter.FormatAll(result.Groups)
}

func (s *Service) check(workflows []models.Workflow) *models.ValidationResult {
	detected := s.detector.Detect(workflows, s.config.MaxDuplicates)

	result := &models.ValidationResult{
		Valid:        len(detected.Groups) == 0,
		TotalChecked: len(workflows),
		Truncated:    detected.Truncated,
		CheckedAt:    time.Now().UTC(),
	}

	if len(detected.Groups) > 0 {
		result.Groups = s.suggester.Enrich(detected.Groups, detected.InUse)
	}

	return result
}

// writeLogArtifact appends the run summary (and full duplicate detail on
// failure) to the configured log file. Failures to write are logged and
// swallowed; the artifact is best-effort.
func (s *Service) writeLogArtifact(ctx context.Context, result *models.ValidationResult, messages []string) {
	if s.config.LogPath == "" {
		return
	}

	f, err := os.OpenFile(s.config.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("Failed to open validation log")
		return
	}
	defer f.Close()

	lines := s.formatter.FormatLogHeader(result) + "\n"
	for _, msg := range messages {
		lines += msg
	}
	if _, err := f.WriteString(lines); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("Failed to write validation log")
	}
}
