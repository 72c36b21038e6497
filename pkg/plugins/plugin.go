// Package plugins defines the pluggable pipeline stages of a transfer run
// and the registry they are resolved from. Built-in plugins cover the
// standard cases; external ones are described by JSON descriptors.
package plugins

import (
	"github.com/Ramsey-B/fern/pkg/models"
)

// Deduplicator decides whether a source workflow duplicates a workflow that
// already exists on the target.
type Deduplicator interface {
	// Name returns the registered plugin name.
	Name() string

	// IsDuplicate reports whether candidate duplicates existing.
	IsDuplicate(candidate, existing models.Workflow) bool

	// Reason describes the most recent positive match. Undefined until
	// IsDuplicate has returned true at least once.
	Reason() string
}

// Validator inspects a single workflow before transfer. Issues with
// SeverityError fail the record; warnings are recorded and the record
// proceeds.
type Validator interface {
	Name() string
	Validate(wf models.Workflow) []models.ValidationIssue
}

// Reporter renders a finished transfer run into an artifact and returns the
// artifact's path.
type Reporter interface {
	Name() string
	Write(result *models.TransferResult) (string, error)
}

// Factories construct configured plugin instances from per-run options.
// Unknown option keys are ignored; invalid values fail construction.
type (
	DeduplicatorFactory func(options map[string]any) (Deduplicator, error)
	ValidatorFactory    func(options map[string]any) (Validator, error)
	ReporterFactory     func(options map[string]any) (Reporter, error)
)
