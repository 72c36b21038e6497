package models

import "time"

// ValidationConfig configures internal-ID validation.
type ValidationConfig struct {
	// IDPattern is the regex used to extract internal IDs from workflow
	// names and tags. Empty means the default bracketed pattern.
	IDPattern string `json:"id_pattern,omitempty"`

	// Strict is carried from configuration for forward compatibility.
	// The current enforcement path fails on any duplicate regardless of
	// this flag (see ValidationService).
	Strict bool `json:"strict"`

	// MaxDuplicates is the circuit breaker: once more than this many
	// duplicate records have been seen, the scan aborts early. Zero
	// disables the breaker.
	MaxDuplicates int `json:"max_duplicates"`

	// LogPath is where the validation log artifact is written. Empty
	// disables the file artifact (structured logs are always emitted).
	LogPath string `json:"log_path,omitempty"`
}

// DuplicateGroup is a set of workflows sharing one internal ID.
type DuplicateGroup struct {
	InternalID  string   `json:"internal_id"`
	WorkflowIDs []string `json:"workflow_ids"`
	Count       int      `json:"count"`
}

// EnrichedDuplicateGroup is a DuplicateGroup plus suggested replacement IDs.
// Suggestions cover all but the first occurrence (which keeps its ID), capped
// at three per group.
type EnrichedDuplicateGroup struct {
	DuplicateGroup
	SuggestedIDs []string `json:"suggested_ids,omitempty"`
}

// ValidationResult is the outcome of one validation run.
type ValidationResult struct {
	Valid        bool                     `json:"valid"`
	Groups       []EnrichedDuplicateGroup `json:"groups,omitempty"`
	TotalChecked int                      `json:"total_checked"`
	Truncated    bool                     `json:"truncated,omitempty"`
	CheckedAt    time.Time                `json:"checked_at"`
}
