package models

import "time"

// TransferStatus is the lifecycle state of a transfer run.
type TransferStatus string

const (
	TransferStatusIdle      TransferStatus = "idle"
	TransferStatusRunning   TransferStatus = "running"
	TransferStatusCompleted TransferStatus = "completed"
	TransferStatusFailed    TransferStatus = "failed"
	TransferStatusCancelled TransferStatus = "cancelled"
)

const (
	// MinParallelism and MaxParallelism bound the transfer worker pool.
	MinParallelism = 1
	MaxParallelism = 10

	// DefaultParallelism is used when the caller does not set one.
	DefaultParallelism = 3

	// DefaultDeduplicator and DefaultValidator are the plugin names
	// resolved when the options leave them empty.
	DefaultDeduplicator = "standard"
	DefaultValidator    = "integrity"
)

// TransferFilters narrows the source record set before processing.
// Empty slices mean "no filtering" for that dimension.
type TransferFilters struct {
	IDs         []string `json:"ids,omitempty"`
	Names       []string `json:"names,omitempty"`
	IncludeTags []string `json:"include_tags,omitempty"`
	ExcludeTags []string `json:"exclude_tags,omitempty"`
}

// TransferOptions configures one transfer run. Immutable after
// WithDefaults has been applied.
type TransferOptions struct {
	Filters         TransferFilters `json:"filters"`
	DryRun          bool            `json:"dry_run"`
	Parallelism     int             `json:"parallelism" validate:"min=1,max=10"`
	Deduplicator    string          `json:"deduplicator"`
	Validators      []string        `json:"validators" validate:"dive,min=1"`
	Reporters       []string        `json:"reporters" validate:"dive,min=1"`
	SkipCredentials bool            `json:"skip_credentials"`

	// PluginOptions carries per-plugin construction options, keyed by
	// plugin name.
	PluginOptions map[string]map[string]any `json:"plugin_options,omitempty"`
}

// WithDefaults returns a copy with schema defaults applied: parallelism
// clamped to [1,10] (default 3), the standard deduplicator and the
// integrity validator when none are named.
func (o TransferOptions) WithDefaults() TransferOptions {
	if o.Parallelism == 0 {
		o.Parallelism = DefaultParallelism
	}
	if o.Parallelism < MinParallelism {
		o.Parallelism = MinParallelism
	}
	if o.Parallelism > MaxParallelism {
		o.Parallelism = MaxParallelism
	}
	if o.Deduplicator == "" {
		o.Deduplicator = DefaultDeduplicator
	}
	if len(o.Validators) == 0 {
		o.Validators = []string{DefaultValidator}
	}
	return o
}

// TransferProgress is the externally readable progress of a run. Mutated
// only by the transfer manager.
type TransferProgress struct {
	Status    TransferStatus `json:"status"`
	Processed int            `json:"processed"`
	Total     int            `json:"total"`
}

// TransferIssue records why a single workflow was skipped or failed.
type TransferIssue struct {
	WorkflowID string `json:"workflow_id"`
	Name       string `json:"name"`
	Reason     string `json:"reason"`
}

// TransferResult aggregates the outcome of one transfer run.
type TransferResult struct {
	RunID       string          `json:"run_id"`
	Status      TransferStatus  `json:"status"`
	Transferred int             `json:"transferred"`
	Skipped     int             `json:"skipped"`
	Failed      int             `json:"failed"`
	DryRun      bool            `json:"dry_run"`
	Issues      []TransferIssue `json:"issues,omitempty"`
	Reports     []string        `json:"reports,omitempty"`
	StartedAt   time.Time       `json:"started_at"`
	Duration    time.Duration   `json:"duration"`
}
