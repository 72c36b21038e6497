package models

// PluginType classifies a plugin by the pipeline stage it serves.
type PluginType string

const (
	PluginTypeDeduplicator PluginType = "deduplicator"
	PluginTypeValidator    PluginType = "validator"
	PluginTypeReporter     PluginType = "reporter"
)

// PluginDescriptor describes a registered plugin. Names are unique per type.
type PluginDescriptor struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Type        PluginType     `json:"type"`
	Description string         `json:"description,omitempty"`
	Enabled     bool           `json:"enabled"`
	Options     map[string]any `json:"options,omitempty"`
}

// ValidationSeverity grades a validator finding. Only "error" fails a record.
type ValidationSeverity string

const (
	SeverityError   ValidationSeverity = "error"
	SeverityWarning ValidationSeverity = "warning"
)

// ValidationIssue is a single finding from a validator plugin.
type ValidationIssue struct {
	Severity ValidationSeverity `json:"severity"`
	Field    string             `json:"field,omitempty"`
	Message  string             `json:"message"`
}
