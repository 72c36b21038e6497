package plugins

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/models"
)

func errorCount(issues []models.ValidationIssue) int {
	n := 0
	for _, issue := range issues {
		if issue.Severity == models.SeverityError {
			n++
		}
	}
	return n
}

func TestIntegrityValidator(t *testing.T) {
	v, err := NewIntegrityValidator(nil)
	require.NoError(t, err)
	assert.Equal(t, "integrity", v.Name())

	tests := []struct {
		name         string
		workflow     models.Workflow
		wantErrors   int
		wantWarnings int
	}{
		{
			name: "valid workflow",
			workflow: models.Workflow{
				Name:        "Invoice sync",
				Nodes:       json.RawMessage(`[{"name": "Start", "type": "trigger"}, {"name": "Fetch", "type": "http"}]`),
				Connections: json.RawMessage(`{"Start": {"main": [["Fetch"]]}}`),
			},
		},
		{
			name: "missing workflow name",
			workflow: models.Workflow{
				Nodes: json.RawMessage(`[{"name": "Start", "type": "trigger"}]`),
			},
			wantErrors: 1,
		},
		{
			name: "unparsable nodes",
			workflow: models.Workflow{
				Name:  "Invoice sync",
				Nodes: json.RawMessage(`{"not": "an array"}`),
			},
			wantErrors: 1,
		},
		{
			name: "node missing name and type",
			workflow: models.Workflow{
				Name:  "Invoice sync",
				Nodes: json.RawMessage(`[{"name": "", "type": ""}]`),
			},
			wantErrors: 2,
		},
		{
			name: "connection references unknown node",
			workflow: models.Workflow{
				Name:        "Invoice sync",
				Nodes:       json.RawMessage(`[{"name": "Start", "type": "trigger"}]`),
				Connections: json.RawMessage(`{"Ghost": {}}`),
			},
			wantErrors: 1,
		},
		{
			name: "unparsable connections",
			workflow: models.Workflow{
				Name:        "Invoice sync",
				Nodes:       json.RawMessage(`[{"name": "Start", "type": "trigger"}]`),
				Connections: json.RawMessage(`["not", "a", "map"]`),
			},
			wantErrors: 1,
		},
		{
			name:         "no nodes is a warning only",
			workflow:     models.Workflow{Name: "Invoice sync"},
			wantWarnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := v.Validate(tt.workflow)
			assert.Equal(t, tt.wantErrors, errorCount(issues))
			assert.Equal(t, tt.wantWarnings, len(issues)-errorCount(issues))
		})
	}
}
