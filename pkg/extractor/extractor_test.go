package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/models"
)

func TestNew_InvalidPattern(t *testing.T) {
	_, err := New(`\[(`)
	assert.Error(t, err)
}

func TestExtractID(t *testing.T) {
	ex, err := New("")
	require.NoError(t, err)

	tests := []struct {
		name     string
		workflow models.Workflow
		wantID   string
		wantOK   bool
	}{
		{
			name:     "id in name",
			workflow: models.Workflow{Name: "[FIN-INV-042] Invoice sync"},
			wantID:   "FIN-INV-042",
			wantOK:   true,
		},
		{
			name:     "lowercase id is normalized",
			workflow: models.Workflow{Name: "[fin-inv-042] invoice sync"},
			wantID:   "FIN-INV-042",
			wantOK:   true,
		},
		{
			name:     "id mid-name",
			workflow: models.Workflow{Name: "Invoice sync [FIN-INV-042] v2"},
			wantID:   "FIN-INV-042",
			wantOK:   true,
		},
		{
			name:     "id in tags when name has none",
			workflow: models.Workflow{Name: "Invoice sync", Tags: []string{"finance", "[FIN-INV-042]"}},
			wantID:   "FIN-INV-042",
			wantOK:   true,
		},
		{
			name:     "name wins over tags",
			workflow: models.Workflow{Name: "[HR-PAY-001] Payroll", Tags: []string{"[FIN-INV-042]"}},
			wantID:   "HR-PAY-001",
			wantOK:   true,
		},
		{
			name:     "no id anywhere",
			workflow: models.Workflow{Name: "Invoice sync", Tags: []string{"finance"}},
			wantOK:   false,
		},
		{
			name:     "two-digit suffix does not match",
			workflow: models.Workflow{Name: "[FIN-INV-42] Invoice sync"},
			wantOK:   false,
		},
		{
			name:     "empty workflow",
			workflow: models.Workflow{},
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ex.ExtractID(tt.workflow)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestExtractID_CustomPatternWithoutGroup(t *testing.T) {
	ex, err := New(`WF-\d+`)
	require.NoError(t, err)

	id, ok := ex.ExtractID(models.Workflow{Name: "wf-123 daily export"})
	assert.True(t, ok)
	assert.Equal(t, "WF-123", id)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "FIN-INV-042", Normalize("  fin-inv-042 "))
}
