package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/models"
)

func TestNewFuzzyDeduplicator_Options(t *testing.T) {
	tests := []struct {
		name    string
		options map[string]any
		wantErr bool
	}{
		{name: "defaults", options: nil},
		{name: "valid threshold", options: map[string]any{"threshold": 0.9}},
		{name: "jaro winkler", options: map[string]any{"algorithm": "jaro_winkler"}},
		{name: "threshold too high", options: map[string]any{"threshold": 1.5}, wantErr: true},
		{name: "threshold zero", options: map[string]any{"threshold": 0.0}, wantErr: true},
		{name: "threshold wrong type", options: map[string]any{"threshold": "high"}, wantErr: true},
		{name: "unknown algorithm", options: map[string]any{"algorithm": "soundex"}, wantErr: true},
		{name: "case_sensitive wrong type", options: map[string]any{"case_sensitive": "yes"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFuzzyDeduplicator(tt.options)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFuzzyDeduplicator_IsDuplicate(t *testing.T) {
	d, err := NewFuzzyDeduplicator(nil)
	require.NoError(t, err)
	assert.Equal(t, "fuzzy", d.Name())

	// Case differences are ignored by default.
	assert.True(t, d.IsDuplicate(
		models.Workflow{Name: "INVOICE SYNC"},
		models.Workflow{ID: "t-1", Name: "invoice sync"},
	))

	// One edit in a long name stays above the default threshold.
	assert.True(t, d.IsDuplicate(
		models.Workflow{Name: "invoice syncing"},
		models.Workflow{ID: "t-1", Name: "invoice sincing"},
	))

	// Unrelated names do not match.
	assert.False(t, d.IsDuplicate(
		models.Workflow{Name: "invoice sync"},
		models.Workflow{Name: "payroll export"},
	))
}

func TestFuzzyDeduplicator_CaseSensitive(t *testing.T) {
	d, err := NewFuzzyDeduplicator(map[string]any{"threshold": 0.99, "case_sensitive": true})
	require.NoError(t, err)

	assert.False(t, d.IsDuplicate(
		models.Workflow{Name: "INVOICE SYNC"},
		models.Workflow{Name: "invoice sync"},
	))
}

func TestFuzzyDeduplicator_Reason(t *testing.T) {
	d, err := NewFuzzyDeduplicator(nil)
	require.NoError(t, err)

	ok := d.IsDuplicate(
		models.Workflow{Name: "invoice sync"},
		models.Workflow{ID: "t-9", Name: "invoice sync"},
	)
	require.True(t, ok)
	assert.Contains(t, d.Reason(), "100%")
	assert.Contains(t, d.Reason(), "t-9")
}

func TestFuzzyDeduplicator_ReasonNamesBestMatch(t *testing.T) {
	d, err := NewFuzzyDeduplicator(nil)
	require.NoError(t, err)

	candidate := models.Workflow{ID: "wf-1", Name: "invoice sync"}

	// Both existing workflows clear the threshold; the reason must name
	// the higher-similarity one regardless of comparison order.
	require.True(t, d.IsDuplicate(candidate, models.Workflow{ID: "t-1", Name: "invoice syncs"}))
	require.True(t, d.IsDuplicate(candidate, models.Workflow{ID: "t-2", Name: "invoice sync"}))

	assert.Contains(t, d.Reason(), "t-2")
	assert.Contains(t, d.Reason(), "100%")

	// A new candidate resets the tracked best match.
	require.False(t, d.IsDuplicate(
		models.Workflow{ID: "wf-2", Name: "payroll export"},
		models.Workflow{ID: "t-1", Name: "invoice syncs"},
	))
	assert.Empty(t, d.Reason())
}
