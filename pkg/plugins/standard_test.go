package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/models"
)

func TestStandardDeduplicator(t *testing.T) {
	d, err := NewStandardDeduplicator(nil)
	require.NoError(t, err)
	assert.Equal(t, "standard", d.Name())

	tests := []struct {
		name      string
		candidate models.Workflow
		existing  models.Workflow
		want      bool
	}{
		{
			name:      "same name no tags",
			candidate: models.Workflow{Name: "Invoice sync"},
			existing:  models.Workflow{ID: "t-1", Name: "Invoice sync"},
			want:      true,
		},
		{
			name:      "different name",
			candidate: models.Workflow{Name: "Invoice sync"},
			existing:  models.Workflow{Name: "Invoice sync v2"},
			want:      false,
		},
		{
			name:      "tag order does not matter",
			candidate: models.Workflow{Name: "Invoice sync", Tags: []string{"a", "b"}},
			existing:  models.Workflow{Name: "Invoice sync", Tags: []string{"b", "a"}},
			want:      true,
		},
		{
			name:      "different tag sets",
			candidate: models.Workflow{Name: "Invoice sync", Tags: []string{"a", "b"}},
			existing:  models.Workflow{Name: "Invoice sync", Tags: []string{"a", "c"}},
			want:      false,
		},
		{
			name:      "repeated tag makes lists unequal length",
			candidate: models.Workflow{Name: "Invoice sync", Tags: []string{"a", "a"}},
			existing:  models.Workflow{Name: "Invoice sync", Tags: []string{"a"}},
			want:      false,
		},
		{
			name:      "name matches but tag counts differ",
			candidate: models.Workflow{Name: "Invoice sync", Tags: []string{"a"}},
			existing:  models.Workflow{Name: "Invoice sync", Tags: []string{"a", "b"}},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.IsDuplicate(tt.candidate, tt.existing))
		})
	}
}

func TestStandardDeduplicator_Reason(t *testing.T) {
	d, err := NewStandardDeduplicator(nil)
	require.NoError(t, err)

	ok := d.IsDuplicate(
		models.Workflow{Name: "Invoice sync"},
		models.Workflow{ID: "t-42", Name: "Invoice sync"},
	)
	require.True(t, ok)
	assert.Contains(t, d.Reason(), "Invoice sync")
	assert.Contains(t, d.Reason(), "t-42")
}
