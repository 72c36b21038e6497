package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/models"
)

func inUseSet(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func TestSuggestNextID(t *testing.T) {
	s := NewSuggestionEngine()

	tests := []struct {
		name   string
		id     string
		inUse  map[string]struct{}
		want   string
		wantOK bool
	}{
		{
			name:   "fills gap below current suffix",
			id:     "FIN-INV-005",
			inUse:  inUseSet("FIN-INV-001", "FIN-INV-002", "FIN-INV-005"),
			want:   "FIN-INV-003",
			wantOK: true,
		},
		{
			name:   "increments when no gap exists",
			id:     "FIN-INV-002",
			inUse:  inUseSet("FIN-INV-001", "FIN-INV-002"),
			want:   "FIN-INV-003",
			wantOK: true,
		},
		{
			name:   "skips taken values above",
			id:     "FIN-INV-001",
			inUse:  inUseSet("FIN-INV-001", "FIN-INV-002", "FIN-INV-003"),
			want:   "FIN-INV-004",
			wantOK: true,
		},
		{
			name:   "unparsable id",
			id:     "not-an-id",
			inUse:  inUseSet(),
			wantOK: false,
		},
		{
			name:   "two-digit suffix is unparsable",
			id:     "FIN-INV-42",
			inUse:  inUseSet(),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.SuggestNextID(tt.id, tt.inUse)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggestNextID_ExhaustedSuffixSpace(t *testing.T) {
	s := NewSuggestionEngine()

	inUse := make(map[string]struct{}, 999)
	for n := 1; n <= 999; n++ {
		inUse[fmt.Sprintf("FIN-INV-%03d", n)] = struct{}{}
	}

	_, ok := s.SuggestNextID("FIN-INV-500", inUse)
	assert.False(t, ok)
}

func TestEnrich_BatchSuggestionsAreUnique(t *testing.T) {
	s := NewSuggestionEngine()

	groups := []models.DuplicateGroup{
		{InternalID: "FIN-INV-001", WorkflowIDs: []string{"a", "b", "c"}, Count: 3},
		{InternalID: "FIN-INV-002", WorkflowIDs: []string{"d", "e"}, Count: 2},
	}
	inUse := inUseSet("FIN-INV-001", "FIN-INV-002")

	enriched := s.Enrich(groups, inUse)
	require.Len(t, enriched, 2)

	// Count-1 suggestions per group, capped at three.
	assert.Equal(t, []string{"FIN-INV-003", "FIN-INV-004"}, enriched[0].SuggestedIDs)
	assert.Equal(t, []string{"FIN-INV-005"}, enriched[1].SuggestedIDs)

	seen := make(map[string]struct{})
	for _, group := range enriched {
		for _, id := range group.SuggestedIDs {
			_, dup := seen[id]
			assert.False(t, dup, "suggestion %s proposed twice", id)
			seen[id] = struct{}{}
		}
	}
}

func TestEnrich_CapsSuggestionsPerGroup(t *testing.T) {
	s := NewSuggestionEngine()

	groups := []models.DuplicateGroup{
		{InternalID: "FIN-INV-001", WorkflowIDs: []string{"a", "b", "c", "d", "e", "f"}, Count: 6},
	}

	enriched := s.Enrich(groups, inUseSet("FIN-INV-001"))
	require.Len(t, enriched, 1)
	assert.Len(t, enriched[0].SuggestedIDs, MaxSuggestionsPerGroup)
}

func TestEnrich_UnparsableIDGetsNoSuggestions(t *testing.T) {
	s := NewSuggestionEngine()

	groups := []models.DuplicateGroup{
		{InternalID: "WEIRD", WorkflowIDs: []string{"a", "b"}, Count: 2},
	}

	enriched := s.Enrich(groups, inUseSet("WEIRD"))
	require.Len(t, enriched, 1)
	assert.Empty(t, enriched[0].SuggestedIDs)
}
