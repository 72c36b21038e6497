package validation

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/Ramsey-B/fern/pkg/models"
)

// MaxSuggestionsPerGroup caps how many replacement IDs are proposed for one
// duplicate group.
const MaxSuggestionsPerGroup = 3

// maxSuffix is the hard ceiling of the 3-digit suffix space.
const maxSuffix = 999

var idSuffixPattern = regexp.MustCompile(`^(.+-)(\d{3})$`)

// SuggestionEngine proposes unused replacement internal IDs for duplicates.
type SuggestionEngine struct{}

// NewSuggestionEngine creates a SuggestionEngine.
func NewSuggestionEngine() *SuggestionEngine {
	return &SuggestionEngine{}
}

// SuggestNextID proposes an unused ID sharing the prefix of the given one.
// Gaps below the current suffix are filled first; otherwise the first free
// value above it is used. Returns false for unparsable IDs and when the
// whole 1-999 suffix space is taken.
func (s *SuggestionEngine) SuggestNextID(id string, inUse map[string]struct{}) (string, bool) {
	groups := idSuffixPattern.FindStringSubmatch(id)
	if groups == nil {
		return "", false
	}
	prefix := groups[1]
	current, err := strconv.Atoi(groups[2])
	if err != nil {
		return "", false
	}

	for n := 1; n < current; n++ {
		candidate := fmt.Sprintf("%s%03d", prefix, n)
		if _, taken := inUse[candidate]; !taken {
			return candidate, true
		}
	}
	for n := current + 1; n <= maxSuffix; n++ {
		candidate := fmt.Sprintf("%s%03d", prefix, n)
		if _, taken := inUse[candidate]; !taken {
			return candidate, true
		}
	}

	return "", false
}

// Enrich attaches suggestions to every duplicate group. Each generated
// suggestion is added to the in-use set before the next is generated, so a
// batch never proposes the same replacement twice. The inUse map is mutated.
func (s *SuggestionEngine) Enrich(groups []models.DuplicateGroup, inUse map[string]struct{}) []models.EnrichedDuplicateGroup {
	enriched := make([]models.EnrichedDuplicateGroup, 0, len(groups))

	for _, group := range groups {
		wanted := group.Count - 1
		if wanted > MaxSuggestionsPerGroup {
			wanted = MaxSuggestionsPerGroup
		}

		suggestions := make([]string, 0, wanted)
		for i := 0; i < wanted; i++ {
			suggestion, ok := s.SuggestNextID(group.InternalID, inUse)
			if !ok {
				break
			}
			inUse[suggestion] = struct{}{}
			suggestions = append(suggestions, suggestion)
		}

		enriched = append(enriched, models.EnrichedDuplicateGroup{
			DuplicateGroup: group,
			SuggestedIDs:   suggestions,
		})
	}

	return enriched
}
