package plugins

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"

	"github.com/Ramsey-B/fern/pkg/matching"
	"github.com/Ramsey-B/fern/pkg/models"
)

// DefaultFuzzyThreshold is the minimum name similarity treated as a match.
const DefaultFuzzyThreshold = 0.85

// FuzzyDeduplicator matches workflows whose names are similar but not
// necessarily identical. The similarity algorithm and threshold are
// configurable per run.
type FuzzyDeduplicator struct {
	threshold     float64
	caseSensitive bool
	score         func(a, b string) float64
	algorithm     string

	// Best match seen for the candidate currently being scored. Reset
	// whenever a new candidate arrives, so Reason names the existing
	// workflow with the highest similarity, not the first over the
	// threshold.
	lastCandidate string
	bestScore     float64
	lastReason    string
}

// NewFuzzyDeduplicator creates a fuzzy deduplicator. Options: "threshold"
// (number in (0,1], default 0.85), "case_sensitive" (bool, default false),
// "algorithm" ("levenshtein" or "jaro_winkler", default "levenshtein").
func NewFuzzyDeduplicator(options map[string]any) (Deduplicator, error) {
	threshold, err := optFloat(options, "threshold", DefaultFuzzyThreshold)
	if err != nil {
		return nil, err
	}
	if threshold <= 0 || threshold > 1 {
		return nil, httperror.NewHTTPErrorf(http.StatusBadRequest, "option \"threshold\" must be in (0, 1], got %v", threshold)
	}

	caseSensitive, err := optBool(options, "case_sensitive", false)
	if err != nil {
		return nil, err
	}

	algorithm, err := optString(options, "algorithm", "levenshtein")
	if err != nil {
		return nil, err
	}

	d := &FuzzyDeduplicator{
		threshold:     threshold,
		caseSensitive: caseSensitive,
		algorithm:     algorithm,
	}

	switch algorithm {
	case "levenshtein":
		d.score = matching.Levenshtein
	case "jaro_winkler":
		d.score = matching.JaroWinkler
	default:
		return nil, httperror.NewHTTPErrorf(http.StatusBadRequest, "unknown similarity algorithm %q", algorithm)
	}

	return d, nil
}

func (d *FuzzyDeduplicator) Name() string {
	return "fuzzy"
}

func (d *FuzzyDeduplicator) IsDuplicate(candidate, existing models.Workflow) bool {
	key := candidate.ID + "\x00" + candidate.Name
	if key != d.lastCandidate {
		d.lastCandidate = key
		d.bestScore = 0
		d.lastReason = ""
	}

	a, b := candidate.Name, existing.Name
	if !d.caseSensitive {
		a, b = strings.ToLower(a), strings.ToLower(b)
	}

	similarity := d.score(a, b)
	if similarity < d.threshold {
		return false
	}

	if similarity > d.bestScore {
		d.bestScore = similarity
		d.lastReason = fmt.Sprintf("name %.0f%% similar to existing workflow %q (%s)",
			similarity*100, existing.Name, existing.ID)
	}
	return true
}

// Reason explains the most recent candidate's best match.
func (d *FuzzyDeduplicator) Reason() string {
	return d.lastReason
}

func fuzzyDescriptor() models.PluginDescriptor {
	return models.PluginDescriptor{
		Name:        "fuzzy",
		Version:     "1.0.0",
		Description: "Name similarity match with configurable algorithm and threshold",
		Enabled:     true,
		Options: map[string]any{
			"threshold":      DefaultFuzzyThreshold,
			"case_sensitive": false,
			"algorithm":      "levenshtein",
		},
	}
}
