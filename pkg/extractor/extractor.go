// Package extractor pulls normalized internal IDs out of workflow records.
package extractor

import (
	"regexp"
	"strings"

	"github.com/Ramsey-B/fern/pkg/models"
)

// DefaultPattern matches a bracketed PREFIX-PREFIX-NNN internal ID, e.g.
// "[FIN-INV-042] Invoice sync". The first capture group is the ID itself.
const DefaultPattern = `\[([A-Za-z]+-[A-Za-z]+-\d{3})\]`

// Extractor extracts internal IDs from a workflow's name or tags.
type Extractor struct {
	pattern *regexp.Regexp
}

// New creates an Extractor for the given pattern. An empty pattern selects
// DefaultPattern. Matching is always case-insensitive.
func New(pattern string) (*Extractor, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}
	return &Extractor{pattern: re}, nil
}

// ExtractID returns the normalized internal ID for a workflow, or false when
// neither the name nor the tags match. The display name is checked before
// the tags; the first match wins.
func (e *Extractor) ExtractID(wf models.Workflow) (string, bool) {
	if id, ok := e.match(wf.Name); ok {
		return id, true
	}
	if len(wf.Tags) > 0 {
		return e.match(strings.Join(wf.Tags, " "))
	}
	return "", false
}

func (e *Extractor) match(s string) (string, bool) {
	groups := e.pattern.FindStringSubmatch(s)
	if groups == nil {
		return "", false
	}
	// Prefer the first capture group; fall back to the whole match for
	// patterns without one.
	id := groups[0]
	if len(groups) > 1 && groups[1] != "" {
		id = groups[1]
	}
	return Normalize(id), true
}

// Normalize trims and upper-cases an internal ID.
func Normalize(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
