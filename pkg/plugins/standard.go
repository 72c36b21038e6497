package plugins

import (
	"fmt"

	"github.com/Gobusters/ectolinq"

	"github.com/Ramsey-B/fern/pkg/models"
)

// StandardDeduplicator matches on exact name equality plus tag-set equality.
// Tag order does not matter, but the tag lists must be the same length, so a
// workflow tagged ["a", "a"] does not duplicate one tagged ["a"].
type StandardDeduplicator struct {
	lastReason string
}

// NewStandardDeduplicator creates the standard deduplicator. It takes no
// options.
func NewStandardDeduplicator(_ map[string]any) (Deduplicator, error) {
	return &StandardDeduplicator{}, nil
}

func (d *StandardDeduplicator) Name() string {
	return "standard"
}

func (d *StandardDeduplicator) IsDuplicate(candidate, existing models.Workflow) bool {
	if candidate.Name != existing.Name {
		return false
	}
	if len(candidate.Tags) != len(existing.Tags) {
		return false
	}
	for _, tag := range candidate.Tags {
		if !ectolinq.Contains(existing.Tags, tag) {
			return false
		}
	}

	d.lastReason = fmt.Sprintf("name %q and tags match existing workflow %s", existing.Name, existing.ID)
	return true
}

func (d *StandardDeduplicator) Reason() string {
	return d.lastReason
}

func standardDescriptor() models.PluginDescriptor {
	return models.PluginDescriptor{
		Name:        "standard",
		Version:     "1.0.0",
		Description: "Exact name and tag-set match",
		Enabled:     true,
	}
}
