package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/Ramsey-B/fern/pkg/models"
)

// Formatter renders duplicate findings into human-readable text. Pure
// formatting, no side effects.
type Formatter struct{}

// NewFormatter creates a Formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// FormatGroup renders one group as a multi-line block enumerating every
// workflow and, for all but the first, its paired replacement suggestion.
func (f *Formatter) FormatGroup(group models.EnrichedDuplicateGroup) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Internal ID %s is used by %d workflows:\n", group.InternalID, group.Count)

	for i, wfID := range group.WorkflowIDs {
		if i == 0 {
			fmt.Fprintf(&b, "  - %s (keeps %s)\n", wfID, group.InternalID)
			continue
		}
		if i-1 < len(group.SuggestedIDs) {
			fmt.Fprintf(&b, "  - %s -> rename to %s\n", wfID, group.SuggestedIDs[i-1])
		} else {
			fmt.Fprintf(&b, "  - %s -> no suggestion available\n", wfID)
		}
	}

	return b.String()
}

// FormatCompact renders one group as a single log-friendly line.
func (f *Formatter) FormatCompact(group models.EnrichedDuplicateGroup) string {
	return fmt.Sprintf("duplicate %s: workflows=[%s] suggestions=[%s]",
		group.InternalID,
		strings.Join(group.WorkflowIDs, ", "),
		strings.Join(group.SuggestedIDs, ", "))
}

// FormatAll renders every group block separated by blank lines.
func (f *Formatter) FormatAll(groups []models.EnrichedDuplicateGroup) string {
	blocks := make([]string, 0, len(groups))
	for _, group := range groups {
		blocks = append(blocks, f.FormatGroup(group))
	}
	return strings.Join(blocks, "\n")
}

// FormatSuccess renders the message for a run that found no duplicates.
func (f *Formatter) FormatSuccess(total int) string {
	return fmt.Sprintf("No duplicate internal IDs found across %d workflows", total)
}

// FormatLogHeader renders the header line written to the validation log.
func (f *Formatter) FormatLogHeader(result *models.ValidationResult) string {
	return fmt.Sprintf("[%s] validation: checked=%d duplicate_groups=%d valid=%t",
		result.CheckedAt.UTC().Format(time.RFC3339),
		result.TotalChecked,
		len(result.Groups),
		result.Valid)
}
