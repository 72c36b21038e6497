package validation

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"

	"github.com/Ramsey-B/fern/pkg/models"
)

// DuplicateError is returned by Validate when duplicate internal IDs exist.
// It carries both the formatted messages and the structured groups so
// callers can render or inspect the findings.
type DuplicateError struct {
	Messages []string
	Groups   []models.EnrichedDuplicateGroup
}

func (e *DuplicateError) Error() string {
	if len(e.Groups) == 1 {
		return fmt.Sprintf("1 duplicate internal ID found: %s", e.Groups[0].InternalID)
	}
	ids := make([]string, 0, len(e.Groups))
	for _, group := range e.Groups {
		ids = append(ids, group.InternalID)
	}
	return fmt.Sprintf("%d duplicate internal IDs found: %s", len(e.Groups), strings.Join(ids, ", "))
}

// ToHTTPError converts the error for the API boundary.
func (e *DuplicateError) ToHTTPError() *httperror.HTTPError {
	return httperror.NewHTTPError(http.StatusConflict, e.Error()).AddMetaValue("duplicate_groups", e.Groups)
}

// IsDuplicateError reports whether err is a DuplicateError.
func IsDuplicateError(err error) bool {
	_, ok := err.(*DuplicateError)
	return ok
}
