package validation

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/endpoint"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/validation"
)

// ValidateRequest represents a validation request. When no workflows are
// given the source endpoint's full inventory is validated.
type ValidateRequest struct {
	Workflows []models.Workflow `json:"workflows"`
}

// ValidateResponse represents a validation response
type ValidateResponse struct {
	Valid        bool                           `json:"valid"`
	TotalChecked int                            `json:"total_checked"`
	Truncated    bool                           `json:"truncated,omitempty"`
	Groups       []models.EnrichedDuplicateGroup `json:"groups,omitempty"`
	Report       string                         `json:"report"`
}

// Register registers validation routes
func Register(g *echo.Group) {
	g.POST("/validate", ValidateWorkflows)
}

// ValidateWorkflows checks a workflow set for duplicate internal IDs
func ValidateWorkflows(c echo.Context) error {
	ctx := c.Request().Context()

	var req ValidateRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	workflows := req.Workflows
	if len(workflows) == 0 {
		ctx, endpoints, err := ectoinject.GetContext[*endpoint.Endpoints](ctx)
		if err != nil {
			return httperror.NewHTTPError(http.StatusInternalServerError, "endpoints not available")
		}
		workflows, err = endpoints.Source.ListWorkflows(ctx)
		if err != nil {
			return err
		}
	}

	ctx, service, err := ectoinject.GetContext[*validation.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "validation service not available")
	}

	result, err := service.Validate(ctx, workflows)
	if err != nil && !validation.IsDuplicateError(err) {
		return err
	}

	return c.JSON(http.StatusOK, ValidateResponse{
		Valid:        result.Valid,
		TotalChecked: result.TotalChecked,
		Truncated:    result.Truncated,
		Groups:       result.Groups,
		Report:       service.GenerateReport(ctx, workflows),
	})
}
