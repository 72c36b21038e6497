package transfer

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/transfer"
)

// Register registers transfer routes
func Register(g *echo.Group) {
	g.POST("", StartTransfer)
	g.GET("/progress", GetProgress)
}

// StartTransfer runs a transfer with the posted options and returns the
// full result. Returns 409 when a run is already in progress.
func StartTransfer(c echo.Context) error {
	ctx := c.Request().Context()

	var opts models.TransferOptions
	if err := c.Bind(&opts); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx, manager, err := ectoinject.GetContext[*transfer.Manager](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "transfer manager not available")
	}

	result, err := manager.Run(ctx, opts)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// GetProgress returns the progress of the current or most recent run
func GetProgress(c echo.Context) error {
	ctx := c.Request().Context()

	_, manager, err := ectoinject.GetContext[*transfer.Manager](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "transfer manager not available")
	}

	return c.JSON(http.StatusOK, manager.Progress())
}
