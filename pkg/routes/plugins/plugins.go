package plugins

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/plugins"
)

// Register registers plugin routes
func Register(g *echo.Group) {
	g.GET("", ListPlugins)
}

// ListPlugins returns every registered plugin, optionally filtered by the
// "type" query parameter.
func ListPlugins(c echo.Context) error {
	ctx := c.Request().Context()

	_, registry, err := ectoinject.GetContext[*plugins.Registry](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "plugin registry not available")
	}

	if pluginType := c.QueryParam("type"); pluginType != "" {
		switch models.PluginType(pluginType) {
		case models.PluginTypeDeduplicator, models.PluginTypeValidator, models.PluginTypeReporter:
			return c.JSON(http.StatusOK, registry.ListByType(models.PluginType(pluginType)))
		default:
			return httperror.NewHTTPErrorf(http.StatusBadRequest, "unknown plugin type %q", pluginType)
		}
	}

	return c.JSON(http.StatusOK, registry.ListAll())
}
