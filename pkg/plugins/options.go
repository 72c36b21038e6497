package plugins

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
)

// Option values arrive from JSON request bodies, so numbers are float64 and
// everything else is loosely typed. These helpers coerce with a default.

func optFloat(options map[string]any, key string, def float64) (float64, error) {
	raw, ok := options[key]
	if !ok {
		return def, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, httperror.NewHTTPErrorf(http.StatusBadRequest, "option %q must be a number", key)
	}
}

func optBool(options map[string]any, key string, def bool) (bool, error) {
	raw, ok := options[key]
	if !ok {
		return def, nil
	}
	v, ok := raw.(bool)
	if !ok {
		return false, httperror.NewHTTPErrorf(http.StatusBadRequest, "option %q must be a boolean", key)
	}
	return v, nil
}

func optString(options map[string]any, key string, def string) (string, error) {
	raw, ok := options[key]
	if !ok {
		return def, nil
	}
	v, ok := raw.(string)
	if !ok {
		return "", httperror.NewHTTPErrorf(http.StatusBadRequest, "option %q must be a string", key)
	}
	return v, nil
}
