package httprelay

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// logRequest logs an outgoing request when Debug is set.
func logRequest(logger zerolog.Logger, instance, method, url string) {
	logger.Debug().
		Str("instance", instance).
		Str("method", method).
		Str("url", url).
		Msg("HTTP request")
}

// logResponse logs a completed request when Debug is set.
func logResponse(logger zerolog.Logger, instance string, resp *resty.Response, duration time.Duration) {
	logger.Debug().
		Str("instance", instance).
		Int("status", resp.StatusCode()).
		Str("status_text", resp.Status()).
		Dur("duration_ms", duration).
		Int("content_length", len(resp.Body())).
		Msg("HTTP response")
}
