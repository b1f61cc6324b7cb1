package httprelay

import (
	"net/http"
	"time"
)

// Config describes either an instance (at Define time) or a single call
// (at Request time). The same type serves both roles: a call's Config is
// shallow-merged over the instance's registered Config, with the
// call-level value winning wherever it is set.
type Config struct {
	// =======================================================================
	// Native client options, passed through to resty at instance
	// construction. Meaningful on Define-time configurations.
	// =======================================================================

	// BaseURL is prepended to every request URL of the instance.
	BaseURL string

	// Timeout bounds the entire request lifecycle. Zero means no timeout.
	Timeout time.Duration

	// Headers are applied to every request of the instance. On a
	// call-level Config they apply to that request only and override
	// instance headers of the same name.
	Headers map[string]string

	// QueryParams are appended to every request of the instance, or to
	// the single request on a call-level Config.
	QueryParams map[string]string

	// RetryCount, RetryWaitTime and RetryMaxWaitTime pass through to
	// resty's native retry. This layer adds no retry logic of its own.
	RetryCount       int
	RetryWaitTime    time.Duration
	RetryMaxWaitTime time.Duration

	// Transport overrides the instance's underlying round tripper.
	Transport http.RoundTripper

	// Debug enables request/response logging for the instance (or, on a
	// call-level Config, for that call).
	Debug bool

	// =======================================================================
	// Call-level fields.
	// =======================================================================

	// Method and URL identify the request. The verb helpers fill both.
	Method string
	URL    string

	// Body is the request body. Structs and maps are JSON-encoded by
	// resty; strings, byte slices and readers pass through.
	Body any

	// Result, when non-nil, receives the decoded response payload.
	// Decoding failures surface as *DecodeError.
	Result any

	// =======================================================================
	// Dispatch policy.
	// =======================================================================

	// InstanceName selects the target instance. Empty selects the
	// default instance.
	InstanceName string

	// SkipErrorHandler rethrows failures immediately without invoking
	// any error handler.
	SkipErrorHandler bool

	// WithFullResponse selects the return value of a call: the full
	// *Response envelope when true, just the decoded payload when false.
	// Nil inherits the instance's registered setting. Use Bool to set it
	// inline.
	WithFullResponse *bool

	// ErrorConfig carries the error-handling callbacks. A call-level
	// ErrorConfig takes precedence over the instance-level one.
	ErrorConfig *ErrorConfig

	// Interceptors declares request- and response-side interceptors. At
	// Define time they are permanent; on a call-level Config they are
	// one-shot, removed after the call regardless of outcome.
	Interceptors Interceptors

	// RequestInterceptors is the flat request-side declaration list.
	//
	// Deprecated: use Interceptors.Request.
	RequestInterceptors []RequestInterceptorDecl

	// ResponseInterceptors is the flat response-side declaration list.
	//
	// Deprecated: use Interceptors.Response.
	ResponseInterceptors []ResponseInterceptorDecl
}

// Interceptors groups the declared interceptors by side.
type Interceptors struct {
	Request  []RequestInterceptorDecl
	Response []ResponseInterceptorDecl
}

// ErrorConfig carries the per-call or per-instance error callbacks.
type ErrorConfig struct {
	// ErrorHandler observes call failures. The original error still
	// propagates afterwards; a non-nil return value propagates in its
	// place.
	ErrorHandler ErrorHandler

	// ErrorThrower runs on HTTP-successful responses and may convert a
	// business-level error payload into a failure, which then follows
	// the normal error policy.
	ErrorThrower ErrorThrower
}

// ErrorHandler observes a failed call. It receives the failure and the
// merged configuration of the call. Handlers cannot suppress
// propagation: returning nil still fails the call with the original
// error, and returning a non-nil error replaces it.
type ErrorHandler func(err error, cfg *Config) error

// ErrorThrower inspects a successful response envelope and returns a
// non-nil error to fail the call.
type ErrorThrower func(resp *Response) error

// Bool returns a pointer to v, for setting WithFullResponse inline.
func Bool(v bool) *bool { return &v }

// mergeConfig shallow-merges a call-level configuration over the
// instance's registered defaults. Call-level values win where set;
// WithFullResponse falls back to the instance default only when the
// call leaves it nil.
func mergeConfig(base, call Config) Config {
	merged := call

	if merged.BaseURL == "" {
		merged.BaseURL = base.BaseURL
	}
	if merged.Timeout == 0 {
		merged.Timeout = base.Timeout
	}
	merged.Headers = mergeStringMaps(base.Headers, call.Headers)
	merged.QueryParams = mergeStringMaps(base.QueryParams, call.QueryParams)

	merged.SkipErrorHandler = base.SkipErrorHandler || call.SkipErrorHandler
	merged.Debug = base.Debug || call.Debug

	if merged.WithFullResponse == nil {
		merged.WithFullResponse = base.WithFullResponse
	}
	if merged.ErrorConfig == nil {
		merged.ErrorConfig = base.ErrorConfig
	}
	return merged
}

// mergeStringMaps overlays b onto a. The result never aliases either
// input, so mutating it cannot reach back into a caller's map. Nil in,
// nil out when both are empty.
func mergeStringMaps(a, b map[string]string) map[string]string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// fullResponse resolves the tri-state WithFullResponse flag of a merged
// configuration.
func (c *Config) fullResponse() bool {
	return c.WithFullResponse != nil && *c.WithFullResponse
}

// errorHandler resolves the handler precedence: call-level wins over
// instance-level.
func resolveErrorHandler(call, base *Config) ErrorHandler {
	if call.ErrorConfig != nil && call.ErrorConfig.ErrorHandler != nil {
		return call.ErrorConfig.ErrorHandler
	}
	if base.ErrorConfig != nil && base.ErrorConfig.ErrorHandler != nil {
		return base.ErrorConfig.ErrorHandler
	}
	return nil
}

func resolveErrorThrower(call, base *Config) ErrorThrower {
	if call.ErrorConfig != nil && call.ErrorConfig.ErrorThrower != nil {
		return call.ErrorConfig.ErrorThrower
	}
	if base.ErrorConfig != nil && base.ErrorConfig.ErrorThrower != nil {
		return base.ErrorConfig.ErrorThrower
	}
	return nil
}
