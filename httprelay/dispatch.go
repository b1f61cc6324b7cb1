package httprelay

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// Request dispatches one call against the instance selected by
// cfg.InstanceName (the default instance when empty).
//
// The call-level configuration is shallow-merged over the instance's
// registered defaults, any interceptors declared on cfg are attached
// one-shot, the request is executed, and the one-shot interceptors are
// removed again whether the call succeeded or failed. On success the
// return value is the decoded payload, or the full *Response envelope
// when WithFullResponse resolves to true.
//
// Failures pass through the error policy: SkipErrorHandler rethrows
// immediately; otherwise the call-level error handler (falling back to
// the instance-level one) observes the failure before it propagates.
// An unknown instance name fails with ErrInstanceNotFound before any of
// this applies.
func (r *Registry) Request(ctx context.Context, cfg Config) (any, error) {
	inst, err := r.Instance(cfg.InstanceName)
	if err != nil {
		return nil, err
	}

	merged := mergeConfig(inst.base, cfg)

	ctx, span := r.startSpan(ctx, inst, &merged)
	defer span.End()

	reqIDs, respIDs := inst.attachInterceptors(&cfg, true)
	defer inst.detachInterceptors(reqIDs, respIDs)

	settled := r.trackInFlight(ctx, inst, &merged)
	start := time.Now()
	resp, err := r.execute(ctx, inst, &merged)
	settled()
	r.recordCall(ctx, inst, &merged, resp, time.Since(start), err)

	if err == nil {
		if thrower := resolveErrorThrower(&cfg, &inst.base); thrower != nil {
			err = thrower(resp)
		}
	}
	if err != nil {
		finishSpanError(span, err)
		return nil, r.applyErrorPolicy(err, &cfg, inst, &merged)
	}

	finishSpanSuccess(span, resp)
	if merged.fullResponse() {
		return resp, nil
	}
	return resp.Data, nil
}

// execute performs the underlying resty call and wraps the outcome.
// Non-2xx statuses become a *ResponseError carrying the envelope.
func (r *Registry) execute(ctx context.Context, inst *Instance, merged *Config) (*Response, error) {
	req := inst.client.R().SetContext(ctx)

	if len(merged.Headers) > 0 {
		req.SetHeaders(merged.Headers)
	}
	if len(merged.QueryParams) > 0 {
		req.SetQueryParams(merged.QueryParams)
	}
	if merged.Body != nil {
		req.SetBody(merged.Body)
	}

	method := merged.Method
	if method == "" {
		method = resty.MethodGet
	}

	if merged.Debug {
		logRequest(r.logger, inst.displayName(), method, merged.URL)
	}

	start := time.Now()
	raw, err := req.Execute(method, merged.URL)
	if err != nil {
		return nil, err
	}

	if merged.Debug {
		logResponse(r.logger, inst.displayName(), raw, time.Since(start))
	}

	if raw.IsError() {
		// Decode best-effort only: the Result target is reserved for
		// success payloads.
		resp, _ := newResponse(raw, nil)
		return resp, &ResponseError{Response: resp}
	}
	return newResponse(raw, merged.Result)
}

// applyErrorPolicy implements the failure branch: skip short-circuits,
// otherwise the resolved handler observes the failure. Handlers cannot
// suppress propagation; a non-nil handler return value propagates in
// place of the original error.
func (r *Registry) applyErrorPolicy(err error, call *Config, inst *Instance, merged *Config) error {
	if merged.SkipErrorHandler {
		return err
	}
	handler := resolveErrorHandler(call, &inst.base)
	if handler == nil {
		return err
	}
	if herr := handler(err, merged); herr != nil {
		return herr
	}
	return err
}

// Verb helpers. Each fills in the method and URL and forwards to
// Request; at most one extra Config may be supplied.

func callConfig(cfg []Config, method, url string, body any) Config {
	var c Config
	if len(cfg) > 0 {
		c = cfg[0]
	}
	c.Method = method
	c.URL = url
	if body != nil {
		c.Body = body
	}
	return c
}

// Get dispatches a GET request.
func (r *Registry) Get(ctx context.Context, url string, cfg ...Config) (any, error) {
	return r.Request(ctx, callConfig(cfg, resty.MethodGet, url, nil))
}

// Post dispatches a POST request with the given body.
func (r *Registry) Post(ctx context.Context, url string, body any, cfg ...Config) (any, error) {
	return r.Request(ctx, callConfig(cfg, resty.MethodPost, url, body))
}

// Put dispatches a PUT request with the given body.
func (r *Registry) Put(ctx context.Context, url string, body any, cfg ...Config) (any, error) {
	return r.Request(ctx, callConfig(cfg, resty.MethodPut, url, body))
}

// Patch dispatches a PATCH request with the given body.
func (r *Registry) Patch(ctx context.Context, url string, body any, cfg ...Config) (any, error) {
	return r.Request(ctx, callConfig(cfg, resty.MethodPatch, url, body))
}

// Delete dispatches a DELETE request.
func (r *Registry) Delete(ctx context.Context, url string, cfg ...Config) (any, error) {
	return r.Request(ctx, callConfig(cfg, resty.MethodDelete, url, nil))
}

// Head dispatches a HEAD request.
func (r *Registry) Head(ctx context.Context, url string, cfg ...Config) (any, error) {
	return r.Request(ctx, callConfig(cfg, resty.MethodHead, url, nil))
}

// Options dispatches an OPTIONS request.
func (r *Registry) Options(ctx context.Context, url string, cfg ...Config) (any, error) {
	return r.Request(ctx, callConfig(cfg, resty.MethodOptions, url, nil))
}

// Package-level mirrors operating on the default registry.

// Request dispatches a call on the default registry. See
// Registry.Request.
func Request(ctx context.Context, cfg Config) (any, error) {
	return defaultRegistry.Request(ctx, cfg)
}

// Get dispatches a GET request on the default registry.
func Get(ctx context.Context, url string, cfg ...Config) (any, error) {
	return defaultRegistry.Get(ctx, url, cfg...)
}

// Post dispatches a POST request on the default registry.
func Post(ctx context.Context, url string, body any, cfg ...Config) (any, error) {
	return defaultRegistry.Post(ctx, url, body, cfg...)
}

// Put dispatches a PUT request on the default registry.
func Put(ctx context.Context, url string, body any, cfg ...Config) (any, error) {
	return defaultRegistry.Put(ctx, url, body, cfg...)
}

// Patch dispatches a PATCH request on the default registry.
func Patch(ctx context.Context, url string, body any, cfg ...Config) (any, error) {
	return defaultRegistry.Patch(ctx, url, body, cfg...)
}

// Delete dispatches a DELETE request on the default registry.
func Delete(ctx context.Context, url string, cfg ...Config) (any, error) {
	return defaultRegistry.Delete(ctx, url, cfg...)
}

// Head dispatches a HEAD request on the default registry.
func Head(ctx context.Context, url string, cfg ...Config) (any, error) {
	return defaultRegistry.Head(ctx, url, cfg...)
}

// Options dispatches an OPTIONS request on the default registry.
func Options(ctx context.Context, url string, cfg ...Config) (any, error) {
	return defaultRegistry.Options(ctx, url, cfg...)
}
