package httprelay

import (
	"github.com/go-resty/resty/v2"
)

// Instance is a configured handle to the underlying resty client, bound
// to the base configuration supplied at Define time and a pair of
// interceptor chains. Instances live for the registry's lifetime and
// their base configuration is never mutated after creation; only the
// chains change afterwards.
type Instance struct {
	name      string
	client    *resty.Client
	base      Config
	reqChain  *requestChain
	respChain *responseChain
}

// newInstance constructs the resty client from the configuration,
// carrying the native options forward, and bridges the instance chains
// into resty's middleware.
func newInstance(name string, cfg Config) *Instance {
	client := resty.New()

	if cfg.BaseURL != "" {
		client.SetBaseURL(cfg.BaseURL)
	}
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	if len(cfg.Headers) > 0 {
		client.SetHeaders(cfg.Headers)
	}
	if len(cfg.QueryParams) > 0 {
		client.SetQueryParams(cfg.QueryParams)
	}
	if cfg.RetryCount > 0 {
		client.SetRetryCount(cfg.RetryCount)
	}
	if cfg.RetryWaitTime > 0 {
		client.SetRetryWaitTime(cfg.RetryWaitTime)
	}
	if cfg.RetryMaxWaitTime > 0 {
		client.SetRetryMaxWaitTime(cfg.RetryMaxWaitTime)
	}
	if cfg.Transport != nil {
		client.SetTransport(cfg.Transport)
	}

	inst := &Instance{
		name:      name,
		client:    client,
		base:      cfg,
		reqChain:  &requestChain{},
		respChain: &responseChain{},
	}

	// resty's own middleware slices are append-only, so the ejectable
	// chains live on the instance and are walked from one permanent hook
	// pair.
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return inst.reqChain.apply(req)
	})
	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		return inst.respChain.apply(resp)
	})

	return inst
}

// Name returns the registered instance name, or the empty string for
// the default instance.
func (in *Instance) Name() string { return in.name }

// Client exposes the underlying *resty.Client for advanced use cases,
// such as passing it to libraries that speak resty directly.
func (in *Instance) Client() *resty.Client { return in.client }

// displayName is the name used in logs and telemetry.
func (in *Instance) displayName() string {
	if in.name == "" {
		return "default"
	}
	return in.name
}

// attachInterceptors walks the four declaration sources of a
// configuration, registering each on the matching chain. In ephemeral
// mode the non-sentinel identifiers are collected, request-side and
// response-side separately, so the caller can remove them after the
// call; otherwise the interceptors become permanent and the returned
// slices are empty.
func (in *Instance) attachInterceptors(cfg *Config, ephemeral bool) (reqIDs, respIDs []InterceptorID) {
	collectReq := func(id InterceptorID) {
		if ephemeral && id != NotRegistered {
			reqIDs = append(reqIDs, id)
		}
	}
	collectResp := func(id InterceptorID) {
		if ephemeral && id != NotRegistered {
			respIDs = append(respIDs, id)
		}
	}

	for _, decl := range cfg.Interceptors.Request {
		collectReq(useRequestInterceptor(in.reqChain, decl))
	}
	for _, decl := range cfg.Interceptors.Response {
		collectResp(useResponseInterceptor(in.respChain, decl))
	}
	for _, decl := range cfg.RequestInterceptors {
		collectReq(useRequestInterceptor(in.reqChain, decl))
	}
	for _, decl := range cfg.ResponseInterceptors {
		collectResp(useResponseInterceptor(in.respChain, decl))
	}
	return reqIDs, respIDs
}

// detachInterceptors removes previously collected one-shot
// interceptors, request-side first.
func (in *Instance) detachInterceptors(reqIDs, respIDs []InterceptorID) {
	for _, id := range reqIDs {
		in.reqChain.eject(id)
	}
	for _, id := range respIDs {
		in.respChain.eject(id)
	}
}
