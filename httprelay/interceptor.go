package httprelay

import (
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// RequestHook mutates an outgoing request before it is sent.
// A non-nil error aborts the request.
//
// Common use cases:
//   - Adding authentication headers (Bearer tokens, API keys)
//   - Injecting correlation IDs
//   - Request logging
type RequestHook func(req *resty.Request) error

// ResponseHook inspects or mutates a response after receipt.
// A non-nil error fails the call.
type ResponseHook func(resp *resty.Response) error

// ErrorHook is the error step paired with a success callback. It
// receives the failure produced by its callback and may transform it or
// recover by returning nil. A missing ErrorHook means the failure
// propagates unchanged.
type ErrorHook func(err error) error

// RequestInterceptorDecl is a request-side interceptor declaration.
// Three shapes are accepted:
//
//   - a bare RequestHook
//   - RequestPair, the legacy fulfilled/rejected pair
//   - RequestInterceptor, the current object form
//
// All shapes normalize to one success callback plus one optional error
// callback before attachment.
type RequestInterceptorDecl interface {
	normalizeRequest() (RequestHook, ErrorHook, bool)
}

// ResponseInterceptorDecl is the response-side counterpart of
// RequestInterceptorDecl.
type ResponseInterceptorDecl interface {
	normalizeResponse() (ResponseHook, ErrorHook, bool)
}

func (h RequestHook) normalizeRequest() (RequestHook, ErrorHook, bool) {
	return h, nil, h != nil
}

func (h ResponseHook) normalizeResponse() (ResponseHook, ErrorHook, bool) {
	return h, nil, h != nil
}

// RequestPair is the paired-function declaration shape. A nil
// OnFulfilled still registers (as a passthrough), matching the
// single-element legacy pair.
//
// Deprecated: use RequestInterceptor or a bare RequestHook.
type RequestPair struct {
	OnFulfilled RequestHook
	OnRejected  ErrorHook
}

func (p RequestPair) normalizeRequest() (RequestHook, ErrorHook, bool) {
	f := p.OnFulfilled
	if f == nil {
		f = func(*resty.Request) error { return nil }
	}
	return f, p.OnRejected, true
}

// ResponsePair is the response-side paired-function declaration shape.
//
// Deprecated: use ResponseInterceptor or a bare ResponseHook.
type ResponsePair struct {
	OnFulfilled ResponseHook
	OnRejected  ErrorHook
}

func (p ResponsePair) normalizeResponse() (ResponseHook, ErrorHook, bool) {
	f := p.OnFulfilled
	if f == nil {
		f = func(*resty.Response) error { return nil }
	}
	return f, p.OnRejected, true
}

// RequestInterceptor is the object-form declaration. A declaration
// without OnRequest registers nothing and yields NotRegistered.
type RequestInterceptor struct {
	OnRequest RequestHook
	OnError   ErrorHook
}

func (i RequestInterceptor) normalizeRequest() (RequestHook, ErrorHook, bool) {
	if i.OnRequest == nil {
		return nil, nil, false
	}
	return i.OnRequest, i.OnError, true
}

// ResponseInterceptor is the response-side object-form declaration.
type ResponseInterceptor struct {
	OnResponse ResponseHook
	OnError    ErrorHook
}

func (i ResponseInterceptor) normalizeResponse() (ResponseHook, ErrorHook, bool) {
	if i.OnResponse == nil {
		return nil, nil, false
	}
	return i.OnResponse, i.OnError, true
}

// useRequestInterceptor normalizes one declaration and registers it on
// the chain, returning the chain-issued identifier or NotRegistered.
func useRequestInterceptor(c *requestChain, decl RequestInterceptorDecl) InterceptorID {
	if decl == nil {
		return NotRegistered
	}
	onFulfilled, onRejected, ok := decl.normalizeRequest()
	if !ok {
		return NotRegistered
	}
	return c.use(onFulfilled, onRejected)
}

func useResponseInterceptor(c *responseChain, decl ResponseInterceptorDecl) InterceptorID {
	if decl == nil {
		return NotRegistered
	}
	onFulfilled, onRejected, ok := decl.normalizeResponse()
	if !ok {
		return NotRegistered
	}
	return c.use(onFulfilled, onRejected)
}

// Common interceptor helpers

// AuthBearerHook returns a hook that adds a Bearer token.
func AuthBearerHook(token string) RequestHook {
	return func(req *resty.Request) error {
		req.SetHeader("Authorization", "Bearer "+token)
		return nil
	}
}

// AuthBearerFuncHook returns a hook that adds a Bearer token from a
// function (useful for dynamic/refreshable tokens).
func AuthBearerFuncHook(tokenFunc func() (string, error)) RequestHook {
	return func(req *resty.Request) error {
		token, err := tokenFunc()
		if err != nil {
			return err
		}
		req.SetHeader("Authorization", "Bearer "+token)
		return nil
	}
}

// APIKeyHook returns a hook that adds an API key header.
func APIKeyHook(headerName, apiKey string) RequestHook {
	return func(req *resty.Request) error {
		req.SetHeader(headerName, apiKey)
		return nil
	}
}

// CorrelationIDHook returns a hook that stamps each request with a fresh
// UUID under the given header.
func CorrelationIDHook(headerName string) RequestHook {
	return func(req *resty.Request) error {
		req.SetHeader(headerName, uuid.NewString())
		return nil
	}
}

// UserAgentHook returns a hook that sets the User-Agent header.
func UserAgentHook(userAgent string) RequestHook {
	return func(req *resty.Request) error {
		req.SetHeader("User-Agent", userAgent)
		return nil
	}
}
