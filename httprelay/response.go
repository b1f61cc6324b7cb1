package httprelay

import (
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
)

// Response is the full response envelope: status, headers and payload.
// Calls return it directly when WithFullResponse resolves to true;
// otherwise only Data is returned.
type Response struct {
	// Status is the HTTP status line, e.g. "200 OK".
	Status string

	// StatusCode is the numeric HTTP status.
	StatusCode int

	// Headers are the response headers.
	Headers http.Header

	// Body is the raw response body.
	Body []byte

	// Data is the decoded payload. JSON bodies decode into the Config's
	// Result target when one was supplied, else into generic Go values
	// (map[string]any, []any, ...). Non-JSON bodies decode to string.
	Data any

	raw *resty.Response
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// IsError reports whether the status code is 400 or above.
func (r *Response) IsError() bool {
	return r.StatusCode >= http.StatusBadRequest
}

// Raw exposes the underlying resty response.
func (r *Response) Raw() *resty.Response { return r.raw }

// newResponse wraps a resty response and decodes its payload. A decode
// failure into an explicit Result target is an error; best-effort
// decoding without a target falls back to the body text.
func newResponse(raw *resty.Response, result any) (*Response, error) {
	resp := &Response{
		Status:     raw.Status(),
		StatusCode: raw.StatusCode(),
		Headers:    raw.Header(),
		Body:       raw.Body(),
		raw:        raw,
	}

	body := resp.Body
	if len(body) == 0 {
		return resp, nil
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return resp, &DecodeError{Response: resp, Err: err}
		}
		resp.Data = result
		return resp, nil
	}

	if isJSONContent(raw.Header().Get("Content-Type")) {
		var v any
		if err := json.Unmarshal(body, &v); err == nil {
			resp.Data = v
			return resp, nil
		}
	}
	resp.Data = string(body)
	return resp, nil
}

func isJSONContent(contentType string) bool {
	return strings.Contains(contentType, "json")
}
