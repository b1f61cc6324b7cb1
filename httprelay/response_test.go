package httprelay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fetchResponse runs one request against a fresh registry and returns
// the full envelope.
func fetchResponse(t *testing.T, handler http.HandlerFunc, cfg Config) (*Response, error) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	reg := NewRegistry()
	require.NoError(t, reg.Define(Config{BaseURL: server.URL}))

	cfg.URL = "/"
	cfg.WithFullResponse = Bool(true)
	data, err := reg.Request(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	resp, ok := data.(*Response)
	require.True(t, ok)
	return resp, nil
}

func TestResponse_JSONBodyDecodedGenerically(t *testing.T) {
	t.Parallel()

	resp, err := fetchResponse(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"items":[1,2],"total":2}`))
	}, Config{})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"items": []any{float64(1), float64(2)},
		"total": float64(2),
	}, resp.Data)
	assert.True(t, resp.IsSuccess())
	assert.False(t, resp.IsError())
}

func TestResponse_NonJSONBodyDecodesToString(t *testing.T) {
	t.Parallel()

	resp, err := fetchResponse(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("hello"))
	}, Config{})
	require.NoError(t, err)

	assert.Equal(t, "hello", resp.Data)
	assert.Equal(t, []byte("hello"), resp.Body)
}

func TestResponse_EmptyBody(t *testing.T) {
	t.Parallel()

	resp, err := fetchResponse(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, Config{})
	require.NoError(t, err)

	assert.Nil(t, resp.Data)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestResponse_MalformedJSONIntoResultTarget(t *testing.T) {
	t.Parallel()

	var target struct {
		Name string `json:"name"`
	}
	_, err := fetchResponse(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{not json`))
	}, Config{Result: &target, SkipErrorHandler: true})

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, http.StatusOK, decodeErr.Response.StatusCode)
}

func TestResponse_MalformedJSONWithoutTargetFallsBackToText(t *testing.T) {
	t.Parallel()

	resp, err := fetchResponse(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{not json`))
	}, Config{})
	require.NoError(t, err)

	assert.Equal(t, `{not json`, resp.Data)
}

func TestResponse_RawExposesUnderlyingResponse(t *testing.T) {
	t.Parallel()

	resp, err := fetchResponse(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, Config{})
	require.NoError(t, err)

	require.NotNil(t, resp.Raw())
	assert.Equal(t, http.StatusOK, resp.Raw().StatusCode())
}
