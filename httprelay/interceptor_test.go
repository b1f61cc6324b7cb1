package httprelay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseRequestInterceptor_BareFunctionShape(t *testing.T) {
	t.Parallel()

	c := &requestChain{}

	id := useRequestInterceptor(c, RequestHook(func(*resty.Request) error { return nil }))

	require.NotEqual(t, NotRegistered, id)
	require.Equal(t, 1, c.len())
	assert.Nil(t, c.items[0].onRejected, "bare function registers no error callback")
}

func TestUseRequestInterceptor_PairShape(t *testing.T) {
	t.Parallel()

	c := &requestChain{}

	id := useRequestInterceptor(c, RequestPair{
		OnFulfilled: func(*resty.Request) error { return nil },
		OnRejected:  func(err error) error { return err },
	})

	require.NotEqual(t, NotRegistered, id)
	require.Equal(t, 1, c.len())
	assert.NotNil(t, c.items[0].onFulfilled)
	assert.NotNil(t, c.items[0].onRejected)
}

func TestUseRequestInterceptor_PairShapeFulfilledOnly(t *testing.T) {
	t.Parallel()

	c := &requestChain{}

	id := useRequestInterceptor(c, RequestPair{
		OnFulfilled: func(*resty.Request) error { return nil },
	})

	require.NotEqual(t, NotRegistered, id)
	require.Equal(t, 1, c.len())
	assert.Nil(t, c.items[0].onRejected)
}

func TestUseRequestInterceptor_ObjectShape(t *testing.T) {
	t.Parallel()

	c := &requestChain{}

	id := useRequestInterceptor(c, RequestInterceptor{
		OnRequest: func(*resty.Request) error { return nil },
		OnError:   func(err error) error { return err },
	})

	require.NotEqual(t, NotRegistered, id)
	assert.Equal(t, 1, c.len())
}

func TestUseRequestInterceptor_ObjectShapeWithoutSuccessCallback(t *testing.T) {
	t.Parallel()

	c := &requestChain{}

	id := useRequestInterceptor(c, RequestInterceptor{
		OnError: func(err error) error { return err },
	})

	assert.Equal(t, NotRegistered, id)
	assert.Equal(t, 0, c.len(), "nothing may be registered")
}

func TestUseResponseInterceptor_ObjectShapeWithoutSuccessCallback(t *testing.T) {
	t.Parallel()

	c := &responseChain{}

	id := useResponseInterceptor(c, ResponseInterceptor{
		OnError: func(err error) error { return err },
	})

	assert.Equal(t, NotRegistered, id)
	assert.Equal(t, 0, c.len())
}

func TestUseRequestInterceptor_NilDeclaration(t *testing.T) {
	t.Parallel()

	c := &requestChain{}

	assert.Equal(t, NotRegistered, useRequestInterceptor(c, nil))
	assert.Equal(t, NotRegistered, useRequestInterceptor(c, RequestHook(nil)))
	assert.Equal(t, 0, c.len())
}

func TestAuthBearerHook(t *testing.T) {
	t.Parallel()

	var capturedAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	reg := NewRegistry()
	require.NoError(t, reg.Define(Config{
		BaseURL: server.URL,
		Interceptors: Interceptors{
			Request: []RequestInterceptorDecl{AuthBearerHook("test-token-123")},
		},
	}))

	_, err := reg.Get(context.Background(), "/test")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token-123", capturedAuth)
}

func TestAPIKeyHook(t *testing.T) {
	t.Parallel()

	var capturedAPIKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedAPIKey = r.Header.Get("X-API-Key")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	reg := NewRegistry()
	require.NoError(t, reg.Define(Config{
		BaseURL: server.URL,
		Interceptors: Interceptors{
			Request: []RequestInterceptorDecl{APIKeyHook("X-API-Key", "my-secret-key")},
		},
	}))

	_, err := reg.Get(context.Background(), "/test")
	require.NoError(t, err)

	assert.Equal(t, "my-secret-key", capturedAPIKey)
}

func TestCorrelationIDHook_FreshIDPerRequest(t *testing.T) {
	t.Parallel()

	var captured []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = append(captured, r.Header.Get("X-Correlation-ID"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	reg := NewRegistry()
	require.NoError(t, reg.Define(Config{
		BaseURL: server.URL,
		Interceptors: Interceptors{
			Request: []RequestInterceptorDecl{CorrelationIDHook("X-Correlation-ID")},
		},
	}))

	_, err := reg.Get(context.Background(), "/a")
	require.NoError(t, err)
	_, err = reg.Get(context.Background(), "/b")
	require.NoError(t, err)

	require.Len(t, captured, 2)
	for _, id := range captured {
		_, parseErr := uuid.Parse(id)
		assert.NoError(t, parseErr)
	}
	assert.NotEqual(t, captured[0], captured[1])
}

func TestUserAgentHook(t *testing.T) {
	t.Parallel()

	var capturedUA string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	reg := NewRegistry()
	require.NoError(t, reg.Define(Config{
		BaseURL: server.URL,
		Interceptors: Interceptors{
			Request: []RequestInterceptorDecl{UserAgentHook("MyApp/1.0")},
		},
	}))

	_, err := reg.Get(context.Background(), "/test")
	require.NoError(t, err)

	assert.Equal(t, "MyApp/1.0", capturedUA)
}
