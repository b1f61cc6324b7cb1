// Command basic demonstrates registering instances and dispatching
// requests through the httprelay layer.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/kroma-labs/relay-go/httprelay"
)

func main() {
	reg := httprelay.NewRegistry(
		httprelay.WithLogger(zerolog.New(os.Stdout).With().Timestamp().Logger()),
	)

	err := reg.Define(
		// Default instance with a permanent correlation-ID interceptor.
		httprelay.Config{
			BaseURL: "https://httpbin.org",
			Timeout: 15 * time.Second,
			Interceptors: httprelay.Interceptors{
				Request: []httprelay.RequestInterceptorDecl{
					httprelay.CorrelationIDHook("X-Request-ID"),
				},
			},
			ErrorConfig: &httprelay.ErrorConfig{
				ErrorHandler: func(err error, _ *httprelay.Config) error {
					log.Printf("request failed: %v", err)
					return nil
				},
			},
		},
		// A named instance for a second backend.
		httprelay.Config{
			InstanceName: "postman",
			BaseURL:      "https://postman-echo.com",
		},
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// Payload only.
	data, err := reg.Get(ctx, "/get")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("payload: %v\n", data)

	// Full envelope, one-shot auth interceptor for this call only.
	full, err := reg.Get(ctx, "/get", httprelay.Config{
		InstanceName:     "postman",
		WithFullResponse: httprelay.Bool(true),
		Interceptors: httprelay.Interceptors{
			Request: []httprelay.RequestInterceptorDecl{
				httprelay.AuthBearerHook("demo-token"),
			},
		},
	})
	if err != nil {
		log.Fatal(err)
	}
	resp := full.(*httprelay.Response)
	fmt.Printf("status: %d, content-type: %s\n", resp.StatusCode, resp.Headers.Get("Content-Type"))

	// Typed decoding.
	var echo struct {
		URL string `json:"url"`
	}
	if _, err := reg.Get(ctx, "/get", httprelay.Config{
		InstanceName: "postman",
		Result:       &echo,
	}); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("echoed url: %s\n", echo.URL)
}
