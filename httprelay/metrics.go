package httprelay

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// metrics holds the metric instruments for dispatched calls. Nil when
// no meter provider was configured.
type metrics struct {
	// requestDuration measures end-to-end call duration in seconds.
	requestDuration metric.Float64Histogram

	// requests counts dispatched calls.
	requests metric.Int64Counter

	// requestErrors counts failed calls.
	requestErrors metric.Int64Counter

	// inFlight tracks the number of requests currently in flight.
	inFlight metric.Int64UpDownCounter
}

// newMetrics creates and registers the metric instruments.
func newMetrics(meter metric.Meter) (*metrics, error) {
	m := &metrics{}
	var err error

	m.requestDuration, err = meter.Float64Histogram(
		"httprelay.request.duration",
		metric.WithDescription("Duration of dispatched requests in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.005, 0.01, 0.025, 0.05, 0.075, 0.1, 0.25, 0.5, 0.75, 1, 2.5, 5, 7.5, 10,
		),
	)
	if err != nil {
		return nil, err
	}

	m.requests, err = meter.Int64Counter(
		"httprelay.requests",
		metric.WithDescription("Dispatched requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	m.requestErrors, err = meter.Int64Counter(
		"httprelay.request.errors",
		metric.WithDescription("Failed requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	m.inFlight, err = meter.Int64UpDownCounter(
		"httprelay.requests.in_flight",
		metric.WithDescription("Requests currently in flight"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// trackInFlight increments the in-flight counter and returns the
// matching decrement, to be called once the request settled.
func (r *Registry) trackInFlight(ctx context.Context, inst *Instance, merged *Config) func() {
	if r.metrics == nil {
		return func() {}
	}

	method := merged.Method
	if method == "" {
		method = "GET"
	}
	set := metric.WithAttributeSet(attribute.NewSet(
		attribute.String("instance", inst.displayName()),
		attribute.String("method", method),
	))

	r.metrics.inFlight.Add(ctx, 1, set)
	return func() { r.metrics.inFlight.Add(ctx, -1, set) }
}

// recordCall records the outcome of one dispatched request.
func (r *Registry) recordCall(ctx context.Context, inst *Instance, merged *Config, resp *Response, dur time.Duration, err error) {
	if r.metrics == nil {
		return
	}

	method := merged.Method
	if method == "" {
		method = "GET"
	}
	attrs := []attribute.KeyValue{
		attribute.String("instance", inst.displayName()),
		attribute.String("method", method),
	}
	if resp != nil {
		attrs = append(attrs, attribute.Int("status_code", resp.StatusCode))
	}
	set := metric.WithAttributeSet(attribute.NewSet(attrs...))

	r.metrics.requests.Add(ctx, 1, set)
	r.metrics.requestDuration.Record(ctx, dur.Seconds(), set)
	if err != nil {
		r.metrics.requestErrors.Add(ctx, 1, set)
	}
}
