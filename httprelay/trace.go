package httprelay

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// startSpan opens the per-call client span. The span name follows the
// "HTTP {method}" convention; the instance name rides along as an
// attribute so multi-backend traces stay distinguishable.
func (r *Registry) startSpan(ctx context.Context, inst *Instance, merged *Config) (context.Context, trace.Span) {
	method := merged.Method
	if method == "" {
		method = "GET"
	}
	return r.tracer.Start(ctx, "HTTP "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", merged.URL),
			attribute.String("httprelay.instance", inst.displayName()),
		),
	)
}

func finishSpanSuccess(span trace.Span, resp *Response) {
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	span.SetStatus(codes.Ok, "")
}

func finishSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
