// Package httprelay is a thin multi-instance convenience layer over
// resty. It keeps a process-wide registry of named client instances,
// normalizes the several accepted interceptor declaration shapes onto
// ejectable per-instance chains, and dispatches requests with per-call
// error-handling policy and one-shot interceptors.
//
// # Quick Start
//
// Register a default instance once during startup, then call it from
// anywhere:
//
//	err := httprelay.Define(httprelay.Config{
//	    BaseURL: "https://api.example.com",
//	    Timeout: 15 * time.Second,
//	})
//
//	users, err := httprelay.Get(ctx, "/users")
//
// # Named Instances
//
// Multiple backends coexist under distinct names:
//
//	err := httprelay.Define(
//	    httprelay.Config{BaseURL: "https://api.example.com"},
//	    httprelay.Config{InstanceName: "billing", BaseURL: "https://billing.example.com"},
//	)
//
//	invoice, err := httprelay.Get(ctx, "/invoices/42", httprelay.Config{
//	    InstanceName: "billing",
//	})
//
// The default instance may be defined only once; a repeat unnamed Define
// before any named instance exists is a harmless no-op, while duplicate
// named definitions fail with ErrDuplicateInstance.
//
// # Interceptors
//
// Interceptors declared at Define time are permanent for the instance's
// lifetime. Interceptors declared on a per-call Config are one-shot:
// attached immediately before the request and removed afterwards whether
// the call succeeded or failed. One-shot interceptors live on the shared
// instance chains, so two overlapping calls against the same instance can
// observe each other's one-shot interceptors while both are in flight.
// This mirrors the per-instance chain model and is a documented
// limitation, not a defect.
//
// # Error Policy
//
// Error handlers are observers: the original failure still reaches the
// caller after the handler runs. A handler that itself returns an error
// replaces the propagated failure. SkipErrorHandler bypasses handlers
// entirely. Registry errors (unknown instance, duplicate definitions)
// are configuration mistakes and are never routed through handlers.
package httprelay
