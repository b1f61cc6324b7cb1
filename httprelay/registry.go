package httprelay

import (
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// scope is the instrumentation scope name for OpenTelemetry.
const scope = "github.com/kroma-labs/relay-go/httprelay"

// Registry maps logical instance names to configured client instances.
// The default (unnamed) instance occupies its own slot rather than a
// reserved map key, so no user-chosen name can collide with it.
//
// The package-level functions operate on a process-wide default
// registry; independent registries can be constructed for tests or for
// isolated subsystems.
type Registry struct {
	mu    sync.RWMutex
	def   *Instance
	named map[string]*Instance

	logger  zerolog.Logger
	tracer  trace.Tracer
	metrics *metrics

	meterProvider metric.MeterProvider
}

// RegistryOption customizes a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the registry's logger. The default discards all
// output.
func WithLogger(logger zerolog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithTracerProvider sets the tracer provider used for per-call spans.
// The global OpenTelemetry provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) RegistryOption {
	return func(r *Registry) {
		r.tracer = tp.Tracer(scope)
	}
}

// WithMeterProvider enables metric collection (request counts,
// durations, errors, in-flight requests) through the given provider.
// Metrics are disabled when unset.
func WithMeterProvider(mp metric.MeterProvider) RegistryOption {
	return func(r *Registry) {
		r.meterProvider = mp
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		named:  make(map[string]*Instance),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer(scope)
	}
	if r.meterProvider != nil {
		m, err := newMetrics(r.meterProvider.Meter(scope))
		if err != nil {
			r.logger.Warn().Err(err).Msg("metric instruments unavailable, metrics disabled")
		} else {
			r.metrics = m
		}
	}
	return r
}

// Define registers one instance per configuration, in order.
//
// An unnamed configuration defines the default instance. Defining the
// default a second time is a warning-level no-op as long as no named
// instance exists (the first definition stays authoritative); once
// named instances exist, an unnamed configuration fails with
// ErrDefaultExists. A named configuration whose name is already taken
// fails with ErrDuplicateInstance and leaves the registry untouched.
//
// Interceptors declared on the configuration are attached permanently.
func (r *Registry) Define(cfgs ...Config) error {
	for i := range cfgs {
		if err := r.define(cfgs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) define(cfg Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := cfg.InstanceName
	if name == "" {
		if r.def != nil {
			if len(r.named) == 0 {
				r.logger.Warn().Msg("default instance already defined, ignoring repeated definition")
				return nil
			}
			return ErrDefaultExists
		}
		r.def = r.buildInstance("", cfg)
		return nil
	}

	if _, exists := r.named[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateInstance, name)
	}
	r.named[name] = r.buildInstance(name, cfg)
	return nil
}

// buildInstance constructs the instance and attaches its permanent
// interceptors. Caller holds the write lock.
func (r *Registry) buildInstance(name string, cfg Config) *Instance {
	inst := newInstance(name, cfg)
	inst.attachInterceptors(&cfg, false)
	r.logger.Info().
		Str("instance", inst.displayName()).
		Str("base_url", cfg.BaseURL).
		Msg("request instance defined")
	return inst
}

// Instance returns the instance registered under name, or the default
// instance when name is empty. Unknown names fail with
// ErrInstanceNotFound naming the requested identifier.
func (r *Registry) Instance(name string) (*Instance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		if r.def == nil {
			return nil, fmt.Errorf("%w: %q", ErrInstanceNotFound, "default")
		}
		return r.def, nil
	}
	if inst, ok := r.named[name]; ok {
		return inst, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInstanceNotFound, name)
}

// defaultRegistry backs the package-level API. It logs to stderr; use
// an explicit Registry for anything fancier.
var defaultRegistry = NewRegistry(
	WithLogger(zerolog.New(os.Stderr).With().Timestamp().Logger()),
)

// Default returns the process-wide registry used by the package-level
// functions.
func Default() *Registry { return defaultRegistry }

// Define registers instances on the default registry. See
// Registry.Define.
func Define(cfgs ...Config) error { return defaultRegistry.Define(cfgs...) }

// GetInstance looks up an instance on the default registry. See
// Registry.Instance.
func GetInstance(name string) (*Instance, error) { return defaultRegistry.Instance(name) }
