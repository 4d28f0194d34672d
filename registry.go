package goidl

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	js "github.com/reoring/goidl/jsonschema"
)

// RegistryOption configures a Registry.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	name   string
	logger *zap.Logger
}

// WithLogger attaches a logger. Registrations, overwrites and lookup misses
// are logged at debug level. The default logger discards everything.
func WithLogger(l *zap.Logger) RegistryOption {
	return func(c *registryConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithName sets the name used in unknown type messages ("<name>.Create").
func WithName(name string) RegistryOption {
	return func(c *registryConfig) { c.name = name }
}

// Registry maps full class names to constructors so that the concrete type
// behind a polymorphic envelope can be rebuilt from a reference to its base
// type. It is safe for concurrent use.
type Registry[T any] struct {
	mu      sync.RWMutex
	ctors   map[string]Constructor[T]
	schemas map[string]*Descriptor
	name    string
	log     *zap.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry[T any](opts ...RegistryOption) *Registry[T] {
	cfg := registryConfig{name: "Struct", logger: zap.NewNop()}
	for _, o := range opts {
		o(&cfg)
	}
	return &Registry[T]{
		ctors:   map[string]Constructor[T]{},
		schemas: map[string]*Descriptor{},
		name:    cfg.name,
		log:     cfg.logger.With(zap.String("registry", cfg.name)),
	}
}

// Name returns the registry name.
func (r *Registry[T]) Name() string { return r.name }

// Register binds name to ctor, replacing any previous binding. Replacing is
// how extended implementations take over an existing class name. A nil ctor
// removes the binding.
func (r *Registry[T]) Register(name string, ctor Constructor[T]) {
	r.RegisterDescribed(name, ctor, nil)
}

// RegisterDescribed is Register plus the descriptor of the produced type,
// which JSONSchema uses. A nil d drops any descriptor of a replaced binding.
func (r *Registry[T]) RegisterDescribed(name string, ctor Constructor[T], d *Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ctor == nil {
		delete(r.ctors, name)
		delete(r.schemas, name)
		r.log.Debug("unregistered", zap.String("type", name))
		return
	}
	_, replaced := r.ctors[name]
	r.ctors[name] = ctor
	if d != nil {
		r.schemas[name] = d
	} else {
		delete(r.schemas, name)
	}
	if replaced {
		r.log.Debug("registration replaced", zap.String("type", name))
		return
	}
	r.log.Debug("registered", zap.String("type", name))
}

// Lookup returns the constructor bound to name.
func (r *Registry[T]) Lookup(name string) (Constructor[T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.ctors[name]
	return c, ok
}

// Names returns the registered names in sorted order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.ctors))
	for k := range r.ctors {
		out = append(out, k)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

// Len returns the number of bindings.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ctors)
}

// Create builds the type named by env.Type from env.Data.
func (r *Registry[T]) Create(env Envelope) (T, error) {
	var zero T
	ctor, ok := r.Lookup(env.Type)
	if !ok {
		r.log.Debug("unknown polymorphic type", zap.String("type", env.Type))
		return zero, Issues{NewIssue("/", CodeUnknownType, map[string]string{"type": env.Type, "registry": r.name})}
	}
	v, err := ctor(env.Data)
	if err != nil {
		if iss, ok := AsIssues(err); ok {
			return zero, iss.WithPrefix(EnvelopePath(env.Type))
		}
		return zero, err
	}
	return v, nil
}

// CreateFrom builds a value from the raw single-key mapping form of an
// envelope. Mappings with zero or several keys are rejected.
func (r *Registry[T]) CreateFrom(m map[string]any) (T, error) {
	env, err := EnvelopeFromMap(m)
	if err != nil {
		var zero T
		return zero, err
	}
	return r.Create(env)
}

// JSONSchema describes every envelope the registry accepts as a oneOf of
// single-key objects. Types registered without a descriptor accept any object.
func (r *Registry[T]) JSONSchema() *js.Schema {
	names := r.Names()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := &js.Schema{Schema: js.Draft, Title: r.name}
	for _, n := range names {
		body := &js.Schema{Type: "object"}
		if d, ok := r.schemas[n]; ok {
			body = d.JSONSchema()
		}
		out.OneOf = append(out.OneOf, js.Envelope(n, body))
	}
	return out
}

// String lists the registry for diagnostics.
func (r *Registry[T]) String() string {
	names := r.Names()
	return r.name + "[" + strconv.Itoa(len(names)) + "]{" + strings.Join(names, ",") + "}"
}
