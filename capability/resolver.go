// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package capability

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// UnknownParamPolicy decides what happens to parameters a definition does
// not declare.
type UnknownParamPolicy string

const (
	UnknownReject UnknownParamPolicy = "reject"
	UnknownDrop   UnknownParamPolicy = "drop"
)

// ParseUnknownParamPolicy parses a policy name. Empty means reject.
func ParseUnknownParamPolicy(s string) (UnknownParamPolicy, error) {
	switch UnknownParamPolicy(s) {
	case "", UnknownReject:
		return UnknownReject, nil
	case UnknownDrop:
		return UnknownDrop, nil
	}
	return "", fmt.Errorf("unknown parameter policy %q (want reject or drop)", s)
}

// Resolver validates parameters against a capability's schema and runs its
// provider.
type Resolver struct {
	catalog *Catalog
	strict  bool
	unknown UnknownParamPolicy
	logger  *slog.Logger
	tracer  trace.Tracer
}

type Option func(*Resolver)

// WithStrictTypes requires parameter values to already have their declared
// type. When false, strings and scalars are coerced.
func WithStrictTypes(strict bool) Option {
	return func(r *Resolver) { r.strict = strict }
}

func WithUnknownParams(policy UnknownParamPolicy) Option {
	return func(r *Resolver) { r.unknown = policy }
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

func WithTracer(tracer trace.Tracer) Option {
	return func(r *Resolver) { r.tracer = tracer }
}

func NewResolver(catalog *Catalog, opts ...Option) *Resolver {
	r := &Resolver{
		catalog: catalog,
		strict:  true,
		unknown: UnknownReject,
		logger:  slog.Default(),
		tracer:  otel.Tracer("github.com/danielhkuo/folio/capability"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Catalog returns the catalog the resolver reads from.
func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

// Resolve validates input against the capability registered under key and
// executes its provider. Provider failures, including panics, are returned
// as *ExecutionError.
func (r *Resolver) Resolve(ctx context.Context, key Key, input map[string]any, ec ExecutionContext) (result any, err error) {
	ctx, span := r.tracer.Start(ctx, "capability.resolve",
		trace.WithAttributes(attribute.String("capability.key", string(key))))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	def, provider, err := r.catalog.Lookup(key)
	if err != nil {
		return nil, err
	}

	params, err := r.Validate(def, input)
	if err != nil {
		return nil, err
	}

	return r.execute(ctx, def, provider, params, ec)
}

func (r *Resolver) execute(ctx context.Context, def Definition, provider Provider, params Params, ec ExecutionContext) (result any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			perr := fmt.Errorf("panic: %v", rec)
			r.logger.Error("capability execution panicked", "capability", def.Key, "error", perr)
			result, err = nil, &ExecutionError{Key: def.Key, Err: perr}
		}
	}()

	result, err = provider.Execute(ctx, params, ec)
	if err != nil {
		r.logger.Error("capability execution failed", "capability", def.Key, "error", err)
		return nil, &ExecutionError{Key: def.Key, Err: err}
	}
	return result, nil
}

// Validate checks input against def and returns normalized params with
// defaults applied. Every problem is reported in one *ValidationError.
func (r *Resolver) Validate(def Definition, input map[string]any) (Params, error) {
	verr := &ValidationError{Key: def.Key}
	params := make(Params, len(def.Parameters))

	unknown := make([]string, 0)
	for name := range input {
		if _, ok := def.Parameter(name); !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		if r.unknown == UnknownDrop {
			r.logger.Debug("dropping unknown capability parameter", "capability", def.Key, "param", name)
			continue
		}
		verr.Problems = append(verr.Problems, fmt.Sprintf("%s: unknown parameter", name))
	}

	for _, p := range def.Parameters {
		raw, present := input[p.Name]
		if !present || raw == nil {
			if p.Required {
				verr.Problems = append(verr.Problems, fmt.Sprintf("%s: required", p.Name))
				continue
			}
			if p.Default != nil {
				v, err := normalize(p.Type, p.Default, false)
				if err != nil {
					verr.Problems = append(verr.Problems, fmt.Sprintf("%s: bad default: %v", p.Name, err))
					continue
				}
				params[p.Name] = v
			}
			continue
		}

		v, err := normalize(p.Type, raw, r.strict)
		if err != nil {
			verr.Problems = append(verr.Problems, fmt.Sprintf("%s: %v", p.Name, err))
			continue
		}
		params[p.Name] = v
	}

	if len(verr.Problems) > 0 {
		return nil, verr
	}
	return params, nil
}
