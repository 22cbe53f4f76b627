// Package tracing wraps batches in OpenTelemetry spans.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AnatoleLucet/sigcore"
)

// Default tracer name.
const defaultTracerName = "sigcore"

type Config struct {
	// TracerName is the name of the tracer (default: "sigcore").
	TracerName string

	// TracerProvider provides the tracer. If nil, the global provider is used.
	TracerProvider trace.TracerProvider
}

type Option func(*Config)

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider instead of the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.TracerProvider = tp
	}
}

// Batch runs fn in a sigcore.Batch inside a span named "sigcore.batch <name>".
//
// The span carries the runtime id and how many writes, recomputes and callbacks
// happened during the batch, flush included. A panic in fn is recorded on the
// span and re-raised.
func Batch(ctx context.Context, name string, fn func(), opts ...Option) {
	config := Config{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	rt := sigcore.CurrentRuntime()
	before := rt.Stats()

	_, span := tp.Tracer(config.TracerName).Start(ctx, "sigcore.batch "+name,
		trace.WithAttributes(attribute.String("sigcore.runtime", rt.ID())),
	)
	defer span.End()

	defer func() {
		after := rt.Stats()
		span.SetAttributes(
			attribute.Int64("sigcore.writes", int64(after.Writes-before.Writes)),
			attribute.Int64("sigcore.recomputes", int64(after.Recomputes-before.Recomputes)),
			attribute.Int64("sigcore.callbacks", int64(after.Callbacks-before.Callbacks)),
		)

		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			panic(r)
		}
	}()

	sigcore.Batch(fn)
}
