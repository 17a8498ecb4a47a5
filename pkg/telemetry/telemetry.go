package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/jdziat/simple-invocation-wrappers/pkg/core"
	intctx "github.com/jdziat/simple-invocation-wrappers/pkg/internal/context"
)

// TracerName is the instrumentation scope used by Tracer.
const TracerName = "github.com/jdziat/simple-invocation-wrappers"

// Setup initialises OpenTelemetry tracing for the given service.
//
// When cfg is not active Setup returns a no-op shutdown function and no
// global provider is registered. The returned shutdown function flushes
// pending spans and should be deferred by the caller.
func Setup(ctx context.Context, serviceName string, cfg Config) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Active() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(cfg.Endpoint),
	)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns the package tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// Middleware starts one span per forwarded call. Unit errors are recorded on
// the span and returned unchanged.
func Middleware(tracer trace.Tracer, name string) core.Middleware {
	if tracer == nil {
		tracer = Tracer()
	}
	return func(next core.Invoker) core.Invoker {
		return core.InvokerFunc(func(ctx context.Context, args core.Args) (any, error) {
			attrs := []attribute.KeyValue{
				attribute.String("wrapper.name", name),
				attribute.Int("arg.count", args.Len()),
			}
			if inv := intctx.GetInvocation(ctx); inv != nil {
				attrs = append(attrs, attribute.String("invocation.id", inv.ID))
			}

			ctx, span := tracer.Start(ctx, "invoke "+name, trace.WithAttributes(attrs...))
			defer span.End()

			result, err := next.Invoke(ctx, args)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				if core.IsRejection(err) {
					span.SetAttributes(attribute.Bool("invocation.rejected", true))
				}
				return result, err
			}
			span.SetStatus(codes.Ok, "")
			return result, nil
		})
	}
}
