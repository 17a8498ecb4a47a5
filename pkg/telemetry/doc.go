// Package telemetry traces invocations with OpenTelemetry.
//
// Tracing is opt-in: Setup installs a global OTLP/HTTP tracer provider only
// when an endpoint is configured. Middleware works with any trace.Tracer, so
// tests can use an in-memory span recorder.
package telemetry
