package stepline

import (
	"github.com/viant/afs/storage"

	"github.com/stepline/stepline/policy"
	"github.com/stepline/stepline/service/event"
	"github.com/stepline/stepline/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises the Service.
type Option func(s *Service)

// WithConfig applies a serialisable configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) { s.config = config }
}

// WithEventService sets the event service shared with the engine.
func WithEventService(events *event.Service) Option {
	return func(s *Service) { s.events = events }
}

// WithBackoffPolicy sets the default backoff policy applied between retry
// attempts.
func WithBackoffPolicy(p *policy.Policy) Option {
	return func(s *Service) { s.backoff = p }
}

// WithMetaBaseURL sets the base URL workflow locations are resolved against.
func WithMetaBaseURL(baseURL string) Option {
	return func(s *Service) { s.metaBaseURL = baseURL }
}

// WithMetaFsOptions sets storage options used when loading workflow
// definitions (e.g. an embedded file system).
func WithMetaFsOptions(options ...storage.Option) Option {
	return func(s *Service) { s.metaFsOptions = options }
}

// WithTracing configures OpenTelemetry tracing. If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied file
// path. Safe to call multiple times - the first successful initialisation
// wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom
// SpanExporter, enabling integrations such as OTLP, Jaeger or Zipkin.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
