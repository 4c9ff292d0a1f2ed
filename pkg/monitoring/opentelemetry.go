package monitoring

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.25.0"
)

type Monitoring interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

type openTelemetry struct {
	serviceName  string
	environment  string
	otlpEndpoint string
	provider     *sdktrace.TracerProvider
}

// NewOpenTelemetry builds a tracing setup exporting OTLP/HTTP spans to the
// given collector endpoint. An empty endpoint disables exporting but keeps
// trace contexts flowing through the handlers.
func NewOpenTelemetry(serviceName, environment, otlpEndpoint string) Monitoring {
	return &openTelemetry{
		serviceName:  serviceName,
		environment:  environment,
		otlpEndpoint: otlpEndpoint,
	}
}

func (o *openTelemetry) Start(ctx context.Context) error {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(o.serviceName),
			semconv.DeploymentEnvironment(o.environment),
		),
	)
	if err != nil {
		return err
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}

	if o.otlpEndpoint != "" {
		exporter, err := otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(o.otlpEndpoint),
			otlptracehttp.WithInsecure(),
		)
		if err != nil {
			return err
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	o.provider = sdktrace.NewTracerProvider(opts...)

	otel.SetTracerProvider(o.provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return nil
}

func (o *openTelemetry) Stop(ctx context.Context) error {
	if o.provider == nil {
		return nil
	}

	return o.provider.Shutdown(ctx)
}
