// Package telemetry provides OpenTelemetry instrumentation for countdown.
//
// Spans and metrics are exported over OTLP (gRPC or HTTP) to a collector
// when enabled:
//
//	tel, err := telemetry.New(ctx, telemetry.FromConfig(cfg.Telemetry, version))
//	if err != nil {
//	    return err
//	}
//	defer tel.Shutdown(context.Background())
//
//	ctx, span := tel.Tracer("countdown.solver").Start(ctx, "solver.Solve")
//	defer span.End()
//
// Configuration:
//
//	telemetry:
//	  enabled: true
//	  endpoint: "localhost:4317"
//	  protocol: grpc
//	  sampling_rate: 1.0
//
// Failures to reach a collector leave the instance degraded with no-op
// providers; they are reported through Problems.
//
// Tests use NewTestTelemetry, which records spans and metrics in memory.
package telemetry
