// Package logging provides structured logging for countdown.
//
// # Overview
//
// Logging wraps Zap with:
//   - Custom Trace level (-2, below Debug)
//   - Stderr output, so that solutions printed on stdout stay clean
//   - Optional OpenTelemetry log bridge
//   - Automatic context field injection (trace_id, run.id, run.token)
//   - Level-aware sampling (errors never sampled)
//
// # Usage
//
//	cfg := logging.NewDefaultConfig()
//	logger, err := logging.NewLogger(cfg, os.Stderr, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
//	ctx = logging.WithRun(ctx, run.ID.String(), run.Token)
//	logger.Info(ctx, "run finished", zap.Int("terms", n))
//
// # Sampling
//
// Enumeration can log per batch, so sampling is on by default:
//   - Trace: first 1 per second, drop rest
//   - Debug: first 10 per second, drop rest
//   - Info: first 100, then 1 every 10
//   - Warn: first 100, then 1 every 100
//   - Error+: never sampled
//
// # Testing
//
//	tl := logging.NewTestLogger()
//	svc := solver.NewService(nil, tl.Logger)
//	...
//	tl.AssertLogged(t, zapcore.InfoLevel, "solve finished")
//	tl.AssertField(t, "solve finished", "solutions", int64(8))
//
// Logger is safe for concurrent use. Child loggers (With, Named) do not
// affect their parent.
package logging
