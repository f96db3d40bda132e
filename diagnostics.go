package arsgo

import (
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/arsgo/envelope"
)

// DiagnosticsCollector defines an interface for collecting structured
// diagnostics from a sampling session. Implement this interface to integrate
// with monitoring systems; see BasicDiagnostics for a ready-made in-memory
// collector.
type DiagnosticsCollector interface {
	// RecordClamp is called when segment integration clamps an exponent to
	// keep a weight finite. The affected weight carries a small bias.
	RecordClamp(e envelope.ClampEvent)

	// RecordRefine is called after a rejected candidate's tangent has been
	// inserted. segments is the new envelope segment count.
	RecordRefine(segments int)

	// RecordRatioAboveOne is called when an acceptance ratio exceeds 1,
	// which signals a non-log-concave input or a degenerate envelope.
	RecordRatioAboveOne(x, ratio float64)

	// RecordRun is called once per Run with the session totals.
	// err is nil if the run completed.
	RecordRun(n, accepted, rejected int, duration time.Duration, err error)
}

// NoopDiagnostics is a no-op implementation of DiagnosticsCollector.
// Use this when diagnostics collection is not needed.
type NoopDiagnostics struct{}

func (NoopDiagnostics) RecordClamp(envelope.ClampEvent)               {}
func (NoopDiagnostics) RecordRefine(int)                              {}
func (NoopDiagnostics) RecordRatioAboveOne(float64, float64)          {}
func (NoopDiagnostics) RecordRun(int, int, int, time.Duration, error) {}

// BasicDiagnostics provides simple in-memory diagnostics collection.
// Useful for debugging and tests without external dependencies.
type BasicDiagnostics struct {
	Clamps         atomic.Int64
	Refinements    atomic.Int64
	RatiosAboveOne atomic.Int64
	Runs           atomic.Int64
	RunErrors      atomic.Int64
	Accepted       atomic.Int64
	Rejected       atomic.Int64
}

func (d *BasicDiagnostics) RecordClamp(envelope.ClampEvent) {
	d.Clamps.Add(1)
}

func (d *BasicDiagnostics) RecordRefine(int) {
	d.Refinements.Add(1)
}

func (d *BasicDiagnostics) RecordRatioAboveOne(float64, float64) {
	d.RatiosAboveOne.Add(1)
}

func (d *BasicDiagnostics) RecordRun(n, accepted, rejected int, _ time.Duration, err error) {
	d.Runs.Add(1)
	d.Accepted.Add(int64(accepted))
	d.Rejected.Add(int64(rejected))
	if err != nil {
		d.RunErrors.Add(1)
	}
}

// LoggingDiagnostics logs diagnostics through a Logger. Clamp and ratio
// warnings are rate limited so repeated instability during a long Run does
// not flood the output; dropped warnings are counted and reported with the
// run summary.
type LoggingDiagnostics struct {
	logger  *Logger
	limiter *rate.Limiter
	dropped atomic.Int64
}

// NewLoggingDiagnostics creates a LoggingDiagnostics writing to logger.
// If logger is nil, a default text logger to stderr is used.
func NewLoggingDiagnostics(logger *Logger) *LoggingDiagnostics {
	if logger == nil {
		logger = NewLogger(nil)
	}
	return &LoggingDiagnostics{
		logger:  logger,
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
	}
}

func (d *LoggingDiagnostics) RecordClamp(e envelope.ClampEvent) {
	if !d.limiter.Allow() {
		d.dropped.Add(1)
		return
	}
	d.logger.Warn("numerical instability: exponent clamped",
		"segment", e.Segment,
		"quantity", e.Quantity,
		"value", e.Value,
		"threshold", e.Threshold,
	)
}

func (d *LoggingDiagnostics) RecordRefine(segments int) {
	d.logger.Debug("envelope refined", "segments", segments)
}

func (d *LoggingDiagnostics) RecordRatioAboveOne(x, ratio float64) {
	if !d.limiter.Allow() {
		d.dropped.Add(1)
		return
	}
	d.logger.Warn("acceptance ratio above one; input may not be log-concave",
		"x", x,
		"ratio", ratio,
	)
}

func (d *LoggingDiagnostics) RecordRun(n, accepted, rejected int, duration time.Duration, err error) {
	if err != nil {
		d.logger.Error("run failed",
			"n", n,
			"accepted", accepted,
			"rejected", rejected,
			"duration", duration,
			"error", err,
		)
		return
	}
	d.logger.Info("run complete",
		"n", n,
		"accepted", accepted,
		"rejected", rejected,
		"duration", duration,
		"dropped_warnings", d.dropped.Load(),
	)
}

// sinkAdapter bridges a DiagnosticsCollector into the envelope package's
// DiagnosticSink.
type sinkAdapter struct {
	c DiagnosticsCollector
}

func (a sinkAdapter) RecordClamp(e envelope.ClampEvent) {
	a.c.RecordClamp(e)
}
