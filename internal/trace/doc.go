// Package trace records timer engine transitions for debugging.
//
// It is separate from operational logging (slog): a trace is a complete,
// machine-readable sequence of every state change and every absorbed wake,
// which is what is needed to reconstruct a tick/wake race after the fact.
//
//	// Development: trace to the console
//	tracer := trace.NewSlogTracer(slog.Default())
//
//	// Field debugging: binary file, viewed with pomodoro-trace
//	tracer, _ := trace.NewFileTracer("/tmp/pomodoro.trace")
//
// Files are a stream of CBOR-encoded Events.
package trace
