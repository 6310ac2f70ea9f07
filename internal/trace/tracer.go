package trace

// Tracer receives engine transition events. Implementations must be safe for
// concurrent use and must not block; the engine calls Trace while holding
// its lock.
type Tracer interface {
	Trace(event Event)
}

// NoopTracer discards all events.
type NoopTracer struct{}

// Trace discards the event.
func (NoopTracer) Trace(Event) {}

// MultiTracer fans events out to several tracers.
type MultiTracer struct {
	tracers []Tracer
}

// NewMultiTracer returns a tracer that forwards to every non-nil tracer.
func NewMultiTracer(tracers ...Tracer) *MultiTracer {
	kept := make([]Tracer, 0, len(tracers))
	for _, tracer := range tracers {
		if tracer != nil {
			kept = append(kept, tracer)
		}
	}
	return &MultiTracer{tracers: kept}
}

// Trace forwards the event.
func (multi *MultiTracer) Trace(event Event) {
	for _, tracer := range multi.tracers {
		tracer.Trace(event)
	}
}

var (
	_ Tracer = NoopTracer{}
	_ Tracer = (*MultiTracer)(nil)
)
