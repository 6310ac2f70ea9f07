package trace

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/fxamacker/cbor/v2"
)

// fileQueueSize bounds the events waiting for the writer goroutine.
const fileQueueSize = 256

// FileTracer appends CBOR events to a file. Trace only queues the event; a
// writer goroutine does the file I/O, so callers holding locks never wait on
// the disk. Events that arrive while the queue is full are counted and
// dropped. Safe for concurrent use.
type FileTracer struct {
	file    *os.File
	encoder *cbor.Encoder
	queue   chan Event
	done    chan struct{}
	dropped atomic.Uint64

	mu     sync.RWMutex
	closed bool
	err    error
}

// NewFileTracer opens path for appending, creating it if needed.
func NewFileTracer(path string) (*FileTracer, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	tracer := &FileTracer{
		file:    file,
		encoder: newEncoder(file),
		queue:   make(chan Event, fileQueueSize),
		done:    make(chan struct{}),
	}
	go tracer.write()
	return tracer, nil
}

// Trace queues the event. It never blocks.
func (tracer *FileTracer) Trace(event Event) {
	tracer.mu.RLock()
	defer tracer.mu.RUnlock()
	if tracer.closed {
		return
	}
	select {
	case tracer.queue <- event:
	default:
		tracer.dropped.Add(1)
	}
}

// Dropped returns how many events were lost to a full queue.
func (tracer *FileTracer) Dropped() uint64 {
	return tracer.dropped.Load()
}

func (tracer *FileTracer) write() {
	defer close(tracer.done)
	var firstErr error
	for event := range tracer.queue {
		if err := tracer.encoder.Encode(event); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("write trace event: %w", err)
		}
	}
	tracer.err = firstErr
}

// Close flushes queued events and closes the file. Later Trace calls are
// ignored. The first write error, if any, is returned.
func (tracer *FileTracer) Close() error {
	tracer.mu.Lock()
	if tracer.closed {
		tracer.mu.Unlock()
		return nil
	}
	tracer.closed = true
	close(tracer.queue)
	tracer.mu.Unlock()

	<-tracer.done
	closeErr := tracer.file.Close()
	if tracer.err != nil {
		return tracer.err
	}
	return closeErr
}

var _ Tracer = (*FileTracer)(nil)
