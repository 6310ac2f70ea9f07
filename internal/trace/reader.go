package trace

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
)

// Reader reads events from a trace stream.
type Reader struct {
	decoder *cbor.Decoder
	closer  io.Closer
}

// NewReader reads events from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{decoder: newDecoder(r)}
}

// OpenFile opens a trace file for reading.
func OpenFile(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	return &Reader{decoder: newDecoder(file), closer: file}, nil
}

// Next returns the next event, or io.EOF at the end of the stream.
func (reader *Reader) Next() (Event, error) {
	var event Event
	if err := reader.decoder.Decode(&event); err != nil {
		if errors.Is(err, io.EOF) {
			return Event{}, io.EOF
		}
		return Event{}, fmt.Errorf("decode trace event: %w", err)
	}
	return event, nil
}

// ReadAll returns every remaining event.
func (reader *Reader) ReadAll() ([]Event, error) {
	var events []Event
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, event)
	}
}

// Close releases the underlying file, if any.
func (reader *Reader) Close() error {
	if reader.closer == nil {
		return nil
	}
	return reader.closer.Close()
}
