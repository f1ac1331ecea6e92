package session

import (
	"bufio"
	"io"
	"sync"

	"github.com/dshills/keyscribe/internal/input/key"
)

// Recorder appends events to a writer, one JSON line each.
type Recorder struct {
	mu    sync.Mutex
	w     *bufio.Writer
	count int
}

// NewRecorder creates a recorder writing to w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: bufio.NewWriter(w)}
}

// Record writes one event.
func (r *Recorder) Record(ev key.Event) error {
	line, err := Encode(ev)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.w.WriteString(line); err != nil {
		return err
	}
	if err := r.w.WriteByte('\n'); err != nil {
		return err
	}
	r.count++
	return nil
}

// Flush writes any buffered lines.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.w.Flush()
}

// Count returns the number of events recorded.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
