// Package eventlog carries the log records produced by the dispatcher.
//
// Every observed event and every recognized action produces one Record.
// Records flow into a Sink; Feed is the bounded sink that keeps only the
// most recent records for the inspection panel.
package eventlog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Record types produced by the dispatcher.
const (
	TypeKeyDown = "keydown"
	TypeInput   = "input"
	TypeAction  = "action"
	TypeSystem  = "system"
)

// Record is a single log entry.
type Record struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Key     string    `json:"key,omitempty"`
	Code    string    `json:"code,omitempty"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// New creates a record with a fresh ID and the current time.
func New(typ, message string) Record {
	return Record{
		ID:      uuid.NewString(),
		Type:    typ,
		Message: message,
		Time:    time.Now(),
	}
}

// WithKey returns a copy of the record carrying the key and code.
func (r Record) WithKey(k, code string) Record {
	r.Key = k
	r.Code = code
	return r
}

// String returns a one-line summary.
func (r Record) String() string {
	if r.Key != "" || r.Code != "" {
		return fmt.Sprintf("[%s] %s (key=%s code=%s)", r.Type, r.Message, r.Key, r.Code)
	}
	return fmt.Sprintf("[%s] %s", r.Type, r.Message)
}

// Sink consumes records.
type Sink interface {
	Append(Record)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Record)

// Append calls f(r).
func (f SinkFunc) Append(r Record) {
	f(r)
}

// MultiSink fans records out to several sinks in order.
type MultiSink []Sink

// Append forwards r to every non-nil sink.
func (m MultiSink) Append(r Record) {
	for _, s := range m {
		if s != nil {
			s.Append(r)
		}
	}
}
