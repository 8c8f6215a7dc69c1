// Package httpapi exposes a junction controller over a JSON HTTP API and
// owns the presentation concerns the core delegates: timestamping and
// retention of transition notices, wire encoding of snapshots, and CORS.
package httpapi

import (
	"fmt"
	"sync"

	"github.com/anggasct/junction"
)

// logRetention is how many notices the logbook keeps
const logRetention = 50

// logServed is how many notices status responses include
const logServed = 12

// Logbook is the rolling transition log behind the controller's log sink.
// Entries are timestamped on arrival and kept newest first.
type Logbook struct {
	mutex   sync.Mutex
	clock   junction.Clock
	entries []string
}

// NewLogbook creates an empty logbook timestamping with the given clock
func NewLogbook(clock junction.Clock) *Logbook {
	return &Logbook{
		clock:   clock,
		entries: make([]string, 0, logRetention),
	}
}

// Append prefixes the message with the current [HH:MM:SS] timestamp and
// stores it at the front, dropping the oldest beyond the retention limit
func (l *Logbook) Append(message string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	entry := fmt.Sprintf("[%s] %s", l.clock.Now().Format("15:04:05"), message)
	l.entries = append([]string{entry}, l.entries...)
	if len(l.entries) > logRetention {
		l.entries = l.entries[:logRetention]
	}
}

// Recent returns up to n entries, newest first
func (l *Logbook) Recent(n int) []string {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]string, n)
	copy(out, l.entries[:n])
	return out
}

// Sink adapts the logbook to the controller's LogSink contract
func (l *Logbook) Sink() junction.LogSink {
	return l.Append
}
