package terminal

import (
	"bytes"
	"sync"
)

// Mock is a recording terminal double: every Write is appended to an
// internal buffer and to a history of discrete write calls, and the
// reported size is whatever SetSize last configured. Grounded on the
// teacher's termtest/console.go — a mutex-guarded buffer standing in for
// a real terminal device, scriptable by the test rather than by a live
// process.
type Mock struct {
	mu      sync.Mutex
	columns int
	rows    int
	buf     bytes.Buffer
	writes  []string
	started bool
	flushes int
	cursor  bool
}

// NewMock returns a Mock reporting the given initial size with the cursor
// shown (matching a freshly-started real terminal before HideCursor).
func NewMock(columns, rows int) *Mock {
	return &Mock{columns: columns, rows: rows, cursor: true}
}

func (m *Mock) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
	m.cursor = false
	return nil
}

func (m *Mock) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = false
	m.cursor = true
	return nil
}

func (m *Mock) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = append(m.writes, string(p))
	return m.buf.Write(p)
}

func (m *Mock) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushes++
	return nil
}

func (m *Mock) Size() (columns, rows int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.columns, m.rows
}

func (m *Mock) ShowCursor() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursor = true
}

func (m *Mock) HideCursor() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursor = false
}

// SetSize reconfigures the reported terminal size — the next render on an
// Engine using this Mock will observe it as a resize.
func (m *Mock) SetSize(columns, rows int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.columns = columns
	m.rows = rows
}

// Output returns everything written so far, concatenated.
func (m *Mock) Output() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buf.String()
}

// Writes returns every discrete Write call's payload, in order.
func (m *Mock) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.writes))
	copy(out, m.writes)
	return out
}

// FlushCount reports how many times Flush has been called.
func (m *Mock) FlushCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushes
}

// Started reports whether Start has been called more recently than Stop.
func (m *Mock) Started() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

// CursorVisible reports the last ShowCursor/HideCursor call's effect.
func (m *Mock) CursorVisible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor
}

var _ Terminal = (*Mock)(nil)
