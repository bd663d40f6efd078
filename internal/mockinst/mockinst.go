// Package mockinst provides mock SCPI instruments for testing.
//
// Two layers are available: Transport, an in-process scpi.Transport with
// canned responses and recorded traffic, and Server, a TCP server speaking
// newline-delimited SCPI for transport-level tests. Both can be backed by
// Supply, a stateful emulation of a Kepco BHK power supply that echoes
// written setpoints back on the matching queries.
package mockinst

import (
	"context"
	"sync"

	"github.com/scpi-drivers/kepco-go/pkg/scpi"
)

// Transport is a scripted in-process scpi.Transport.
// All commands sent through it are recorded.
type Transport struct {
	mu sync.Mutex

	// responses maps query strings to canned response lines.
	responses map[string]string

	// handler, when set, answers queries not found in responses.
	handler func(cmd string) (string, bool)

	// onWrite, when set, observes non-query commands.
	onWrite func(cmd string)

	err    error
	closed bool

	queries []string
	writes  []string
}

// NewTransport creates an empty scripted transport.
func NewTransport() *Transport {
	return &Transport{responses: make(map[string]string)}
}

// Handle registers a canned response for a query string.
func (t *Transport) Handle(query, response string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.responses[query] = response
}

// FailWith makes every subsequent call return err.
// Pass nil to clear the injected failure.
func (t *Transport) FailWith(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.err = err
}

// Query implements scpi.Transport.
func (t *Transport) Query(ctx context.Context, cmd string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return "", scpi.ErrNotConnected
	}
	if t.err != nil {
		return "", t.err
	}

	t.queries = append(t.queries, cmd)
	if resp, ok := t.responses[cmd]; ok {
		return resp, nil
	}
	if t.handler != nil {
		if resp, ok := t.handler(cmd); ok {
			return resp, nil
		}
	}
	return "", nil
}

// Write implements scpi.Transport.
func (t *Transport) Write(ctx context.Context, cmd string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return scpi.ErrNotConnected
	}
	if t.err != nil {
		return t.err
	}

	t.writes = append(t.writes, cmd)
	if t.onWrite != nil {
		t.onWrite(cmd)
	}
	return nil
}

// Close implements scpi.Transport.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return scpi.ErrNotConnected
	}
	t.closed = true
	return nil
}

// Queries returns the queries sent so far, in order.
func (t *Transport) Queries() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.queries))
	copy(out, t.queries)
	return out
}

// Writes returns the non-query commands sent so far, in order.
func (t *Transport) Writes() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.writes))
	copy(out, t.writes)
	return out
}

// Compile-time interface satisfaction check.
var _ scpi.Transport = (*Transport)(nil)
