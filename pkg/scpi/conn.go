package scpi

import (
	"bufio"
	"context"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/scpi-drivers/kepco-go/pkg/trace"
)

// Config configures a Conn.
type Config struct {
	// ConnectTimeout bounds Dial (default: 5s).
	ConnectTimeout time.Duration

	// ReadTimeout bounds waiting for a query response (default: 5s).
	ReadTimeout time.Duration

	// WriteTimeout bounds sending a command (default: 5s).
	WriteTimeout time.Duration

	// Logger receives a trace event per command, response and state
	// change. Nil disables tracing.
	Logger trace.Logger
}

// DefaultConfig returns the default connection configuration.
func DefaultConfig() Config {
	return Config{
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
	}
}

// Conn is a raw-socket SCPI connection. Commands are newline-terminated;
// responses are read up to the next newline, with trailing CR stripped.
//
// A Conn serializes exchanges internally: only one command/response round
// trip is in flight at a time.
type Conn struct {
	resource Resource
	config   Config
	logger   trace.Logger
	session  string

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
	closed bool
}

// Dial opens a connection to a TCPIP socket resource.
// GPIB, serial and VXI-11 resources return ErrUnsupportedResource.
func Dial(ctx context.Context, resource string, config Config) (*Conn, error) {
	res, err := ParseResource(resource)
	if err != nil {
		return nil, err
	}
	if !res.Dialable() {
		return nil, &CommError{Op: "dial", Resource: resource, Err: ErrUnsupportedResource}
	}

	if config.ConnectTimeout == 0 {
		config.ConnectTimeout = 5 * time.Second
	}
	if config.ReadTimeout == 0 {
		config.ReadTimeout = 5 * time.Second
	}
	if config.WriteTimeout == 0 {
		config.WriteTimeout = 5 * time.Second
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.ConnectTimeout)
		defer cancel()
	}

	dialer := &net.Dialer{}
	netConn, err := dialer.DialContext(ctx, "tcp", res.Addr())
	if err != nil {
		return nil, &CommError{Op: "dial", Resource: resource, Err: err}
	}

	logger := config.Logger
	if logger == nil {
		logger = trace.NoopLogger{}
	}

	c := &Conn{
		resource: res,
		config:   config,
		logger:   logger,
		session:  uuid.NewString(),
		conn:     netConn,
		reader:   bufio.NewReader(netConn),
	}
	c.logState("connected")
	return c, nil
}

// Resource returns the parsed resource this connection was opened with.
func (c *Conn) Resource() Resource {
	return c.resource
}

// SessionID returns the UUID stamped on this connection's trace events.
func (c *Conn) SessionID() string {
	return c.session
}

// Write sends a command that produces no response.
func (c *Conn) Write(ctx context.Context, cmd string) error {
	if cmd == "" {
		return ErrEmptyCommand
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.send(ctx, cmd); err != nil {
		return err
	}
	c.logExchange(trace.CategoryCommand, trace.DirectionOut, cmd, "")
	return nil
}

// Query sends a command and returns the instrument's response line.
func (c *Conn) Query(ctx context.Context, cmd string) (string, error) {
	if cmd == "" {
		return "", ErrEmptyCommand
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.send(ctx, cmd); err != nil {
		return "", err
	}
	c.logExchange(trace.CategoryQuery, trace.DirectionOut, cmd, "")

	if err := c.conn.SetReadDeadline(c.deadline(ctx, c.config.ReadTimeout)); err != nil {
		return "", c.fail("read", err)
	}
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", c.fail("read", err)
	}

	resp := strings.TrimRight(line, "\r\n")
	c.logExchange(trace.CategoryResponse, trace.DirectionIn, cmd, resp)
	return resp, nil
}

// send transmits one terminated command line. Caller holds c.mu.
func (c *Conn) send(ctx context.Context, cmd string) error {
	if c.closed {
		return &CommError{Op: "write", Resource: c.resource.Raw, Err: ErrNotConnected}
	}
	if err := ctx.Err(); err != nil {
		return c.fail("write", err)
	}
	if err := c.conn.SetWriteDeadline(c.deadline(ctx, c.config.WriteTimeout)); err != nil {
		return c.fail("write", err)
	}
	if _, err := c.conn.Write([]byte(cmd + "\n")); err != nil {
		return c.fail("write", err)
	}
	return nil
}

// deadline picks the earlier of the context deadline and now+timeout.
func (c *Conn) deadline(ctx context.Context, timeout time.Duration) time.Time {
	d := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(d) {
		return ctxDeadline
	}
	return d
}

// Close closes the connection. It is safe to call Close multiple times;
// only the first call closes the socket.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrNotConnected
	}
	c.closed = true
	c.logState("closed")
	return c.conn.Close()
}

func (c *Conn) fail(op string, err error) error {
	commErr := &CommError{Op: op, Resource: c.resource.Raw, Err: err}
	c.logger.Log(trace.Event{
		Timestamp: time.Now(),
		SessionID: c.session,
		Resource:  c.resource.Raw,
		Category:  trace.CategoryError,
		Message:   commErr.Error(),
	})
	return commErr
}

func (c *Conn) logExchange(cat trace.Category, dir trace.Direction, cmd, resp string) {
	c.logger.Log(trace.Event{
		Timestamp: time.Now(),
		SessionID: c.session,
		Resource:  c.resource.Raw,
		Direction: dir,
		Category:  cat,
		Command:   cmd,
		Response:  resp,
	})
}

func (c *Conn) logState(state string) {
	c.logger.Log(trace.Event{
		Timestamp: time.Now(),
		SessionID: c.session,
		Resource:  c.resource.Raw,
		Category:  trace.CategoryState,
		State:     state,
	})
}
