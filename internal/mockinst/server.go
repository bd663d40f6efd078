package mockinst

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/scpi-drivers/kepco-go/pkg/scpi"
)

// Server exposes a backing instrument over TCP, speaking newline-delimited
// SCPI the way a raw-socket LXI instrument does. Used by transport tests.
type Server struct {
	backend  scpi.Transport
	listener net.Listener

	mu     sync.Mutex
	conns  []net.Conn
	closed bool
	wg     sync.WaitGroup
}

// NewServer starts a server on a random loopback port.
func NewServer(backend scpi.Transport) (*Server, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	s := &Server{backend: backend, listener: l}
	s.wg.Add(1)
	go s.acceptLoop()
	return s, nil
}

// Addr returns the server's host:port address.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Resource returns a dialable VISA resource string for the server.
func (s *Server) Resource() string {
	host, port, _ := net.SplitHostPort(s.Addr())
	return fmt.Sprintf("TCPIP0::%s::%s::SOCKET", host, port)
}

// Close stops the server and drops all open connections.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for _, c := range s.conns {
		_ = c.Close()
	}
	s.mu.Unlock()

	err := s.listener.Close()
	s.wg.Wait()
	return err
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			_ = conn.Close()
			return
		}
		s.conns = append(s.conns, conn)
		s.mu.Unlock()

		s.wg.Add(1)
		go s.serve(conn)
	}
}

// serve handles one connection: queries (lines ending in '?') produce a
// response line, other commands produce none.
func (s *Server) serve(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		cmd := strings.TrimRight(scanner.Text(), "\r")
		if cmd == "" {
			continue
		}

		if strings.HasSuffix(cmd, "?") {
			resp, err := s.backend.Query(context.Background(), cmd)
			if err != nil {
				// Real instruments stay silent on bad queries; the
				// client's read deadline surfaces the failure.
				continue
			}
			if _, err := conn.Write([]byte(resp + "\n")); err != nil {
				return
			}
			continue
		}

		_ = s.backend.Write(context.Background(), cmd)
	}
}
