package comm

import (
	"fmt"
	"net"

	"github.com/hiroki-ota/veclink/internal/logger"
	"github.com/sirupsen/logrus"
)

// Server is the listening endpoint. It accepts exactly one peer; once
// connected, the embedded Link carries all transfers.
type Server struct {
	*Link

	config   Config
	logger   *logrus.Logger
	listener net.Listener
}

// NewServer builds the listening endpoint. Call Setup to bind and listen,
// then Start to accept the peer.
func NewServer(cfg Config) *Server {
	log := cfg.Logger
	if log == nil {
		log = logger.New(cfg.Debug)
	}
	return &Server{config: cfg, logger: log}
}

// Setup binds the wildcard address on the configured port and starts
// listening. Failure to bind or listen is fatal. The listener gets the
// address-reuse socket option, which the net package applies by default.
func (s *Server) Setup() {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.config.Port))
	if err != nil {
		s.logger.Fatalf("Failed to listen on port %d: %v", s.config.Port, err)
	}
	s.listener = ln
	s.logger.Debugf("Server listening on port %d...", s.Port())
}

// Start blocks until one peer connects and binds it to the server's link.
// Accepting a second peer over a live one is a programming error and fatal.
func (s *Server) Start() {
	if s.Link != nil {
		s.logger.Fatalf("Server already has a connected peer")
	}
	conn, err := s.listener.Accept()
	if err != nil {
		s.logger.Fatalf("Failed to accept client: %v", err)
	}
	s.Link = newLink(conn, s.listener, s.logger)
	s.logger.Debugf("Client connected from %s", conn.RemoteAddr())
}

// Port returns the port the server listens on. After Setup with port 0 it
// reports the port the OS assigned.
func (s *Server) Port() int {
	if s.listener != nil {
		return s.listener.Addr().(*net.TCPAddr).Port
	}
	return s.config.Port
}

// Close releases the peer descriptor and the listener. Safe to call more
// than once and before Start.
func (s *Server) Close() {
	if s.Link != nil {
		s.Link.Close()
		return
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}
