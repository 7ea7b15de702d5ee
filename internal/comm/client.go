package comm

import (
	"net"
	"strconv"
	"time"

	"github.com/hiroki-ota/veclink/internal/logger"
	"github.com/sirupsen/logrus"
)

const (
	dialAttempts   = 20
	dialRetryDelay = 250 * time.Millisecond
)

// Client is the dialing endpoint. Once connected, the embedded Link carries
// all transfers.
type Client struct {
	*Link

	config Config
	logger *logrus.Logger
}

// NewClient builds the dialing endpoint. Call Connect to establish the link.
func NewClient(cfg Config) *Client {
	log := cfg.Logger
	if log == nil {
		log = logger.New(cfg.Debug)
	}
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	return &Client{config: cfg, logger: log}
}

// Connect dials the server. The listening side may come up second in a
// two-process launch, so refused connections are retried for a bounded
// number of attempts before the failure turns fatal.
func (c *Client) Connect() {
	addr := net.JoinHostPort(c.config.Host, strconv.Itoa(c.config.Port))

	var conn net.Conn
	var err error
	for attempt := 0; attempt < dialAttempts; attempt++ {
		conn, err = net.Dial("tcp", addr)
		if err == nil {
			break
		}
		time.Sleep(dialRetryDelay)
	}
	if err != nil {
		c.logger.Fatalf("Failed to connect to %s: %v", addr, err)
	}

	c.Link = newLink(conn, nil, c.logger)
	c.logger.Debugf("Connected to %s", addr)
}

// Close releases the peer descriptor. Safe to call more than once and
// before Connect.
func (c *Client) Close() {
	if c.Link != nil {
		c.Link.Close()
	}
}
