package comm

import "github.com/sirupsen/logrus"

// Config carries the construction parameters for an endpoint.
type Config struct {
	// Host is the address a Client dials. Servers ignore it and listen on
	// the wildcard address.
	Host string
	// Port is the TCP port to listen on or dial. Port 0 asks the OS for a
	// free port on the listening side.
	Port int
	// Debug gates per-transfer trace logging.
	Debug bool
	// Logger overrides the logger built from Debug when non-nil.
	Logger *logrus.Logger
}
