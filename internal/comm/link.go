// Package comm is a point-to-point transport for unsigned 32-bit values
// between the two processes of a pipeline run. One side listens and accepts
// a single peer (Server), the other dials (Client); both expose the same
// codec surface on the established Link.
//
// All payload integers travel in host-native byte order, so both peers must
// run on architectures with the same byte order. Any transfer failure is
// fatal to the whole process: the descriptors are closed, the failure is
// logged, and the process exits with a non-zero status. There is no retry
// and no partial-result recovery.
package comm

import (
	"encoding/binary"
	"fmt"
	"math"
	"net"

	"github.com/hiroki-ota/veclink/internal/wire"
	"github.com/sirupsen/logrus"
)

const (
	scalarSize = 4 // one uint32 on the wire
	prefixSize = 8 // byte-count prefix of a dynamic sequence
)

// Link is an established connection to the peer. It owns the accepted or
// dialed descriptor (and, on the listening side, the listener) and the
// running total of bytes sent. A Link is not safe for concurrent use.
type Link struct {
	conn           net.Conn
	listener       net.Listener // nil on the dialing side
	logger         *logrus.Logger
	totalBytesSent uint64
}

func newLink(conn net.Conn, listener net.Listener, logger *logrus.Logger) *Link {
	return &Link{conn: conn, listener: listener, logger: logger}
}

// SendValue transfers a single uint32 to the peer.
func (l *Link) SendValue(value uint32) {
	buf := make([]byte, scalarSize)
	binary.NativeEndian.PutUint32(buf, value)
	if err := wire.SendAll(l.conn, buf); err != nil {
		l.fatal("Failed to send uint32 value", err)
	}
	l.totalBytesSent += scalarSize
	l.logger.Debugf("Sent value: %d", value)
}

// RecvValue receives a single uint32 from the peer.
func (l *Link) RecvValue() uint32 {
	buf := make([]byte, scalarSize)
	if err := wire.RecvAll(l.conn, buf); err != nil {
		l.fatal("Failed to receive uint32 value", err)
	}
	value := binary.NativeEndian.Uint32(buf)
	l.logger.Debugf("Received value: %d", value)
	return value
}

// SendVector transfers a dynamic sequence: an 8-byte unsigned byte count
// followed by the raw scalars. The prefix counts bytes, not elements, so the
// receiver can size its buffer without knowing the element type.
func (l *Link) SendVector(values []uint32) {
	payload := make([]byte, prefixSize+scalarSize*len(values))
	binary.NativeEndian.PutUint64(payload, uint64(scalarSize*len(values)))
	for i, v := range values {
		binary.NativeEndian.PutUint32(payload[prefixSize+i*scalarSize:], v)
	}
	if err := wire.SendAll(l.conn, payload); err != nil {
		l.fatal("Failed to send vector", err)
	}
	l.totalBytesSent += uint64(len(payload))
	l.logger.Debugf("Sent vector of %d values", len(values))
}

// RecvVector receives a dynamic sequence sent with SendVector.
//
// The declared size is trusted and allocated without an upper bound: the
// peer is the other half of the same pipeline run, not an untrusted party.
func (l *Link) RecvVector() []uint32 {
	prefix := make([]byte, prefixSize)
	if err := wire.RecvAll(l.conn, prefix); err != nil {
		l.fatal("Failed to receive vector size", err)
	}
	size := binary.NativeEndian.Uint64(prefix)
	if size > math.MaxInt {
		l.fatal("Failed to receive vector", fmt.Errorf("declared size of %d bytes is unallocatable", size))
	}

	payload := make([]byte, size)
	if err := wire.RecvAll(l.conn, payload); err != nil {
		l.fatal("Failed to receive vector", err)
	}

	values := make([]uint32, size/scalarSize)
	for i := range values {
		values[i] = binary.NativeEndian.Uint32(payload[i*scalarSize:])
	}
	l.logger.Debugf("Received vector of %d values", len(values))
	return values
}

// SendPair transfers exactly two uint32 values with no length prefix.
func (l *Link) SendPair(values [2]uint32) {
	l.sendFixed(values[:], "pair")
}

// RecvPair receives a pair sent with SendPair.
func (l *Link) RecvPair() [2]uint32 {
	var values [2]uint32
	l.recvFixed(values[:], "pair")
	return values
}

// SendQuad transfers exactly four uint32 values with no length prefix.
func (l *Link) SendQuad(values [4]uint32) {
	l.sendFixed(values[:], "quad")
}

// RecvQuad receives a quad sent with SendQuad.
func (l *Link) RecvQuad() [4]uint32 {
	var values [4]uint32
	l.recvFixed(values[:], "quad")
	return values
}

func (l *Link) sendFixed(values []uint32, kind string) {
	buf := make([]byte, scalarSize*len(values))
	for i, v := range values {
		binary.NativeEndian.PutUint32(buf[i*scalarSize:], v)
	}
	if err := wire.SendAll(l.conn, buf); err != nil {
		l.fatal("Failed to send "+kind, err)
	}
	l.totalBytesSent += uint64(len(buf))
	l.logger.Debugf("Sent %s: %v", kind, values)
}

func (l *Link) recvFixed(values []uint32, kind string) {
	buf := make([]byte, scalarSize*len(values))
	if err := wire.RecvAll(l.conn, buf); err != nil {
		l.fatal("Failed to receive "+kind, err)
	}
	for i := range values {
		values[i] = binary.NativeEndian.Uint32(buf[i*scalarSize:])
	}
	l.logger.Debugf("Received %s: %v", kind, values)
}

// RemoteAddr returns the peer's address, or "" once the link is closed.
func (l *Link) RemoteAddr() string {
	if l.conn == nil {
		return ""
	}
	return l.conn.RemoteAddr().String()
}

// TotalBytesSent returns the bytes successfully sent since the link was
// established or the counter was last reset. Size prefixes count; received
// bytes do not.
func (l *Link) TotalBytesSent() uint64 {
	return l.totalBytesSent
}

// ResetTotalBytesSent zeroes the byte counter.
func (l *Link) ResetTotalBytesSent() {
	l.totalBytesSent = 0
}

// Close releases the peer descriptor and, on the listening side, the
// listener. Closing an already closed link is a no-op.
func (l *Link) Close() {
	if l.conn != nil {
		_ = l.conn.Close()
		l.conn = nil
	}
	if l.listener != nil {
		_ = l.listener.Close()
		l.listener = nil
	}
}

// fatal tears down both descriptors, logs the failure and terminates the
// process. A failed transfer invalidates the whole pipeline run.
func (l *Link) fatal(msg string, err error) {
	l.Close()
	l.logger.Fatalf("%s: %v", msg, err)
}
