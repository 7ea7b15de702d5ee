// Package wire implements byte-exact transfers over a stream connection.
//
// Stream sockets may accept or deliver fewer bytes than requested per call,
// so both directions loop over the remaining suffix of the buffer until the
// whole range has moved or the connection fails. Callers only learn success
// or failure, never how many bytes made it through before a failure.
package wire

import (
	"fmt"
	"io"
)

// SendAll writes all of buf to w. It returns an error if the connection
// fails before the full buffer has been written. A zero-length buffer
// succeeds immediately without touching the connection.
func SendAll(w io.Writer, buf []byte) error {
	for len(buf) > 0 {
		n, err := w.Write(buf)
		if err != nil {
			return fmt.Errorf("send failed with %d bytes remaining: %w", len(buf)-n, err)
		}
		buf = buf[n:]
	}
	return nil
}

// RecvAll reads exactly len(buf) bytes from r into buf. It returns an error
// if the peer closes or the connection fails before the buffer is full.
// A zero-length buffer succeeds immediately without touching the connection.
func RecvAll(r io.Reader, buf []byte) error {
	for len(buf) > 0 {
		n, err := r.Read(buf)
		buf = buf[n:]
		// A read that delivers the final bytes is a complete transfer no
		// matter what error rides along with it.
		if len(buf) == 0 {
			return nil
		}
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return fmt.Errorf("recv failed with %d bytes remaining: %w", len(buf), err)
		}
	}
	return nil
}
