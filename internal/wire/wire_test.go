package wire

import (
	"bytes"
	"errors"
	"net"
	"testing"
	"testing/iotest"
	"time"
)

// chunkedWriter writes at most chunk bytes per call to force short writes.
type chunkedWriter struct {
	buf   bytes.Buffer
	chunk int
}

func (w *chunkedWriter) Write(p []byte) (int, error) {
	if len(p) > w.chunk {
		p = p[:w.chunk]
	}
	return w.buf.Write(p)
}

func TestSendAllShortWrites(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	w := &chunkedWriter{chunk: 3}

	if err := SendAll(w, data); err != nil {
		t.Fatalf("SendAll failed: %v", err)
	}
	if !bytes.Equal(w.buf.Bytes(), data) {
		t.Errorf("written bytes differ from input")
	}
}

func TestSendAllZeroLength(t *testing.T) {
	// Must not touch the connection at all: a nil writer would panic.
	if err := SendAll(nil, nil); err != nil {
		t.Fatalf("SendAll of zero bytes failed: %v", err)
	}
}

func TestRecvAllZeroLength(t *testing.T) {
	if err := RecvAll(nil, nil); err != nil {
		t.Fatalf("RecvAll of zero bytes failed: %v", err)
	}
}

func TestRoundTripOverPipe(t *testing.T) {
	lengths := []int{1, 2, 7, 1024, 64 * 1024}

	for _, n := range lengths {
		c1, c2 := net.Pipe()

		sent := make([]byte, n)
		for i := range sent {
			sent[i] = byte(i * 31)
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- SendAll(c1, sent)
		}()

		got := make([]byte, n)
		if err := RecvAll(c2, got); err != nil {
			t.Fatalf("RecvAll of %d bytes failed: %v", n, err)
		}
		if err := <-errCh; err != nil {
			t.Fatalf("SendAll of %d bytes failed: %v", n, err)
		}
		if !bytes.Equal(sent, got) {
			t.Errorf("round trip of %d bytes corrupted data", n)
		}

		_ = c1.Close()
		_ = c2.Close()
	}
}

func TestRecvAllPeerClosedMidTransfer(t *testing.T) {
	c1, c2 := net.Pipe()

	go func() {
		// Deliver half of what the receiver expects, then hang up.
		_ = SendAll(c1, make([]byte, 8))
		_ = c1.Close()
	}()

	buf := make([]byte, 16)
	err := RecvAll(c2, buf)
	if err == nil {
		t.Fatal("expected error after peer closed mid transfer")
	}
	_ = c2.Close()
}

func TestSendAllPeerClosed(t *testing.T) {
	c1, c2 := net.Pipe()
	_ = c2.Close()

	done := make(chan error, 1)
	go func() {
		done <- SendAll(c1, make([]byte, 1024))
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected error sending to closed peer")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("SendAll hung on closed peer")
	}
	_ = c1.Close()
}

// errTailReader delivers its data and then reports err on the same call.
type errTailReader struct {
	data []byte
	err  error
}

func (r *errTailReader) Read(p []byte) (int, error) {
	n := copy(p, r.data)
	r.data = r.data[n:]
	if len(r.data) == 0 {
		return n, r.err
	}
	return n, nil
}

func TestRecvAllErrorWithFinalBytes(t *testing.T) {
	// A connection reset arriving together with the last bytes must still
	// count as a complete transfer.
	r := &errTailReader{data: []byte{1, 2, 3, 4}, err: errors.New("connection reset")}
	buf := make([]byte, 4)
	if err := RecvAll(r, buf); err != nil {
		t.Fatalf("RecvAll failed despite full transfer: %v", err)
	}
	if !bytes.Equal(buf, []byte{1, 2, 3, 4}) {
		t.Errorf("unexpected bytes: %v", buf)
	}
}

func TestRecvAllErrorBeforeCompletion(t *testing.T) {
	r := &errTailReader{data: []byte{1, 2}, err: errors.New("connection reset")}
	buf := make([]byte, 4)
	if err := RecvAll(r, buf); err == nil {
		t.Fatal("expected error for incomplete transfer")
	}
}

func TestRecvAllEOFAtBoundary(t *testing.T) {
	// A reader that returns the final bytes together with io.EOF is still a
	// complete transfer.
	r := iotest.DataErrReader(bytes.NewReader([]byte{1, 2, 3, 4}))
	buf := make([]byte, 4)
	if err := RecvAll(r, buf); err != nil {
		t.Fatalf("RecvAll failed at EOF boundary: %v", err)
	}
	if !bytes.Equal(buf, []byte{1, 2, 3, 4}) {
		t.Errorf("unexpected bytes: %v", buf)
	}
}
