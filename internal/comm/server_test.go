package comm

import (
	"testing"
	"time"
)

func TestServerAssignedPort(t *testing.T) {
	srv := NewServer(Config{Port: 0, Logger: testLogger(t)})
	srv.Setup()
	defer srv.Close()

	if srv.Port() == 0 {
		t.Error("expected OS-assigned port after Setup")
	}
}

func TestServerCloseBeforeStart(t *testing.T) {
	srv := NewServer(Config{Port: 0, Logger: testLogger(t)})
	srv.Setup()
	srv.Close()
	srv.Close()
}

func TestSetupFatalOnPortInUse(t *testing.T) {
	srv := NewServer(Config{Port: 0, Logger: testLogger(t)})
	srv.Setup()
	defer srv.Close()

	second := NewServer(Config{Port: srv.Port(), Logger: testLogger(t)})
	defer func() {
		exit, ok := recover().(fatalExit)
		if !ok {
			t.Fatal("expected fatal exit binding an occupied port")
		}
		if exit.code == 0 {
			t.Error("expected non-zero exit status")
		}
	}()
	second.Setup()
	t.Error("Setup returned despite occupied port")
}

func TestStartFatalWhenAlreadyConnected(t *testing.T) {
	srv, _ := setupPair(t)

	defer func() {
		if _, ok := recover().(fatalExit); !ok {
			t.Fatal("expected fatal exit accepting over a live peer")
		}
	}()
	srv.Start()
	t.Error("Start returned despite a connected peer")
}

func TestClientConnectRetriesUntilServerUp(t *testing.T) {
	// Reserve a free port, then release it so the client dials into nothing
	// until the real server comes up.
	probe := NewServer(Config{Port: 0, Logger: testLogger(t)})
	probe.Setup()
	port := probe.Port()
	probe.Close()

	srv := NewServer(Config{Port: port, Logger: testLogger(t)})
	accepted := make(chan struct{})
	go func() {
		time.Sleep(100 * time.Millisecond)
		srv.Setup()
		srv.Start()
		close(accepted)
	}()

	client := NewClient(Config{Port: port, Logger: testLogger(t)})
	client.Connect()

	select {
	case <-accepted:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not accept the client")
	}

	client.SendValue(5)
	if got := srv.RecvValue(); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}

	client.Close()
	srv.Close()
}

func TestClientDefaultHost(t *testing.T) {
	client := NewClient(Config{Port: 1234, Logger: testLogger(t)})
	if client.config.Host != "127.0.0.1" {
		t.Errorf("expected loopback default host, got %q", client.config.Host)
	}
}
