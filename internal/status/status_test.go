package status

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nmeasim/nmeasim/internal/engine"
	"github.com/nmeasim/nmeasim/internal/sink"
	"github.com/nmeasim/nmeasim/internal/vessel"
)

var _ sink.Sink = (*Server)(nil)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng := engine.New(engine.Config{TickHz: 50}, []*vessel.Vessel{vessel.NewVessel(367001234, 1)}, nil, nil, nil, nil)
	if err := eng.Start(); err != nil {
		t.Fatalf("engine Start: %v", err)
	}
	t.Cleanup(func() { eng.Stop() })
	return eng
}

func TestHandleStatusReturnsSnapshot(t *testing.T) {
	srv := New(newTestEngine(t), 1, nil)
	ts := httptest.NewServer(srv.router())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/status")
	if err != nil {
		t.Fatalf("GET /status: %v", err)
	}
	defer resp.Body.Close()

	var snap Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.State != "running" {
		t.Errorf("state = %q, want running", snap.State)
	}
	if snap.VesselCount != 1 {
		t.Errorf("vessel count = %d, want 1", snap.VesselCount)
	}
}

func TestSendDeliversToConnectedClient(t *testing.T) {
	srv := New(newTestEngine(t), 1, nil)
	ts := httptest.NewServer(srv.router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial ws: %v", err)
	}
	defer conn.Close()

	// Give the server a moment to register the client before sending.
	deadline := time.Now().Add(time.Second)
	for {
		srv.mu.Lock()
		n := len(srv.clients)
		srv.mu.Unlock()
		if n > 0 || time.Now().After(deadline) {
			break
		}
		time.Sleep(time.Millisecond)
	}

	srv.Send("!AIVDM,1,1,,A,test,0*00")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read ws message: %v", err)
	}
	if string(msg) != "!AIVDM,1,1,,A,test,0*00" {
		t.Errorf("received %q, want the sent sentence", msg)
	}
	if got := srv.Stats().Sent; got != 1 {
		t.Errorf("Stats().Sent = %d, want 1", got)
	}
}

func TestSendWithNoClientsIsNoop(t *testing.T) {
	srv := New(newTestEngine(t), 1, nil)
	srv.Send("no clients connected")
	if got := srv.Stats(); got.Sent != 0 || got.Dropped != 0 {
		t.Errorf("Stats() = %+v, want zero", got)
	}
}

func TestNameIsStable(t *testing.T) {
	srv := New(newTestEngine(t), 1, nil)
	if srv.Name() != "status-ws" {
		t.Errorf("Name() = %q, want status-ws", srv.Name())
	}
}
