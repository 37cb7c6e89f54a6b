package monitor

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialTestServer mounts the monitor handler on an httptest
// server and opens a WebSocket client against it.
func dialTestServer(
	t *testing.T,
) (*Server, *httptest.Server, *websocket.Conn) {
	t.Helper()

	collector := NewEventCollector()
	srv := NewServer("", collector)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return srv, ts, conn
}

func TestServer_BroadcastReachesClient(t *testing.T) {
	srv, _, conn := dialTestServer(t)

	// The websocket handshake registers the client
	// asynchronously; wait for it to appear.
	require.Eventually(t, func() bool {
		return srv.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	srv.Broadcast(Event{
		Type: EventPassed,
		Unit: "arith",
	})

	require.NoError(t, conn.SetReadDeadline(
		time.Now().Add(time.Second),
	))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, EventPassed, event.Type)
	assert.Equal(t, "arith", event.Unit)
}

func TestServer_DropsDisconnectedClients(t *testing.T) {
	srv, _, conn := dialTestServer(t)

	require.Eventually(t, func() bool {
		return srv.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		srv.Broadcast(Event{Type: EventPassed, Unit: "x"})
		return srv.ClientCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestServer_StatsEndpoint(t *testing.T) {
	collector := NewEventCollector()
	collector.Record(Event{Type: EventPassed, Unit: "a"})

	srv := NewServer("", collector)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	var stats Stats
	require.NoError(
		t, json.NewDecoder(resp.Body).Decode(&stats),
	)
	assert.Equal(t, 1, stats.Passed)
}

func TestServer_HealthEndpoint(t *testing.T) {
	srv := NewServer("", NewEventCollector())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
