package transport

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/sbl8/forcegraph/config"
	"github.com/sbl8/forcegraph/kernels"
	"github.com/sbl8/forcegraph/model"
	"github.com/sbl8/forcegraph/registry"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	g, err := model.Build(model.MetadataStore{
		"a.md": {FileName: "a.md"},
	})
	require.NoError(t, err)
	model.SeedPositions(g, nil)
	return registry.New(g, kernels.DefaultParams())
}

func TestSupervisorRegistersAndUnregistersSessions(t *testing.T) {
	t.Parallel()
	sup := NewSupervisor(testRegistry(t), config.Default(), nil)
	srv := httptest.NewServer(sup)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return sup.Count() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return sup.Count() == 0 }, time.Second, 10*time.Millisecond)
}

func TestSupervisorBroadcastDeliversToAllSessions(t *testing.T) {
	t.Parallel()
	sup := NewSupervisor(testRegistry(t), config.Default(), nil)
	srv := httptest.NewServer(sup)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	var conns []*websocket.Conn
	for i := 0; i < 3; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		require.NoError(t, err)
		defer conn.Close()
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, _, err = conn.ReadMessage() // connection_established
		require.NoError(t, err)
		_, _, err = conn.ReadMessage() // loading
		require.NoError(t, err)
		conns = append(conns, conn)
	}

	sup.Broadcast(nil, `{"type":"announcement"}`)

	for _, conn := range conns {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		require.Contains(t, string(data), "announcement")
	}
}
