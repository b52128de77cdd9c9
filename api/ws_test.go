package api

import (
	"context"
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

func dialHub(t *testing.T, hub *Hub) (*websocket.Conn, func()) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(hub.HandleConnection))
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	return conn, func() {
		conn.Close()
		server.Close()
	}
}

func TestHubBroadcastsPoolUpdates(t *testing.T) {
	poolsStub := newStubPoolsService()
	poolsStub.topCoins = []string{"0x2::sui::SUI"}
	pricesStub := newStubPricesService()

	hub := NewHub(poolsStub, pricesStub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)
	defer hub.Stop()

	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	// Give the hub time to register the client before emitting
	time.Sleep(20 * time.Millisecond)
	poolsStub.subscriptions.Emit(ctx)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, frame, err := conn.ReadMessage()
	require.NoError(t, err)

	var message wsMessage
	require.NoError(t, json.Unmarshal(frame, &message))
	assert.Equal(t, "topPoolCoins", message.Type)
}

func TestHubBroadcastsPriceUpdates(t *testing.T) {
	poolsStub := newStubPoolsService()
	pricesStub := newStubPricesService()
	pricesStub.prices = map[string]float64{"0x2::sui::SUI": 1.5}

	hub := NewHub(poolsStub, pricesStub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)
	defer hub.Stop()

	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	time.Sleep(20 * time.Millisecond)
	pricesStub.subscriptions.Emit(ctx)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, frame, err := conn.ReadMessage()
	require.NoError(t, err)

	var message wsMessage
	require.NoError(t, json.Unmarshal(frame, &message))
	assert.Equal(t, "prices", message.Type)
}

func TestHubStopDisconnectsClients(t *testing.T) {
	hub := NewHub(newStubPoolsService(), newStubPricesService())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	time.Sleep(20 * time.Millisecond)
	hub.Stop()

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "connection should be closed after Stop")
}
