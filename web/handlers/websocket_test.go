package handlers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_NotifyReachesClients(t *testing.T) {
	hub := NewWebSocketHub(6380)
	go hub.Run()
	defer hub.Stop()

	client := &MockClient{SendChan: make(chan []byte, 4)}
	hub.Register(client)

	hub.Notify("Recalibration started")

	select {
	case data := <-client.SendChan:
		var msg TelemetryMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, "pipeline", msg.Type)
		assert.Equal(t, "Recalibration started", msg.Message)
	case <-time.After(time.Second):
		t.Fatal("telemetry message never arrived")
	}
}

func TestHub_SlowClientDropped(t *testing.T) {
	hub := NewWebSocketHub(6380)
	go hub.Run()
	defer hub.Stop()

	// Zero-capacity channel: the first broadcast cannot be delivered.
	client := &MockClient{SendChan: make(chan []byte)}
	hub.Register(client)

	hub.Notify("one")

	assert.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients) == 0
	}, time.Second, 10*time.Millisecond)
}
