package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lending-concierge-be/internal/pkg/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }
func (nopLogger) GetLogs(string, int, int) ([]logger.LogEntry, error) {
	return nil, nil
}

func newTestClient(h *Hub, userId uuid.UUID, buffer int) *Client {
	return &Client{Hub: h, UserId: userId, Send: make(chan []byte, buffer)}
}

func registerClient(t *testing.T, h *Hub, c *Client) {
	t.Helper()
	select {
	case h.register <- c:
	case <-time.After(time.Second):
		t.Fatal("register timed out")
	}
}

// waitClosed drains the client's channel until the hub closes it.
func waitClosed(t *testing.T, c *Client) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-c.Send:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("send channel was never closed")
		}
	}
}

func clientCount(h *Hub, userId uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userId])
}

func TestSendDropsSlowClientOnce(t *testing.T) {
	h := NewHub(nil, nopLogger{})
	go h.Run()

	userId := uuid.New()
	slow := newTestClient(h, userId, 1)
	registerClient(t, h, slow)
	require.Eventually(t, func() bool { return clientCount(h, userId) == 1 },
		time.Second, 5*time.Millisecond)

	// Fill the buffer so the next push hits the drop path.
	slow.Send <- []byte("backlog")

	h.Send(userId, Notification{Kind: "test", Message: "hello"})

	// Run's unregister branch removes the client and closes Send exactly
	// once; a second close would panic the hub goroutine.
	waitClosed(t, slow)

	assert.Eventually(t, func() bool { return clientCount(h, userId) == 0 },
		time.Second, 5*time.Millisecond)

	// The hub must still be serving; a healthy client proves the goroutine
	// survived the drop.
	healthy := newTestClient(h, userId, 4)
	registerClient(t, h, healthy)
	require.Eventually(t, func() bool { return clientCount(h, userId) == 1 },
		time.Second, 5*time.Millisecond)
	h.Send(userId, Notification{Kind: "test", Message: "still alive"})

	select {
	case msg := <-healthy.Send:
		assert.Contains(t, string(msg), "still alive")
	case <-time.After(time.Second):
		t.Fatal("hub stopped delivering after dropping a slow client")
	}
}

func TestBroadcastDropsMultipleSlowClients(t *testing.T) {
	h := NewHub(nil, nopLogger{})
	go h.Run()

	// Two slow clients in one pass exercises the handoff after the read
	// lock is released.
	first := newTestClient(h, uuid.New(), 1)
	second := newTestClient(h, uuid.New(), 1)
	registerClient(t, h, first)
	registerClient(t, h, second)
	require.Eventually(t, func() bool {
		return clientCount(h, first.UserId) == 1 && clientCount(h, second.UserId) == 1
	}, time.Second, 5*time.Millisecond)
	first.Send <- []byte("backlog")
	second.Send <- []byte("backlog")

	done := make(chan struct{})
	go func() {
		h.Broadcast(Notification{Kind: "test", Message: "fanout"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast deadlocked while dropping slow clients")
	}

	waitClosed(t, first)
	waitClosed(t, second)

	require.Eventually(t, func() bool {
		return clientCount(h, first.UserId) == 0 && clientCount(h, second.UserId) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestUnregisterUnknownClientIsNoOp(t *testing.T) {
	h := NewHub(nil, nopLogger{})
	go h.Run()

	userId := uuid.New()
	client := newTestClient(h, userId, 1)
	registerClient(t, h, client)

	// First unregister removes and closes; the second finds nothing and
	// must not close again.
	h.unregister <- client
	waitClosed(t, client)
	h.unregister <- client

	// Hub still responsive.
	other := newTestClient(h, userId, 1)
	registerClient(t, h, other)
	assert.Eventually(t, func() bool { return clientCount(h, userId) == 1 },
		time.Second, 5*time.Millisecond)
}
