package websocket

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decorlens/pkg/logger"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "ws-logs")
	if err != nil {
		panic(err)
	}
	_ = logger.Init(dir, false)
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

type fakeConn struct {
	mu       sync.Mutex
	messages []Message
	closed   bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, v.(Message))
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) received() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.messages...)
}

func TestManager_PublishReachesRoomOnly(t *testing.T) {
	m := NewManager(nil)
	a, b, other := &fakeConn{}, &fakeConn{}, &fakeConn{}
	m.RegisterClient(a, "board-1")
	m.RegisterClient(b, "board-1")
	m.RegisterClient(other, "board-2")
	assert.Equal(t, 2, m.RoomSize("board-1"))

	m.Publish("board-1", "analysis_started", map[string]string{"board_id": "board-1"})

	assert.Eventually(t, func() bool {
		return len(a.received()) == 1 && len(b.received()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "analysis_started", a.received()[0].Type)
	assert.Empty(t, other.received())
}

func TestManager_Unregister(t *testing.T) {
	m := NewManager(nil)
	conn := &fakeConn{}
	m.RegisterClient(conn, "board-1")
	m.UnregisterClient(conn)
	m.UnregisterClient(conn)

	assert.Zero(t, m.RoomSize("board-1"))
	assert.Zero(t, m.ClientCount())
	assert.NotPanics(t, func() { m.Publish("board-1", "analysis_completed", nil) })
}

func TestManager_Ping(t *testing.T) {
	m := NewManager(nil)
	conn := &fakeConn{}
	m.RegisterClient(conn, "board-1")

	m.HandleMessage(conn, []byte(`{"type":"ping"}`))
	m.HandleMessage(conn, []byte(`not json`))

	assert.Eventually(t, func() bool { return len(conn.received()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "pong", conn.received()[0].Type)
}

type loopbackBus struct {
	onMsg func(Message)
	fail  bool
	sent  int
}

func (b *loopbackBus) Publish(ctx context.Context, msg Message) error {
	if b.fail {
		return errors.New("bus down")
	}
	b.sent++
	b.onMsg(msg)
	return nil
}

func (b *loopbackBus) StartForwarder(ctx context.Context, onMsg func(Message)) error {
	b.onMsg = onMsg
	return nil
}

func TestManager_UseBus(t *testing.T) {
	m := NewManager(nil)
	bus := &loopbackBus{}
	require.NoError(t, m.UseBus(context.Background(), bus))

	conn := &fakeConn{}
	m.RegisterClient(conn, "board-1")
	m.Publish("board-1", "items_enriched", nil)

	assert.Eventually(t, func() bool { return len(conn.received()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, bus.sent)

	// Bus failures fall back to local delivery
	bus.fail = true
	m.Publish("board-1", "more_items_found", nil)
	assert.Eventually(t, func() bool { return len(conn.received()) == 2 }, time.Second, 5*time.Millisecond)
}
