package server

import (
	"encoding/json"
	"testing"

	"github.com/npezzotti/go-clubs/internal/testutil"
	"github.com/npezzotti/go-clubs/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, hub *Hub, buf int) *Client {
	return &Client{
		hub:  hub,
		log:  testutil.TestLogger(t),
		send: make(chan []byte, buf),
		stop: make(chan struct{}),
	}
}

func readFrame(t *testing.T, c *Client) ServerMessage {
	t.Helper()

	select {
	case data := <-c.send:
		var msg ServerMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	default:
		t.Fatal("expected a frame to be queued for the client")
	}
	return ServerMessage{}
}

func Test_queue(t *testing.T) {
	t.Run("successful queue", func(t *testing.T) {
		c := newTestClient(t, nil, 1)

		res := c.queue([]byte("frame"))
		assert.True(t, res, "expected queue to return true when channel is not full")
		assert.Equal(t, []byte("frame"), <-c.send)
	})
	t.Run("channel full", func(t *testing.T) {
		c := newTestClient(t, nil, 1)

		c.send <- []byte("first")
		res := c.queue([]byte("second"))
		assert.False(t, res, "expected queue to return false when channel is full")
		assert.Equal(t, []byte("first"), <-c.send, "expected the queued frame to be kept")
	})
}

func Test_queueMessage(t *testing.T) {
	c := newTestClient(t, nil, 1)

	assert.True(t, c.queueMessage(NoErrOK(7)))
	msg := readFrame(t, c)
	assert.Equal(t, 7, msg.Id)
	assert.Equal(t, 200, msg.Response.ResponseCode)
}

func Test_stopClient(t *testing.T) {
	c := &Client{
		stop: make(chan struct{}),
	}

	c.stopClient()
	assert.NotPanics(t, c.stopClient, "expected stopClient to be idempotent")

	select {
	case <-c.stop:
	default:
		t.Error("expected stop channel to be closed")
	}
}

func TestClient_handle(t *testing.T) {
	t.Run("subscribe", func(t *testing.T) {
		hub, _ := newTestHub(t)
		c := newTestClient(t, hub, 4)

		c.handle(&ClientMessage{BaseMessage: BaseMessage{Id: 1}, Subscribe: &Subscribe{Topic: TopicClubs}})

		msg := readFrame(t, c)
		assert.Equal(t, 1, msg.Id)
		assert.Equal(t, 200, msg.Response.ResponseCode)
		assert.Equal(t, 1, hub.subscriberCount(TopicClubs))
	})

	t.Run("subscribe to unknown topic", func(t *testing.T) {
		hub, _ := newTestHub(t)
		c := newTestClient(t, hub, 4)

		c.handle(&ClientMessage{BaseMessage: BaseMessage{Id: 2}, Subscribe: &Subscribe{Topic: "nope"}})

		msg := readFrame(t, c)
		assert.Equal(t, 2, msg.Id)
		assert.Equal(t, 404, msg.Response.ResponseCode)
	})

	t.Run("unsubscribe", func(t *testing.T) {
		hub, _ := newTestHub(t)
		c := newTestClient(t, hub, 4)
		require.NoError(t, hub.Subscribe(TopicMessages, c))

		c.handle(&ClientMessage{BaseMessage: BaseMessage{Id: 3}, Unsubscribe: &Unsubscribe{Topic: TopicMessages}})

		msg := readFrame(t, c)
		assert.Equal(t, 200, msg.Response.ResponseCode)
		assert.Equal(t, 0, hub.subscriberCount(TopicMessages))
	})

	t.Run("typing is echoed to typing subscribers", func(t *testing.T) {
		hub, _ := newTestHub(t)
		sender := newTestClient(t, hub, 4)
		watcher := newTestClient(t, hub, 4)
		require.NoError(t, hub.Subscribe(TopicTyping, watcher))

		sender.handle(&ClientMessage{BaseMessage: BaseMessage{Id: 4}, Typing: &types.TypingStatus{Username: "ann", Typing: true}})

		ack := readFrame(t, sender)
		assert.Equal(t, 202, ack.Response.ResponseCode)

		ev := readFrame(t, watcher)
		assert.Equal(t, TopicTyping, ev.Topic)
		assert.Equal(t, map[string]any{"username": "ann", "typing": true}, ev.Data)
	})

	t.Run("empty frame", func(t *testing.T) {
		hub, _ := newTestHub(t)
		c := newTestClient(t, hub, 4)

		c.handle(&ClientMessage{BaseMessage: BaseMessage{Id: 5}})

		msg := readFrame(t, c)
		assert.Equal(t, 5, msg.Id)
		assert.Equal(t, 400, msg.Response.ResponseCode)
	})
}
