package server

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBufferSize = 256
)

// Client is one websocket subscriber. Read and Write each run on their own
// goroutine; send is the only path for frames to reach the connection.
type Client struct {
	conn     *websocket.Conn
	hub      *Hub
	log      *zap.SugaredLogger
	send     chan []byte
	stop     chan struct{}
	stopOnce sync.Once
}

func NewClient(conn *websocket.Conn, hub *Hub, l *zap.SugaredLogger) *Client {
	return &Client{
		conn: conn,
		hub:  hub,
		log:  l,
		send: make(chan []byte, sendBufferSize),
		stop: make(chan struct{}),
	}
}

func (c *Client) Write() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		c.log.Debugw("write exiting", "remote_addr", c.conn.RemoteAddr().String())
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}

			if !c.sendMessage(websocket.TextMessage, msg) {
				return
			}
		case <-c.stop:
			c.sendMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return
		case <-ticker.C:
			if !c.sendMessage(websocket.PingMessage, nil) {
				return
			}
		}
	}
}

func (c *Client) Read() {
	defer func() {
		c.conn.Close()
		c.cleanup()
		c.log.Debugw("read exiting", "remote_addr", c.conn.RemoteAddr().String())
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(appData string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				c.log.Warnw("ws read", "error", err)
			}
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.log.Debugw("error parsing message", "error", err)
			c.queueMessage(ErrInvalidMessage(-1))
			continue
		}

		c.handle(&msg)
	}
}

func (c *Client) handle(msg *ClientMessage) {
	switch {
	case msg.Subscribe != nil:
		if err := c.hub.Subscribe(msg.Subscribe.Topic, c); err != nil {
			c.queueMessage(ErrTopicNotFound(msg.Id))
			return
		}
		c.queueMessage(NoErrOK(msg.Id))
	case msg.Unsubscribe != nil:
		if err := c.hub.Unsubscribe(msg.Unsubscribe.Topic, c); err != nil {
			c.queueMessage(ErrTopicNotFound(msg.Id))
			return
		}
		c.queueMessage(NoErrOK(msg.Id))
	case msg.Typing != nil:
		c.hub.Publish(TopicTyping, *msg.Typing)
		c.queueMessage(NoErrAccepted(msg.Id))
	default:
		c.queueMessage(ErrInvalidMessage(msg.Id))
	}
}

func (c *Client) queueMessage(msg *ServerMessage) bool {
	data, err := serializeMessage(msg)
	if err != nil {
		c.log.Errorw("failed to serialize message", "error", err)
		return false
	}

	return c.queue(data)
}

// queue never blocks. A full send buffer drops the frame for this client only.
func (c *Client) queue(data []byte) bool {
	select {
	case c.send <- data:
	default:
		c.log.Warnw("failed to send message to client, channel is full")
		return false
	}

	return true
}

func (c *Client) sendMessage(msgType int, msg []byte) bool {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err := c.conn.WriteMessage(msgType, msg); err != nil {
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
			websocket.CloseNormalClosure) {
			c.log.Warnw("write message", "error", err)
		}
		return false
	}

	return true
}

func (c *Client) stopClient() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Client) cleanup() {
	c.hub.Unregister(c)
	c.stopClient()
}
