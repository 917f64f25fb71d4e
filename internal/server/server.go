package server

import (
	"context"
	"sync"
	"time"

	"github.com/npezzotti/go-clubs/internal/stats"
	"go.uber.org/zap"
)

const (
	NumConnections     = "NumConnections"
	NumEventsPublished = "NumEventsPublished"
	NumEventsDropped   = "NumEventsDropped"
)

const (
	relayPublishTimeout = 2 * time.Second
	relayRetryDelay     = time.Second
)

// Relay carries serialized frames between server instances. When a relay
// is configured every frame reaches local subscribers through Run.
type Relay interface {
	Publish(ctx context.Context, topic string, data []byte) error
	Run(ctx context.Context, deliver func(topic string, data []byte)) error
}

// EventSink receives a copy of every published frame.
type EventSink interface {
	Mirror(topic string, data []byte)
}

type Option func(*Hub)

func WithRelay(r Relay) Option {
	return func(h *Hub) { h.relay = r }
}

func WithSink(s EventSink) Option {
	return func(h *Hub) { h.sink = s }
}

// Hub routes published payloads to the clients subscribed to each topic.
// It never inspects payloads.
type Hub struct {
	log    *zap.SugaredLogger
	stats  stats.StatsProvider
	relay  Relay
	sink   EventSink
	mu     sync.RWMutex
	topics map[string]subscribers
	// clients tracks every live connection so shutdown can reach them.
	clients  map[*Client]struct{}
	conns    sync.WaitGroup
	closed   bool
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func NewHub(logger *zap.SugaredLogger, su stats.StatsProvider, opts ...Option) *Hub {
	h := &Hub{
		log:     logger,
		stats:   su,
		topics:  newTopicRegistry(),
		clients: make(map[*Client]struct{}),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(h)
	}

	su.RegisterMetric(NumConnections)
	su.RegisterMetric(NumEventsPublished)
	su.RegisterMetric(NumEventsDropped)

	return h
}

// Run blocks until Shutdown. With a relay configured it keeps the relay
// subscription alive, reconnecting after failures.
func (h *Hub) Run() {
	defer close(h.done)

	if h.relay == nil {
		<-h.stop
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-h.stop
		cancel()
	}()

	for {
		err := h.relay.Run(ctx, h.deliver)
		if ctx.Err() != nil {
			return
		}

		h.log.Errorw("relay stopped, retrying", "error", err)
		select {
		case <-h.stop:
			return
		case <-time.After(relayRetryDelay):
		}
	}
}

// Register adds a connection to the hub without subscribing it to anything.
func (h *Hub) Register(c *Client) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHubClosed
	}

	h.clients[c] = struct{}{}
	h.conns.Add(1)
	h.stats.Incr(NumConnections)
	return nil
}

// Unregister removes the connection from every topic.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, subs := range h.topics {
		delete(subs, c)
	}

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		h.stats.Decr(NumConnections)
		h.conns.Done()
	}
}

// Subscribe takes effect for the next Publish. Past events are not replayed.
func (h *Hub) Subscribe(topic string, c *Client) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.topics[topic]
	if !ok {
		return ErrUnknownTopic
	}

	subs[c] = struct{}{}
	return nil
}

func (h *Hub) Unsubscribe(topic string, c *Client) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.topics[topic]
	if !ok {
		return ErrUnknownTopic
	}

	delete(subs, c)
	return nil
}

// Publish delivers payload to every current subscriber of topic. It never
// blocks on a slow subscriber and never reports failure to the caller.
func (h *Hub) Publish(topic string, payload any) {
	data, err := serializeMessage(Event(topic, payload))
	if err != nil {
		h.log.Errorw("failed to serialize event", "topic", topic, "error", err)
		return
	}

	h.stats.Incr(NumEventsPublished)

	if h.sink != nil {
		h.sink.Mirror(topic, data)
	}

	if h.relay != nil {
		ctx, cancel := context.WithTimeout(context.Background(), relayPublishTimeout)
		err := h.relay.Publish(ctx, topic, data)
		cancel()
		if err == nil {
			return
		}
		h.log.Warnw("relay publish failed, delivering locally", "topic", topic, "error", err)
	}

	h.deliver(topic, data)
}

func (h *Hub) deliver(topic string, data []byte) {
	h.mu.RLock()
	dropped := 0
	for c := range h.topics[topic] {
		if !c.queue(data) {
			dropped++
		}
	}
	h.mu.RUnlock()

	for i := 0; i < dropped; i++ {
		h.stats.Incr(NumEventsDropped)
	}
	if dropped > 0 {
		h.log.Warnw("dropped events for slow subscribers", "topic", topic, "count", dropped)
	}
}

func (h *Hub) subscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Shutdown disconnects every client and stops Run. It returns once every
// client has unregistered and Run has exited, or when ctx is done.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.log.Info("shutting down hub")

	h.mu.Lock()
	h.closed = true
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.stopClient()
	}

	h.stopOnce.Do(func() { close(h.stop) })

	drained := make(chan struct{})
	go func() {
		h.conns.Wait()
		<-h.done
		close(drained)
	}()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
