package server

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisRelay shares published frames between instances through Redis
// pub/sub. Each topic maps to the channel prefix+topic.
type RedisRelay struct {
	client *redis.Client
	prefix string
	log    *zap.SugaredLogger
}

func NewRedisRelay(client *redis.Client, prefix string, log *zap.SugaredLogger) *RedisRelay {
	return &RedisRelay{client: client, prefix: prefix, log: log}
}

func (r *RedisRelay) Publish(ctx context.Context, topic string, data []byte) error {
	return r.client.Publish(ctx, r.prefix+topic, data).Err()
}

// Run delivers frames from every instance until ctx is cancelled or the
// subscription breaks.
func (r *RedisRelay) Run(ctx context.Context, deliver func(topic string, data []byte)) error {
	pubsub := r.client.PSubscribe(ctx, r.prefix+"*")
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	r.log.Infow("relay subscribed", "pattern", r.prefix+"*")

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			deliver(strings.TrimPrefix(msg.Channel, r.prefix), []byte(msg.Payload))
		}
	}
}
