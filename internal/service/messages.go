package service

import (
	"context"
	"time"

	"github.com/npezzotti/go-clubs/internal/database"
	"github.com/npezzotti/go-clubs/internal/server"
	"github.com/npezzotti/go-clubs/internal/types"
	"go.uber.org/zap"
)

type MessageService struct {
	messages database.MessageRepository
	owners   Owners
	pub      Publisher
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewMessageService(messages database.MessageRepository, owners Owners, pub Publisher, log *zap.SugaredLogger) *MessageService {
	return &MessageService{
		messages: messages,
		owners:   owners,
		pub:      pub,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *MessageService) List(ctx context.Context) ([]types.Message, error) {
	rows, err := s.messages.List(ctx)
	if err != nil {
		return nil, err
	}

	cache := newOwnerCache(s.owners)
	msgs := make([]types.Message, 0, len(rows))
	for _, row := range rows {
		owner, err := cache.get(ctx, row.UserId)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, toMessage(row, owner))
	}

	return msgs, nil
}

// Create stores a message from clerkId and publishes it on the messages topic.
func (s *MessageService) Create(ctx context.Context, msg types.Message, clerkId string) (types.Message, error) {
	owner, err := s.owners.Resolve(ctx, clerkId)
	if err != nil {
		return types.Message{}, err
	}

	saved, err := s.messages.Save(ctx, database.Message{
		Content:   msg.Content,
		CreatedAt: s.now(),
		UserId:    owner.ClerkId,
	})
	if err != nil {
		return types.Message{}, err
	}

	out := toMessage(saved, &owner)
	s.pub.Publish(server.TopicMessages, out)
	return out, nil
}
