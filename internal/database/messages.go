package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type PgMessageRepository struct {
	db  *sqlx.DB
	log *zap.SugaredLogger
}

func NewPgMessageRepository(db *sqlx.DB, log *zap.SugaredLogger) *PgMessageRepository {
	return &PgMessageRepository{db: db, log: log}
}

func (r *PgMessageRepository) List(ctx context.Context) ([]Message, error) {
	msgs := []Message{}
	err := r.db.SelectContext(ctx, &msgs, listMessagesQuery)
	logQuery(r.log, listMessagesQuery, nil, err)
	if err != nil {
		return nil, mapError(err, "messages.List")
	}

	return msgs, nil
}

func (r *PgMessageRepository) Get(ctx context.Context, id int64) (Message, error) {
	var msg Message
	args := []any{id}
	err := r.db.GetContext(ctx, &msg, getMessageQuery, args...)
	logQuery(r.log, getMessageQuery, args, err)
	if err != nil {
		return Message{}, mapError(err, "messages.Get")
	}

	return msg, nil
}

func (r *PgMessageRepository) Save(ctx context.Context, msg Message) (Message, error) {
	fields := []any{msg.Content, msg.CreatedAt, msg.UserId}

	query, args := insertMessageQuery, fields
	if msg.Id != 0 {
		query, args = updateMessageQuery, append([]any{msg.Id}, fields...)
	}

	var saved Message
	err := r.db.GetContext(ctx, &saved, query, args...)
	logQuery(r.log, query, args, err)
	if err != nil {
		return Message{}, mapError(err, "messages.Save")
	}

	return saved, nil
}

func (r *PgMessageRepository) Delete(ctx context.Context, id int64) error {
	args := []any{id}
	res, err := r.db.ExecContext(ctx, deleteMessageQuery, args...)
	logQuery(r.log, deleteMessageQuery, args, err)
	return checkDeleted(res, err, "messages.Delete")
}
