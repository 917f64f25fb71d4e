package database

import "context"

// Each repository exposes the same four operations. Save inserts when the
// record has no id yet (or, for users, on first sight of the clerkId) and
// updates by primary key otherwise. Get, Delete and updating Save return
// ErrNotFound for a missing row.

type UserRepository interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, clerkId string) (User, error)
	Save(ctx context.Context, user User) (User, error)
	Delete(ctx context.Context, clerkId string) error
}

type ClubRepository interface {
	List(ctx context.Context) ([]Club, error)
	Get(ctx context.Context, id int64) (Club, error)
	Save(ctx context.Context, club Club) (Club, error)
	Delete(ctx context.Context, id int64) error
}

type BookRepository interface {
	List(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, id int64) (Book, error)
	Save(ctx context.Context, book Book) (Book, error)
	Delete(ctx context.Context, id int64) error
}

type MessageRepository interface {
	List(ctx context.Context) ([]Message, error)
	Get(ctx context.Context, id int64) (Message, error)
	Save(ctx context.Context, msg Message) (Message, error)
	Delete(ctx context.Context, id int64) error
}
