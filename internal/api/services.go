package api

import (
	"context"
	"io"

	"github.com/npezzotti/go-clubs/internal/blob"
	"github.com/npezzotti/go-clubs/internal/types"
)

//go:generate mockgen -source=services.go -destination=mock_services_test.go -package=api

type Pinger interface {
	Ping(ctx context.Context) error
}

type UserDirectory interface {
	Resolve(ctx context.Context, clerkId string) (types.User, error)
	Upsert(ctx context.Context, user types.User) (types.User, error)
}

type ClubService interface {
	List(ctx context.Context) ([]types.Club, error)
	Get(ctx context.Context, id int64) (types.Club, error)
	Create(ctx context.Context, club types.Club, clerkId string) (types.Club, error)
	Update(ctx context.Context, id int64, club types.Club, clerkId string) (types.Club, error)
	Delete(ctx context.Context, id int64, clerkId string) error
	UpdateBanner(ctx context.Context, id int64, file io.Reader, meta blob.Metadata, clerkId string) (types.Club, error)
}

type BookService interface {
	List(ctx context.Context) ([]types.Book, error)
	Get(ctx context.Context, id int64) (types.Book, error)
	Create(ctx context.Context, book types.Book, clerkId string) (types.Book, error)
	Update(ctx context.Context, id int64, book types.Book, clerkId string) (types.Book, error)
	Delete(ctx context.Context, id int64, clerkId string) error
}

type MessageService interface {
	List(ctx context.Context) ([]types.Message, error)
	Create(ctx context.Context, msg types.Message, clerkId string) (types.Message, error)
}

// Services groups the domain services the handlers delegate to.
type Services struct {
	Users    UserDirectory
	Clubs    ClubService
	Books    BookService
	Messages MessageService
}
