package service

import (
	"context"

	"github.com/npezzotti/go-clubs/internal/database"
	"github.com/npezzotti/go-clubs/internal/types"
	"go.uber.org/zap"
)

// BookService manages books. Book changes are not broadcast.
type BookService struct {
	books  database.BookRepository
	owners Owners
	log    *zap.SugaredLogger
}

func NewBookService(books database.BookRepository, owners Owners, log *zap.SugaredLogger) *BookService {
	return &BookService{books: books, owners: owners, log: log}
}

func (s *BookService) List(ctx context.Context) ([]types.Book, error) {
	rows, err := s.books.List(ctx)
	if err != nil {
		return nil, err
	}

	cache := newOwnerCache(s.owners)
	books := make([]types.Book, 0, len(rows))
	for _, row := range rows {
		owner, err := cache.get(ctx, row.UserId)
		if err != nil {
			return nil, err
		}
		books = append(books, toBook(row, owner))
	}

	return books, nil
}

func (s *BookService) Get(ctx context.Context, id int64) (types.Book, error) {
	row, err := s.books.Get(ctx, id)
	if err != nil {
		return types.Book{}, err
	}

	owner, err := newOwnerCache(s.owners).get(ctx, row.UserId)
	if err != nil {
		return types.Book{}, err
	}
	return toBook(row, owner), nil
}

func (s *BookService) Create(ctx context.Context, book types.Book, clerkId string) (types.Book, error) {
	owner, err := s.owners.Resolve(ctx, clerkId)
	if err != nil {
		return types.Book{}, err
	}

	row := bookFields(book)
	row.UserId = owner.ClerkId

	saved, err := s.books.Save(ctx, row)
	if err != nil {
		return types.Book{}, err
	}

	return toBook(saved, &owner), nil
}

func (s *BookService) Update(ctx context.Context, id int64, book types.Book, clerkId string) (types.Book, error) {
	existing, err := s.books.Get(ctx, id)
	if err != nil {
		return types.Book{}, err
	}
	if err := checkOwner(existing, bookOwner, clerkId); err != nil {
		return types.Book{}, err
	}

	row := bookFields(book)
	row.Id = existing.Id
	row.UserId = existing.UserId

	saved, err := s.books.Save(ctx, row)
	if err != nil {
		return types.Book{}, err
	}

	owner, err := newOwnerCache(s.owners).get(ctx, saved.UserId)
	if err != nil {
		return types.Book{}, err
	}
	return toBook(saved, owner), nil
}

func (s *BookService) Delete(ctx context.Context, id int64, clerkId string) error {
	existing, err := s.books.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := checkOwner(existing, bookOwner, clerkId); err != nil {
		return err
	}

	return s.books.Delete(ctx, id)
}
