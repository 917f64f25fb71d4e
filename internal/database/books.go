package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type PgBookRepository struct {
	db  *sqlx.DB
	log *zap.SugaredLogger
}

func NewPgBookRepository(db *sqlx.DB, log *zap.SugaredLogger) *PgBookRepository {
	return &PgBookRepository{db: db, log: log}
}

func (r *PgBookRepository) List(ctx context.Context) ([]Book, error) {
	books := []Book{}
	err := r.db.SelectContext(ctx, &books, listBooksQuery)
	logQuery(r.log, listBooksQuery, nil, err)
	if err != nil {
		return nil, mapError(err, "books.List")
	}

	return books, nil
}

func (r *PgBookRepository) Get(ctx context.Context, id int64) (Book, error) {
	var book Book
	args := []any{id}
	err := r.db.GetContext(ctx, &book, getBookQuery, args...)
	logQuery(r.log, getBookQuery, args, err)
	if err != nil {
		return Book{}, mapError(err, "books.Get")
	}

	return book, nil
}

// Save returns ErrConflict when the ISBN is already taken by another book.
func (r *PgBookRepository) Save(ctx context.Context, book Book) (Book, error) {
	fields := []any{
		book.Title,
		book.Author,
		book.Description,
		book.Price,
		book.PublicationYear,
		book.Isbn,
		book.UserId,
	}

	query, args := insertBookQuery, fields
	if book.Id != 0 {
		query, args = updateBookQuery, append([]any{book.Id}, fields...)
	}

	var saved Book
	err := r.db.GetContext(ctx, &saved, query, args...)
	logQuery(r.log, query, args, err)
	if err != nil {
		return Book{}, mapError(err, "books.Save")
	}

	return saved, nil
}

func (r *PgBookRepository) Delete(ctx context.Context, id int64) error {
	args := []any{id}
	res, err := r.db.ExecContext(ctx, deleteBookQuery, args...)
	logQuery(r.log, deleteBookQuery, args, err)
	return checkDeleted(res, err, "books.Delete")
}
