package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type PgUserRepository struct {
	db  *sqlx.DB
	log *zap.SugaredLogger
}

func NewPgUserRepository(db *sqlx.DB, log *zap.SugaredLogger) *PgUserRepository {
	return &PgUserRepository{db: db, log: log}
}

func (r *PgUserRepository) List(ctx context.Context) ([]User, error) {
	users := []User{}
	err := r.db.SelectContext(ctx, &users, listUsersQuery)
	logQuery(r.log, listUsersQuery, nil, err)
	if err != nil {
		return nil, mapError(err, "users.List")
	}

	return users, nil
}

func (r *PgUserRepository) Get(ctx context.Context, clerkId string) (User, error) {
	var user User
	args := []any{clerkId}
	err := r.db.GetContext(ctx, &user, getUserQuery, args...)
	logQuery(r.log, getUserQuery, args, err)
	if err != nil {
		return User{}, mapError(err, "users.Get")
	}

	return user, nil
}

// Save inserts the user or, when the clerkId is already known, replaces
// its mutable fields. created_at is never overwritten.
func (r *PgUserRepository) Save(ctx context.Context, user User) (User, error) {
	args := []any{
		user.ClerkId,
		user.Email,
		user.FirstName,
		user.LastName,
		user.ImageUrl,
		user.Username,
		user.CreatedAt,
		user.UpdatedAt,
	}

	var saved User
	err := r.db.GetContext(ctx, &saved, saveUserQuery, args...)
	logQuery(r.log, saveUserQuery, args, err)
	if err != nil {
		return User{}, mapError(err, "users.Save")
	}

	return saved, nil
}

func (r *PgUserRepository) Delete(ctx context.Context, clerkId string) error {
	args := []any{clerkId}
	res, err := r.db.ExecContext(ctx, deleteUserQuery, args...)
	logQuery(r.log, deleteUserQuery, args, err)
	return checkDeleted(res, err, "users.Delete")
}
