// Package identity maps externally issued clerk ids onto stored users.
package identity

import (
	"context"
	"time"

	"github.com/npezzotti/go-clubs/internal/database"
	"github.com/npezzotti/go-clubs/internal/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Directory struct {
	users database.UserRepository
	log   *zap.SugaredLogger
	now   func() time.Time
}

func NewDirectory(users database.UserRepository, log *zap.SugaredLogger) *Directory {
	return &Directory{
		users: users,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Resolve returns the user registered under clerkId, or database.ErrNotFound.
func (d *Directory) Resolve(ctx context.Context, clerkId string) (types.User, error) {
	u, err := d.users.Get(ctx, clerkId)
	if err != nil {
		return types.User{}, err
	}

	return ToUser(u), nil
}

// Upsert registers a new user or refreshes an existing one. Empty fields
// in user never clear stored values, and createdAt is only set once.
func (d *Directory) Upsert(ctx context.Context, user types.User) (types.User, error) {
	now := d.now()

	existing, err := d.users.Get(ctx, user.ClerkId)
	switch {
	case errors.Is(err, database.ErrNotFound):
		existing = database.User{ClerkId: user.ClerkId, CreatedAt: now}
		d.log.Infow("registering user", "clerk_id", user.ClerkId)
	case err != nil:
		return types.User{}, err
	}

	merge(&existing, user)
	existing.UpdatedAt = now

	saved, err := d.users.Save(ctx, existing)
	if err != nil {
		return types.User{}, err
	}

	return ToUser(saved), nil
}

func merge(dst *database.User, src types.User) {
	if src.Email != "" {
		dst.Email = src.Email
	}
	if src.FirstName != "" {
		dst.FirstName = src.FirstName
	}
	if src.LastName != "" {
		dst.LastName = src.LastName
	}
	if src.ImageUrl != "" {
		dst.ImageUrl = src.ImageUrl
	}
	if src.Username != "" {
		dst.Username = src.Username
	}
}

func ToUser(u database.User) types.User {
	return types.User{
		ClerkId:   u.ClerkId,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		ImageUrl:  u.ImageUrl,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
