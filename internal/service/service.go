// Package service holds the domain rules that sit between the HTTP handlers
// and the stores: ownership checks, owner hydration and event publishing.
package service

import (
	"context"
	"errors"

	"github.com/npezzotti/go-clubs/internal/database"
	"github.com/npezzotti/go-clubs/internal/types"
)

var ErrUnauthorized = errors.New("caller does not own this record")

// Publisher fans a payload out to the subscribers of a topic.
type Publisher interface {
	Publish(topic string, payload any)
}

// Owners resolves clerk ids to users.
type Owners interface {
	Resolve(ctx context.Context, clerkId string) (types.User, error)
}

// checkOwner is the single ownership guard applied before every update
// or delete.
func checkOwner[T any](record T, ownerOf func(T) string, clerkId string) error {
	if clerkId == "" || ownerOf(record) != clerkId {
		return ErrUnauthorized
	}
	return nil
}

// ownerCache resolves each distinct owner once per operation. Owners that
// no longer exist are reported by clerkId alone.
type ownerCache struct {
	owners Owners
	seen   map[string]*types.User
}

func newOwnerCache(owners Owners) *ownerCache {
	return &ownerCache{owners: owners, seen: make(map[string]*types.User)}
}

func (oc *ownerCache) get(ctx context.Context, clerkId string) (*types.User, error) {
	if u, ok := oc.seen[clerkId]; ok {
		return u, nil
	}

	u, err := oc.owners.Resolve(ctx, clerkId)
	switch {
	case errors.Is(err, database.ErrNotFound):
		u = types.User{ClerkId: clerkId}
	case err != nil:
		return nil, err
	}

	oc.seen[clerkId] = &u
	return &u, nil
}
