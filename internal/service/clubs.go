package service

import (
	"context"
	"errors"
	"io"

	"github.com/npezzotti/go-clubs/internal/blob"
	"github.com/npezzotti/go-clubs/internal/database"
	"github.com/npezzotti/go-clubs/internal/server"
	"github.com/npezzotti/go-clubs/internal/types"
	"go.uber.org/zap"
)

type ClubService struct {
	clubs  database.ClubRepository
	owners Owners
	blobs  blob.Store
	pub    Publisher
	log    *zap.SugaredLogger
}

func NewClubService(clubs database.ClubRepository, owners Owners, blobs blob.Store, pub Publisher, log *zap.SugaredLogger) *ClubService {
	return &ClubService{
		clubs:  clubs,
		owners: owners,
		blobs:  blobs,
		pub:    pub,
		log:    log,
	}
}

func (s *ClubService) List(ctx context.Context) ([]types.Club, error) {
	rows, err := s.clubs.List(ctx)
	if err != nil {
		return nil, err
	}

	cache := newOwnerCache(s.owners)
	clubs := make([]types.Club, 0, len(rows))
	for _, row := range rows {
		owner, err := cache.get(ctx, row.UserId)
		if err != nil {
			return nil, err
		}
		clubs = append(clubs, toClub(row, owner))
	}

	return clubs, nil
}

func (s *ClubService) Get(ctx context.Context, id int64) (types.Club, error) {
	row, err := s.clubs.Get(ctx, id)
	if err != nil {
		return types.Club{}, err
	}

	return s.hydrate(ctx, row)
}

// Create stores a new club owned by clerkId and announces it on the clubs topic.
func (s *ClubService) Create(ctx context.Context, club types.Club, clerkId string) (types.Club, error) {
	owner, err := s.owners.Resolve(ctx, clerkId)
	if err != nil {
		return types.Club{}, err
	}

	row := clubFields(club)
	row.UserId = owner.ClerkId

	saved, err := s.clubs.Save(ctx, row)
	if err != nil {
		return types.Club{}, err
	}

	out := toClub(saved, &owner)
	s.pub.Publish(server.TopicClubs, out)
	return out, nil
}

// Update replaces the editable fields of a club. Owner and banner are kept.
func (s *ClubService) Update(ctx context.Context, id int64, club types.Club, clerkId string) (types.Club, error) {
	existing, err := s.clubs.Get(ctx, id)
	if err != nil {
		return types.Club{}, err
	}
	if err := checkOwner(existing, clubOwner, clerkId); err != nil {
		return types.Club{}, err
	}

	row := clubFields(club)
	row.Id = existing.Id
	row.UserId = existing.UserId
	row.BannerUrl = existing.BannerUrl

	saved, err := s.clubs.Save(ctx, row)
	if err != nil {
		return types.Club{}, err
	}

	out, err := s.hydrate(ctx, saved)
	if err != nil {
		return types.Club{}, err
	}

	s.pub.Publish(server.TopicClubs, out)
	return out, nil
}

// Delete removes the club and its banner, then publishes the id on clubs/delete.
func (s *ClubService) Delete(ctx context.Context, id int64, clerkId string) error {
	existing, err := s.clubs.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := checkOwner(existing, clubOwner, clerkId); err != nil {
		return err
	}

	if err := s.clubs.Delete(ctx, id); err != nil {
		return err
	}

	if existing.BannerUrl != "" {
		if err := s.blobs.Delete(ctx, existing.BannerUrl); err != nil && !errors.Is(err, blob.ErrNotFound) {
			s.log.Errorw("failed to delete banner of deleted club", "club_id", id, "ref", existing.BannerUrl, "error", err)
		}
	}

	s.pub.Publish(server.TopicClubsDelete, id)
	return nil
}

// UpdateBanner swaps the club banner: the old blob is deleted before the
// new one is stored, then the club is saved and announced.
func (s *ClubService) UpdateBanner(ctx context.Context, id int64, file io.Reader, meta blob.Metadata, clerkId string) (types.Club, error) {
	existing, err := s.clubs.Get(ctx, id)
	if err != nil {
		return types.Club{}, err
	}
	if err := checkOwner(existing, clubOwner, clerkId); err != nil {
		return types.Club{}, err
	}

	oldRef := existing.BannerUrl
	if oldRef != "" {
		if err := s.blobs.Delete(ctx, oldRef); err != nil && !errors.Is(err, blob.ErrNotFound) {
			return types.Club{}, err
		}
	}

	ref, err := s.blobs.Store(ctx, file, meta)
	if err != nil {
		s.clearBanner(ctx, existing)
		return types.Club{}, err
	}

	existing.BannerUrl = ref
	saved, err := s.clubs.Save(ctx, existing)
	if err != nil {
		if derr := s.blobs.Delete(ctx, ref); derr != nil {
			s.log.Warnw("failed to remove orphaned banner", "ref", ref, "error", derr)
		}
		existing.BannerUrl = oldRef
		s.clearBanner(ctx, existing)
		return types.Club{}, err
	}

	out, err := s.hydrate(ctx, saved)
	if err != nil {
		return types.Club{}, err
	}

	s.pub.Publish(server.TopicClubs, out)
	return out, nil
}

// clearBanner empties a reference whose blob is already gone.
func (s *ClubService) clearBanner(ctx context.Context, row database.Club) {
	if row.BannerUrl == "" {
		return
	}

	ref := row.BannerUrl
	row.BannerUrl = ""
	if _, err := s.clubs.Save(ctx, row); err != nil {
		s.log.Errorw("failed to clear deleted banner", "club_id", row.Id, "ref", ref, "error", err)
	}
}

func (s *ClubService) hydrate(ctx context.Context, row database.Club) (types.Club, error) {
	owner, err := newOwnerCache(s.owners).get(ctx, row.UserId)
	if err != nil {
		return types.Club{}, err
	}
	return toClub(row, owner), nil
}
