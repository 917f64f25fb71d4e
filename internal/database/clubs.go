package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type PgClubRepository struct {
	db  *sqlx.DB
	log *zap.SugaredLogger
}

func NewPgClubRepository(db *sqlx.DB, log *zap.SugaredLogger) *PgClubRepository {
	return &PgClubRepository{db: db, log: log}
}

func (r *PgClubRepository) List(ctx context.Context) ([]Club, error) {
	clubs := []Club{}
	err := r.db.SelectContext(ctx, &clubs, listClubsQuery)
	logQuery(r.log, listClubsQuery, nil, err)
	if err != nil {
		return nil, mapError(err, "clubs.List")
	}

	return clubs, nil
}

func (r *PgClubRepository) Get(ctx context.Context, id int64) (Club, error) {
	var club Club
	args := []any{id}
	err := r.db.GetContext(ctx, &club, getClubQuery, args...)
	logQuery(r.log, getClubQuery, args, err)
	if err != nil {
		return Club{}, mapError(err, "clubs.Get")
	}

	return club, nil
}

func (r *PgClubRepository) Save(ctx context.Context, club Club) (Club, error) {
	fields := []any{
		club.Name,
		club.Description,
		club.Location,
		club.FoundingYear,
		club.MembershipFee,
		club.MaxCapacity,
		club.CurrentMembers,
		club.ContactEmail,
		club.BannerUrl,
		club.UserId,
	}

	query, args := insertClubQuery, fields
	if club.Id != 0 {
		query, args = updateClubQuery, append([]any{club.Id}, fields...)
	}

	var saved Club
	err := r.db.GetContext(ctx, &saved, query, args...)
	logQuery(r.log, query, args, err)
	if err != nil {
		return Club{}, mapError(err, "clubs.Save")
	}

	return saved, nil
}

func (r *PgClubRepository) Delete(ctx context.Context, id int64) error {
	args := []any{id}
	res, err := r.db.ExecContext(ctx, deleteClubQuery, args...)
	logQuery(r.log, deleteClubQuery, args, err)
	return checkDeleted(res, err, "clubs.Delete")
}
