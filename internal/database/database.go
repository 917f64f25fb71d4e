package database

import (
	"database/sql"
	"strings"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record conflicts with an existing record")
)

const uniqueViolation = "unique_violation"

// mapError translates driver errors into the package sentinels and
// prefixes everything else with the failing operation.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return errors.Wrap(ErrNotFound, op)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == uniqueViolation {
		return errors.Wrapf(ErrConflict, "%s: %s", op, pqErr.Constraint)
	}

	return errors.Wrap(err, op)
}

func checkDeleted(res sql.Result, err error, op string) error {
	if err != nil {
		return mapError(err, op)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err, op)
	}
	if n == 0 {
		return errors.Wrap(ErrNotFound, op)
	}

	return nil
}

func logQuery(log *zap.SugaredLogger, query string, args []any, err error) {
	log.Debugw("query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)
}
