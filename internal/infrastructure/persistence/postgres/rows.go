package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	"github.com/amirhosseinghanipour/idolbase/internal/infrastructure/persistence/db"
)

// collect scans every row with scan and closes rows.
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (T, error)) ([]T, error) {
	defer rows.Close()
	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// deleteReturning runs a DELETE ... RETURNING id and wraps every removed id.
func deleteReturning[T any](ctx context.Context, q db.DBTX, sql string, ids []uuid.UUID, wrap func(uuid.UUID) T) ([]T, error) {
	rows, err := q.Query(ctx, sql, ids)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row pgx.Row) (T, error) {
		var id uuid.UUID
		err := row.Scan(&id)
		return wrap(id), err
	})
}

// uuids unwraps typed ids for ANY($1) parameters.
func uuids[T interface{ ~struct{ uuid.UUID } }](ids []T) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		out = append(out, struct{ uuid.UUID }(id).UUID)
	}
	return out
}

// utcDate drops the zone PostgreSQL attaches to DATE values.
func utcDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := domain.DateOf(*t)
	return &d
}

func memberIDPtr(id *uuid.UUID) *domain.MemberID {
	if id == nil {
		return nil
	}
	m := domain.NewMemberID(*id)
	return &m
}

func memberUUIDPtr(id *domain.MemberID) *uuid.UUID {
	if id == nil {
		return nil
	}
	u := id.UUID
	return &u
}
