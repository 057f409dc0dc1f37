// Package db holds the pgx plumbing shared by the PostgreSQL repositories.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// DBTX is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Pool is a DBTX that can open transactions.
type Pool interface {
	DBTX
	Begin(context.Context) (pgx.Tx, error)
}

// InTx runs fn in a transaction and commits when fn succeeds.
func InTx(ctx context.Context, pool Pool, fn func(tx DBTX) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// constraintFields maps foreign key constraints to the request field they guard.
var constraintFields = map[string]string{
	"members_group_id_fkey":                    "groupId",
	"songs_group_id_fkey":                      "groupId",
	"formations_group_id_fkey":                 "groupId",
	"setlists_group_id_fkey":                   "groupId",
	"formation_positions_member_id_fkey":       "positions.memberId",
	"setlist_items_song_id_fkey":               "items.songId",
	"setlist_items_center_member_id_fkey":      "items.centerMemberId",
	"setlist_item_participants_member_id_fkey": "items.participantMemberIds",
	"conversations_member_id_fkey":             "memberId",
}

// Translate maps PostgreSQL constraint violations onto domain errors; other errors pass through.
func Translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolation:
		return domerrors.Conflict("duplicate value violates %s", pgErr.ConstraintName)
	case foreignKeyViolation:
		field, ok := constraintFields[pgErr.ConstraintName]
		if !ok {
			field = pgErr.ConstraintName
		}
		return domerrors.Invalid(field, "does not exist")
	}
	return err
}
