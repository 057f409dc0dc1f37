package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	"github.com/amirhosseinghanipour/idolbase/internal/infrastructure/persistence/db"
)

// SnapshotStore implements ports.SnapshotStore over the same tables as the repositories.
type SnapshotStore struct {
	pool db.Pool
}

func NewSnapshotStore(pool db.Pool) *SnapshotStore {
	return &SnapshotStore{pool: pool}
}

// LoadSnapshot reads the five exportable tables inside one transaction so the result is consistent.
func (s *SnapshotStore) LoadSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{}
	err := db.InTx(ctx, s.pool, func(tx db.DBTX) error {
		rows, err := tx.Query(ctx, allGroupsSQL)
		if err != nil {
			return err
		}
		if snap.Groups, err = collect(rows, scanGroup); err != nil {
			return err
		}
		if snap.Members, err = queryMembers(ctx, tx, allMembersSQL); err != nil {
			return err
		}
		rows, err = tx.Query(ctx, allSongsSQL)
		if err != nil {
			return err
		}
		if snap.Songs, err = collect(rows, scanSong); err != nil {
			return err
		}
		if snap.Formations, err = queryFormations(ctx, tx, allFormationsSQL); err != nil {
			return err
		}
		snap.Setlists, err = querySetlists(ctx, tx, allSetlistsSQL)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// ImportSnapshot upserts every row of snap and rewrites child collections. In replace mode rows
// absent from snap are deleted afterwards, children first, so FK cascades only touch removed rows.
func (s *SnapshotStore) ImportSnapshot(ctx context.Context, snap *domain.Snapshot, mode ports.ImportMode) error {
	return db.Translate(db.InTx(ctx, s.pool, func(tx db.DBTX) error {
		groupIDs := make([]uuid.UUID, 0, len(snap.Groups))
		for _, g := range snap.Groups {
			if _, err := tx.Exec(ctx, upsertGroupSQL, groupArgs(g)...); err != nil {
				return err
			}
			groupIDs = append(groupIDs, g.ID.UUID)
		}
		memberIDs := make([]uuid.UUID, 0, len(snap.Members))
		for _, m := range snap.Members {
			if _, err := tx.Exec(ctx, upsertMemberSQL, memberArgs(m)...); err != nil {
				return err
			}
			if err := writeImages(ctx, tx, m); err != nil {
				return err
			}
			memberIDs = append(memberIDs, m.ID.UUID)
		}
		songIDs := make([]uuid.UUID, 0, len(snap.Songs))
		for _, x := range snap.Songs {
			if _, err := tx.Exec(ctx, upsertSongSQL, songArgs(x)...); err != nil {
				return err
			}
			songIDs = append(songIDs, x.ID.UUID)
		}
		formationIDs := make([]uuid.UUID, 0, len(snap.Formations))
		for _, f := range snap.Formations {
			if _, err := tx.Exec(ctx, upsertFormationSQL, f.ID.UUID, f.GroupID.UUID, f.Name, f.CreatedAt, f.UpdatedAt); err != nil {
				return err
			}
			if err := writePositions(ctx, tx, f); err != nil {
				return err
			}
			formationIDs = append(formationIDs, f.ID.UUID)
		}
		setlistIDs := make([]uuid.UUID, 0, len(snap.Setlists))
		for _, x := range snap.Setlists {
			if _, err := tx.Exec(ctx, upsertSetlistSQL, x.ID.UUID, x.GroupID.UUID, x.Name, x.EventDate, x.CreatedAt, x.UpdatedAt); err != nil {
				return err
			}
			if err := writeItems(ctx, tx, x); err != nil {
				return err
			}
			setlistIDs = append(setlistIDs, x.ID.UUID)
		}
		if mode != ports.ImportReplace {
			return nil
		}
		for _, prune := range []struct {
			sql string
			ids []uuid.UUID
		}{
			{pruneSetlists, setlistIDs},
			{pruneFormations, formationIDs},
			{pruneSongsSQL, songIDs},
			{pruneMembersSQL, memberIDs},
			{pruneGroupsSQL, groupIDs},
		} {
			if _, err := tx.Exec(ctx, prune.sql, prune.ids); err != nil {
				return err
			}
		}
		return nil
	}))
}

var _ ports.SnapshotStore = (*SnapshotStore)(nil)
