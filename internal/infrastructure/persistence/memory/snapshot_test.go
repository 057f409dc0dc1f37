package memory

import (
	"bytes"
	"context"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/idolbase/internal/domain"
)

func TestLoadSnapshotBreaksNameTiesByID(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	var groupIDs, songIDs []uuid.UUID
	for i := 0; i < 5; i++ {
		g, err := domain.NewGroup(domain.GroupParams{Name: "Same"})
		require.NoError(t, err)
		require.NoError(t, store.Groups().Create(ctx, g))
		groupIDs = append(groupIDs, g.ID.UUID)

		s, err := domain.NewSong(domain.SongParams{GroupID: g.ID, Title: "Encore"})
		require.NoError(t, err)
		require.NoError(t, store.Songs().Create(ctx, s))
		songIDs = append(songIDs, s.ID.UUID)
	}
	byBytes := func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) }
	slices.SortFunc(groupIDs, byBytes)
	slices.SortFunc(songIDs, byBytes)

	for run := 0; run < 3; run++ {
		snap, err := store.LoadSnapshot(ctx)
		require.NoError(t, err)
		var gotGroups, gotSongs []uuid.UUID
		for _, g := range snap.Groups {
			gotGroups = append(gotGroups, g.ID.UUID)
		}
		for _, s := range snap.Songs {
			gotSongs = append(gotSongs, s.ID.UUID)
		}
		assert.Equal(t, groupIDs, gotGroups)
		assert.Equal(t, songIDs, gotSongs)
	}
}
