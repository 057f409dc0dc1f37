// Package transfer exports and imports the content snapshot.
package transfer

import (
	"context"
	"time"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
)

// ExportData reads every group, member, song, formation and setlist into a versioned snapshot.
type ExportData struct {
	store ports.SnapshotStore
	now   func() time.Time
}

// NewExportData builds the use case.
func NewExportData(store ports.SnapshotStore) *ExportData {
	return &ExportData{store: store, now: time.Now}
}

func (uc *ExportData) Execute(ctx context.Context) (*dto.ExportDataDTO, error) {
	snap, err := uc.store.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := dto.ToExportData(snap, uc.now())
	return &out, nil
}
