package group

import (
	"context"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// DeleteGroup removes one group. Its members stay, detached; its songs, formations and setlists go with it.
type DeleteGroup struct {
	groups ports.GroupRepository
}

// NewDeleteGroup builds the use case.
func NewDeleteGroup(groups ports.GroupRepository) *DeleteGroup {
	return &DeleteGroup{groups: groups}
}

// Execute deletes the group or returns NotFound.
func (uc *DeleteGroup) Execute(ctx context.Context, id domain.GroupID) error {
	deleted, err := uc.groups.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domerrors.NotFound(entityName, id.String())
	}
	return nil
}

// BulkDeleteGroups removes every existing group in a list of ids.
type BulkDeleteGroups struct {
	groups ports.GroupRepository
}

// NewBulkDeleteGroups builds the use case.
func NewBulkDeleteGroups(groups ports.GroupRepository) *BulkDeleteGroups {
	return &BulkDeleteGroups{groups: groups}
}

// Execute deletes the groups; unknown ids are skipped and not counted.
func (uc *BulkDeleteGroups) Execute(ctx context.Context, ids []domain.GroupID) (*dto.BulkDeleteResult, error) {
	ids = ports.Distinct(ids)
	if len(ids) == 0 {
		return &dto.BulkDeleteResult{}, nil
	}
	deleted, err := uc.groups.DeleteMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	return dto.NewBulkDeleteResult(deleted), nil
}
