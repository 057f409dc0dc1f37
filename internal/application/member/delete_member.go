package member

import (
	"context"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// DeleteMember removes one member along with its formation slots and setlist participation.
type DeleteMember struct {
	members ports.MemberRepository
}

// NewDeleteMember builds the use case.
func NewDeleteMember(members ports.MemberRepository) *DeleteMember {
	return &DeleteMember{members: members}
}

// Execute deletes the member or returns NotFound.
func (uc *DeleteMember) Execute(ctx context.Context, id domain.MemberID) error {
	deleted, err := uc.members.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domerrors.NotFound(entityName, id.String())
	}
	return nil
}

// BulkDeleteMembers removes every existing member in a list of ids.
type BulkDeleteMembers struct {
	members ports.MemberRepository
}

// NewBulkDeleteMembers builds the use case.
func NewBulkDeleteMembers(members ports.MemberRepository) *BulkDeleteMembers {
	return &BulkDeleteMembers{members: members}
}

// Execute deletes the members; unknown ids are skipped and not counted.
func (uc *BulkDeleteMembers) Execute(ctx context.Context, ids []domain.MemberID) (*dto.BulkDeleteResult, error) {
	ids = ports.Distinct(ids)
	if len(ids) == 0 {
		return &dto.BulkDeleteResult{}, nil
	}
	deleted, err := uc.members.DeleteMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	return dto.NewBulkDeleteResult(deleted), nil
}
