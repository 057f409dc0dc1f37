package formation

import (
	"context"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// DeleteFormation removes one formation and its positions.
type DeleteFormation struct {
	formations ports.FormationRepository
}

// NewDeleteFormation builds the use case.
func NewDeleteFormation(formations ports.FormationRepository) *DeleteFormation {
	return &DeleteFormation{formations: formations}
}

func (uc *DeleteFormation) Execute(ctx context.Context, id domain.FormationID) error {
	deleted, err := uc.formations.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domerrors.NotFound(entityName, id.String())
	}
	return nil
}

// BulkDeleteFormations removes every existing formation in a list of ids.
type BulkDeleteFormations struct {
	formations ports.FormationRepository
}

// NewBulkDeleteFormations builds the use case.
func NewBulkDeleteFormations(formations ports.FormationRepository) *BulkDeleteFormations {
	return &BulkDeleteFormations{formations: formations}
}

func (uc *BulkDeleteFormations) Execute(ctx context.Context, ids []domain.FormationID) (*dto.BulkDeleteResult, error) {
	ids = ports.Distinct(ids)
	if len(ids) == 0 {
		return &dto.BulkDeleteResult{}, nil
	}
	deleted, err := uc.formations.DeleteMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	return dto.NewBulkDeleteResult(deleted), nil
}
