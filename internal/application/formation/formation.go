package formation

import (
	"context"
	"fmt"

	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/application/refs"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

const entityName = "formation"

// checkRefs verifies the group and every placed member exist and returns the member names.
// Indexes in field names refer to the request order of p.Positions.
func checkRefs(ctx context.Context, groups ports.GroupRepository, members ports.MemberRepository, p domain.FormationParams) (map[domain.MemberID]string, error) {
	v := &domerrors.ValidationError{}
	if err := refs.Group(ctx, groups, p.GroupID, "groupId", v); err != nil {
		return nil, err
	}
	list := make([]refs.MemberRef, 0, len(p.Positions))
	for i, pos := range p.Positions {
		list = append(list, refs.MemberRef{ID: pos.MemberID, Field: fmt.Sprintf("positions[%d].memberId", i)})
	}
	names, err := refs.Members(ctx, members, list, v)
	if err != nil {
		return nil, err
	}
	return names, v.Err()
}

// memberNames resolves the names of every member placed in any of formations.
func memberNames(ctx context.Context, members ports.MemberRepository, formations ...*domain.Formation) (map[domain.MemberID]string, error) {
	var ids []domain.MemberID
	for _, f := range formations {
		ids = append(ids, f.MemberIDs()...)
	}
	ids = ports.Distinct(ids)
	if len(ids) == 0 {
		return map[domain.MemberID]string{}, nil
	}
	return members.NamesByID(ctx, ids)
}
