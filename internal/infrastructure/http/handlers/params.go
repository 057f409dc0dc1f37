package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, domerrors.InvalidArgument("id must be a valid UUID")
	}
	return id, nil
}

// listQuery reads page, pageSize and search. Missing values fall back to the defaults in ports.ListQuery.
func listQuery(r *http.Request) (ports.ListQuery, error) {
	q := r.URL.Query()
	page, err := queryInt(r, "page")
	if err != nil {
		return ports.ListQuery{}, err
	}
	size, err := queryInt(r, "pageSize")
	if err != nil {
		return ports.ListQuery{}, err
	}
	lq := ports.ListQuery{Search: q.Get("search")}
	if page != nil {
		lq.Page = *page
	}
	if size != nil {
		lq.PageSize = *size
	}
	return lq.Normalize(), nil
}

func queryInt(r *http.Request, key string) (*int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, domerrors.InvalidArgument("%s must be an integer", key)
	}
	return &n, nil
}

func queryBool(r *http.Request, key string) (*bool, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, domerrors.InvalidArgument("%s must be true or false", key)
	}
	return &b, nil
}

func queryUUID(r *http.Request, key string) (*uuid.UUID, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, domerrors.InvalidArgument("%s must be a valid UUID", key)
	}
	return &id, nil
}

// bulkDeleteRequest is the body of POST /api/{resource}/bulk-delete.
type bulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"dive,uuid"`
}

// uuids converts validated id strings.
func (b bulkDeleteRequest) uuids() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(b.IDs))
	for _, s := range b.IDs {
		out = append(out, parseUUID(s))
	}
	return out
}

// convertIDs wraps raw uuids into a typed id slice.
func convertIDs[T any](ids []uuid.UUID, wrap func(uuid.UUID) T) []T {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, wrap(id))
	}
	return out
}

// groupFilter reads the optional groupId query parameter.
func groupFilter(r *http.Request) (*domain.GroupID, error) {
	id, err := queryUUID(r, "groupId")
	if err != nil || id == nil {
		return nil, err
	}
	gid := domain.NewGroupID(*id)
	return &gid, nil
}
