package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/idolbase/internal/infrastructure/http/middleware"
	"github.com/amirhosseinghanipour/idolbase/internal/infrastructure/persistence/memory"
)

const adminKey = "test-admin-key"

type recordingEmitter struct {
	mu     sync.Mutex
	events []ports.ContentEvent
}

func (e *recordingEmitter) Emit(_ context.Context, ev ports.ContentEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
	return nil
}

func (e *recordingEmitter) names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.events))
	for _, ev := range e.events {
		out = append(out, ev.Event)
	}
	return out
}

type testAPI struct {
	t       *testing.T
	handler http.Handler
	emitter *recordingEmitter
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memory.NewStore()
	emitter := &recordingEmitter{}
	repos := handlers.Repositories{
		Groups:        store.Groups(),
		Members:       store.Members(),
		Songs:         store.Songs(),
		Formations:    store.Formations(),
		Setlists:      store.Setlists(),
		Conversations: store.Conversations(),
		Snapshots:     store,
	}
	h := NewRouter(RouterConfig{
		Content:       handlers.NewContent(repos, emitter, zerolog.Nop()),
		HealthHandler: handlers.NewHealthHandler(nil, nil),
		RequireAdmin:  middleware.RequireAdminKey(adminKey, nil),
		CORS:          middleware.CORS([]string{"https://admin.example.com"}),
		Log:           zerolog.Nop(),
		Secure:        middleware.NewSecure(middleware.SecureOptions(true)),
		Metrics:       true,
	})
	return &testAPI{t: t, handler: h, emitter: emitter}
}

// do sends a request; admin requests carry the admin key.
func (a *testAPI) do(method, path string, body any, admin bool) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set(middleware.AdminKeyHeader, adminKey)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (a *testAPI) createGroup(name string) dto.GroupDTO {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/groups", map[string]any{"name": name, "debutDate": "2011-08-22", "hasGeneration": true}, true)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[dto.GroupDTO](a.t, rec)
}

func (a *testAPI) createMember(name, groupID string, generation int) dto.MemberDTO {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/members", map[string]any{
		"name":       name,
		"birthDate":  "1998-02-10",
		"groupId":    groupID,
		"generation": generation,
		"images":     []map[string]any{{"url": "https://img.example.com/" + name + ".jpg", "isPrimary": true}},
	}, true)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[dto.MemberDTO](a.t, rec)
}

func (a *testAPI) createSong(title, groupID string) dto.SongDTO {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/songs", map[string]any{"title": title, "groupId": groupID, "releaseDate": "2012-02-22"}, true)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[dto.SongDTO](a.t, rec)
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(http.MethodGet, "/health", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, map[string]any{"database": "memory"}, body["checks"])
}

func TestWritesRequireAdminKey(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/groups", map[string]any{"name": "Nogizaka46"}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decode[map[string]any](t, rec)["code"])

	rec = api.do(http.MethodGet, "/api/data/export", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodGet, "/api/groups", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, APIVersion, rec.Header().Get("X-API-Version"))
}

func TestGroupLifecycle(t *testing.T) {
	api := newTestAPI(t)
	g := api.createGroup("Sakurazaka46")
	assert.Equal(t, "2011-08-22", *g.DebutDate)

	m := api.createMember("Hikaru", g.ID, 2)

	rec := api.do(http.MethodGet, "/api/groups/"+g.ID, nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[dto.GroupDetailDTO](t, rec)
	require.Len(t, detail.Members, 1)
	assert.Equal(t, m.ID, detail.Members[0].ID)
	assert.Equal(t, "https://img.example.com/Hikaru.jpg", *detail.Members[0].PrimaryImageURL)

	rec = api.do(http.MethodPut, "/api/groups/"+g.ID, map[string]any{"name": "Keyakizaka46", "hasGeneration": true}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[dto.GroupDTO](t, rec)
	assert.Equal(t, "Keyakizaka46", updated.Name)
	assert.Nil(t, updated.DebutDate)
	before, err := time.Parse(time.RFC3339Nano, g.UpdatedAt)
	require.NoError(t, err)
	after, err := time.Parse(time.RFC3339Nano, updated.UpdatedAt)
	require.NoError(t, err)
	assert.True(t, after.After(before))

	rec = api.do(http.MethodDelete, "/api/groups/"+g.ID, nil, true)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, "/api/groups/"+g.ID, nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[map[string]any](t, rec)["code"])

	// The member survives without a group.
	rec = api.do(http.MethodGet, "/api/members/"+m.ID, nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[dto.MemberDTO](t, rec).GroupID)

	assert.Equal(t, []string{"group.created", "member.created", "group.updated", "group.deleted"}, api.emitter.names())
}

func TestValidationErrorPayload(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/groups", map[string]any{"name": "   "}, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[handlers.ErrorResponse](t, rec)
	assert.Equal(t, handlers.ErrCodeValidation, body.Code)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "name", body.Errors[0].Field)

	rec = api.do(http.MethodPut, "/api/groups/not-a-uuid", map[string]any{"name": "x"}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, handlers.ErrCodeInvalidArgument, decode[handlers.ErrorResponse](t, rec).Code)

	rec = api.do(http.MethodPut, "/api/groups/8b0c6f0e-6f38-4d4e-9a55-2b9a3c7c1f00", map[string]any{"name": "x"}, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Empty(t, api.emitter.names())
}

func TestUnsupportedContentType(t *testing.T) {
	api := newTestAPI(t)
	req := httptest.NewRequest(http.MethodPost, "/api/groups", strings.NewReader("name=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(middleware.AdminKeyHeader, adminKey)
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestListPagingAndFilters(t *testing.T) {
	api := newTestAPI(t)
	g := api.createGroup("Hinatazaka46")
	for _, name := range []string{"Kyoko", "Mei", "Nao"} {
		api.createMember(name, g.ID, 1)
	}
	api.createMember("Hinano", g.ID, 2)

	rec := api.do(http.MethodGet, "/api/members?pageSize=3&page=2", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[dto.PagedResult[dto.MemberDTO]](t, rec)
	assert.Equal(t, 4, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.False(t, page.HasNextPage)
	assert.True(t, page.HasPreviousPage)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Hinano", page.Items[0].Name)

	rec = api.do(http.MethodGet, "/api/members?generation=1&search=ME&groupId="+g.ID, nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	page = decode[dto.PagedResult[dto.MemberDTO]](t, rec)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Mei", page.Items[0].Name)

	rec = api.do(http.MethodGet, "/api/members?generation=first", nil, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBulkDeleteCountsExistingIDs(t *testing.T) {
	api := newTestAPI(t)
	g := api.createGroup("AKB48")
	a := api.createSong("Heavy Rotation", g.ID)
	b := api.createSong("Flying Get", g.ID)

	rec := api.do(http.MethodPost, "/api/songs/bulk-delete", map[string]any{
		"ids": []string{a.ID, b.ID, a.ID, "8b0c6f0e-6f38-4d4e-9a55-2b9a3c7c1f00"},
	}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 2, decode[dto.BulkDeleteResult](t, rec).DeletedCount)
	assert.NotContains(t, rec.Body.String(), "deletedIds")
	last := api.emitter.events[len(api.emitter.events)-1]
	assert.Equal(t, "song.bulk_deleted", last.Event)
	assert.Equal(t, []string{a.ID, b.ID}, last.IDs)

	rec = api.do(http.MethodPost, "/api/songs/bulk-delete", map[string]any{"ids": []string{"bad"}}, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ids[0]", decode[handlers.ErrorResponse](t, rec).Errors[0].Field)
}

func TestFormationReferencesAndReplacement(t *testing.T) {
	api := newTestAPI(t)
	g := api.createGroup("Nogizaka46")
	asuka := api.createMember("Asuka", g.ID, 1)
	mai := api.createMember("Mai", g.ID, 1)

	rec := api.do(http.MethodPost, "/api/formations", map[string]any{
		"name":    "Synchronicity",
		"groupId": g.ID,
		"positions": []map[string]any{
			{"memberId": asuka.ID, "positionNumber": 1, "row": 1, "column": 1},
			{"memberId": "8b0c6f0e-6f38-4d4e-9a55-2b9a3c7c1f00", "positionNumber": 2, "row": 1, "column": 2},
		},
	}, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "positions[1].memberId", decode[handlers.ErrorResponse](t, rec).Errors[0].Field)

	rec = api.do(http.MethodPost, "/api/formations", map[string]any{
		"name":    "Synchronicity",
		"groupId": g.ID,
		"positions": []map[string]any{
			{"memberId": mai.ID, "positionNumber": 2, "row": 1, "column": 2},
			{"memberId": asuka.ID, "positionNumber": 1, "row": 1, "column": 1},
		},
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	f := decode[dto.FormationDTO](t, rec)
	require.Len(t, f.Positions, 2)
	assert.Equal(t, 1, f.Positions[0].PositionNumber)
	assert.Equal(t, "Asuka", *f.Positions[0].MemberName)

	rec = api.do(http.MethodPut, "/api/formations/"+f.ID, map[string]any{
		"name":      "Synchronicity",
		"groupId":   g.ID,
		"positions": []map[string]any{{"memberId": mai.ID, "positionNumber": 1, "row": 1, "column": 1}},
	}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	f = decode[dto.FormationDTO](t, rec)
	require.Len(t, f.Positions, 1)
	assert.Equal(t, mai.ID, f.Positions[0].MemberID)
}

func TestSetlistAndConversation(t *testing.T) {
	api := newTestAPI(t)
	g := api.createGroup("Nogizaka46")
	asuka := api.createMember("Asuka", g.ID, 1)
	song := api.createSong("Influencer", g.ID)

	rec := api.do(http.MethodPost, "/api/setlists", map[string]any{
		"name":      "Birthday Live",
		"groupId":   g.ID,
		"eventDate": "2023-02-22",
		"items": []map[string]any{{
			"songId":               song.ID,
			"order":                1,
			"centerMemberId":       asuka.ID,
			"participantMemberIds": []string{asuka.ID, asuka.ID},
		}},
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	s := decode[dto.SetlistDTO](t, rec)
	require.Len(t, s.Items, 1)
	assert.Equal(t, "Influencer", *s.Items[0].SongTitle)
	assert.Equal(t, "Asuka", *s.Items[0].CenterMemberName)
	assert.Equal(t, []string{asuka.ID}, s.Items[0].ParticipantMemberIDs)

	rec = api.do(http.MethodPost, "/api/conversations", map[string]any{
		"title":            "Meet and greet",
		"memberId":         asuka.ID,
		"conversationDate": "2024-05-01",
		"messages": []map[string]any{
			{"speakerType": "self", "content": "Hello!", "order": 2},
			{"speakerType": "member", "content": "Hi!", "order": 1},
		},
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	c := decode[dto.ConversationDTO](t, rec)
	assert.Equal(t, "Asuka", *c.MemberName)
	require.Len(t, c.Messages, 2)
	assert.Equal(t, "Hi!", c.Messages[0].Content)

	rec = api.do(http.MethodGet, "/api/conversations?memberId="+asuka.ID, nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[dto.PagedResult[dto.ConversationDTO]](t, rec).TotalCount)
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestAPI(t)
	g := src.createGroup("Nogizaka46")
	m := src.createMember("Asuka", g.ID, 1)
	song := src.createSong("Influencer", g.ID)
	rec := src.do(http.MethodPost, "/api/setlists", map[string]any{
		"name":    "Tour",
		"groupId": g.ID,
		"items":   []map[string]any{{"songId": song.ID, "order": 1, "participantMemberIds": []string{m.ID}}},
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = src.do(http.MethodGet, "/api/data/export", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	exported := decode[dto.ExportDataDTO](t, rec)
	assert.Equal(t, "1.0", exported.Version)

	dst := newTestAPI(t)
	rec = dst.do(http.MethodPost, "/api/data/import?mode=replace", exported, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, dto.ImportResultDTO{Groups: 1, Members: 1, Songs: 1, Setlists: 1}, decode[dto.ImportResultDTO](t, rec))

	rec = dst.do(http.MethodGet, "/api/data/export", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	again := decode[dto.ExportDataDTO](t, rec)
	again.ExportedAt = exported.ExportedAt
	assert.Equal(t, exported, again)
	assert.Contains(t, dst.emitter.names(), "data.imported")
}

func TestImportRejectsUnknownModeAndVersion(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/data/import?mode=upsert", map[string]any{"version": "1.0"}, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, handlers.ErrCodeInvalidArgument, decode[handlers.ErrorResponse](t, rec).Code)

	rec = api.do(http.MethodPost, "/api/data/import", map[string]any{"version": "2.0"}, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, handlers.ErrCodeInvalidArgument, decode[handlers.ErrorResponse](t, rec).Code)
}

func TestCORSPreflight(t *testing.T) {
	api := newTestAPI(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/groups", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", middleware.AdminKeyHeader)
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://admin.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestMetricsEndpoint(t *testing.T) {
	api := newTestAPI(t)
	api.do(http.MethodGet, "/api/groups", nil, false)

	rec := api.do(http.MethodGet, "/metrics", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "idolbase_http_request_duration_seconds")
	assert.Contains(t, rec.Body.String(), `route="/api/groups`)
}
