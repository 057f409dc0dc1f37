package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
)

func TestHTTPEmitterPostsSignedEvent(t *testing.T) {
	var (
		got       ports.ContentEvent
		signature string
		auth      string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, Sign([]byte("s3cret"), body), r.Header.Get(SignatureHeader))
		signature = r.Header.Get(SignatureHeader)
		auth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	e := NewHTTPEmitter(srv.URL, WithSecret("s3cret"), WithHeader("Authorization", "Bearer t"))
	err := e.Emit(context.Background(), ports.ContentEvent{Event: "member.updated", Resource: "members", IDs: []string{"a"}})
	require.NoError(t, err)

	assert.Equal(t, "member.updated", got.Event)
	assert.Equal(t, "members", got.Resource)
	assert.Equal(t, []string{"a"}, got.IDs)
	assert.Len(t, signature, 64)
	assert.Equal(t, "Bearer t", auth)
}

func TestHTTPEmitterUnsignedWithoutSecret(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get(SignatureHeader))
	}))
	defer srv.Close()

	require.NoError(t, NewHTTPEmitter(srv.URL, WithSecret("")).Emit(context.Background(), ports.ContentEvent{Event: "data.imported", Resource: "data"}))
}

func TestHTTPEmitterNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewHTTPEmitter(srv.URL, WithClient(srv.Client())).Emit(context.Background(), ports.ContentEvent{Event: "group.deleted", Resource: "groups"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestNoopEmitter(t *testing.T) {
	assert.NoError(t, NewNoopEmitter().Emit(context.Background(), ports.ContentEvent{}))
}
