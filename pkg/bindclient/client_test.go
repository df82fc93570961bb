package bindclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/hexennacht/restbind/pkg/bindclient"
	"github.com/hexennacht/restbind/pkg/lifecycle"
	"github.com/hexennacht/restbind/pkg/restbind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userTree() restbind.Tree {
	return restbind.Tree{
		"users": restbind.Tree{
			"byId": restbind.Route{
				Method: http.MethodGet,
				Path:   restbind.PathTemplate("/users/:id"),
				Responses: restbind.StatusShapes{ByStatus: map[int]restbind.Shape{
					200: restbind.AnyShape{},
					404: restbind.AnyShape{},
				}},
			},
			"create": restbind.Route{
				Method:    http.MethodPost,
				Path:      restbind.StaticPath("/users"),
				Responses: restbind.StatusShapes{ByStatus: map[int]restbind.Shape{201: restbind.AnyShape{}}},
			},
		},
	}
}

func TestConnectionArgs_Validation(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := bindclient.ConnectionArgs(nil)
		require.ErrorIs(t, err, restbind.ErrConfigRequired)
	})

	t.Run("missing base URL", func(t *testing.T) {
		t.Parallel()

		_, err := bindclient.ConnectionArgs(&restbind.Config{})
		require.ErrorIs(t, err, restbind.ErrBaseURLRequired)
	})
}

func TestConnectionArgs_NormalizesBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trailing slash trimmed", "https://api.example.com/", "https://api.example.com"},
		{"scheme added", "api.example.com", "https://api.example.com"},
		{"http preserved", "http://localhost:8080", "http://localhost:8080"},
		{"already normalized", "https://api.example.com", "https://api.example.com"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args, err := bindclient.ConnectionArgs(&restbind.Config{BaseURL: tt.in})
			require.NoError(t, err)
			assert.Equal(t, tt.want, args.BaseURL)
		})
	}
}

func TestConnectionArgs_Defaults(t *testing.T) {
	t.Parallel()

	args, err := bindclient.ConnectionArgs(&restbind.Config{BaseURL: "https://api.example.com"})
	require.NoError(t, err)

	assert.NotNil(t, args.Transport)
	assert.NotNil(t, args.Engine)
}

func TestConnectionArgs_InvalidCacheConfig(t *testing.T) {
	t.Parallel()

	_, err := bindclient.ConnectionArgs(&restbind.Config{
		BaseURL: "https://api.example.com",
		Cache:   &lifecycle.Config{Store: "redis"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "building lifecycle engine")
}

func TestNew_EndToEnd(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/users/42":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"42","name":"Ann"}`))

		case r.Method == http.MethodPost && r.URL.Path == "/users":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"43","name":"Bea"}`))

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	bound, err := bindclient.New(&restbind.Config{BaseURL: server.URL}, userTree())
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("query", func(t *testing.T) {
		query, err := bound.At("users.byId").Query()
		require.NoError(t, err)

		data, err := query(ctx, restbind.CallArgs{Params: map[string]string{"id": "42"}})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"id": "42", "name": "Ann"}, data)
	})

	t.Run("mutation", func(t *testing.T) {
		mutation, err := bound.At("users.create").Mutation()
		require.NoError(t, err)

		data, err := mutation(ctx, restbind.CallArgs{Body: map[string]any{"name": "Bea"}})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"id": "43", "name": "Bea"}, data)
	})

	t.Run("useQuery caches", func(t *testing.T) {
		useQuery, err := bound.At("users.byId").UseQuery()
		require.NoError(t, err)

		before := requests.Load()

		first, err := useQuery(ctx, "users:42", restbind.CallArgs{Params: map[string]string{"id": "42"}})
		require.NoError(t, err)
		assert.False(t, first.FromCache())

		second, err := useQuery(ctx, "users:42", restbind.CallArgs{Params: map[string]string{"id": "42"}})
		require.NoError(t, err)
		assert.True(t, second.FromCache())
		assert.Equal(t, first.Data(), second.Data())

		assert.Equal(t, before+1, requests.Load())
	})
}
