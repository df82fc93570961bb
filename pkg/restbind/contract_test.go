package restbind_test

import (
	"net/http"
	"testing"

	"github.com/hexennacht/restbind/pkg/restbind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathTemplate(t *testing.T) {
	t.Parallel()

	t.Run("resolves parameters", func(t *testing.T) {
		t.Parallel()

		path := restbind.PathTemplate("/users/:id/posts/:postId")

		resolved, err := path(map[string]string{"id": "42", "postId": "7"})
		require.NoError(t, err)
		assert.Equal(t, "/users/42/posts/7", resolved)
	})

	t.Run("no parameters", func(t *testing.T) {
		t.Parallel()

		path := restbind.PathTemplate("/health")

		resolved, err := path(nil)
		require.NoError(t, err)
		assert.Equal(t, "/health", resolved)
	})

	t.Run("missing parameter fails naming it", func(t *testing.T) {
		t.Parallel()

		path := restbind.PathTemplate("/users/:id")

		_, err := path(map[string]string{"other": "x"})
		require.Error(t, err)
		require.ErrorIs(t, err, restbind.ErrMissingPathParam)
		assert.Contains(t, err.Error(), "id")
	})
}

func TestStaticPath(t *testing.T) {
	t.Parallel()

	path := restbind.StaticPath("/ping")

	resolved, err := path(map[string]string{"ignored": "yes"})
	require.NoError(t, err)
	assert.Equal(t, "/ping", resolved)
}

func TestRoute_Styles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method   string
		readable bool
	}{
		{http.MethodGet, true},
		{http.MethodHead, true},
		{http.MethodPost, false},
		{http.MethodPut, false},
		{http.MethodPatch, false},
		{http.MethodDelete, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.method, func(t *testing.T) {
			t.Parallel()

			route := restbind.Route{Method: tt.method}
			assert.Equal(t, tt.readable, route.Readable())
			assert.Equal(t, !tt.readable, route.Writable())
		})
	}
}

func TestStatusShapes(t *testing.T) {
	t.Parallel()

	t.Run("enumerated declaration", func(t *testing.T) {
		t.Parallel()

		shapes := restbind.StatusShapes{ByStatus: map[int]restbind.Shape{
			200: restbind.AnyShape{},
			404: restbind.AnyShape{},
		}}

		assert.True(t, shapes.Enumerated())
		assert.NotNil(t, shapes.ShapeFor(200))
		assert.NotNil(t, shapes.ShapeFor(404))
		assert.Nil(t, shapes.ShapeFor(500))
	})

	t.Run("catch-all declaration", func(t *testing.T) {
		t.Parallel()

		shapes := restbind.StatusShapes{CatchAll: restbind.AnyShape{}}

		assert.False(t, shapes.Enumerated())
		assert.NotNil(t, shapes.ShapeFor(200))
		assert.NotNil(t, shapes.ShapeFor(500))
	})
}
