package restbind_test

import (
	"strconv"
	"testing"

	"github.com/hexennacht/restbind/pkg/restbind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_StatusBoundaries(t *testing.T) {
	t.Parallel()

	route := restbind.Route{Responses: restbind.StatusShapes{CatchAll: restbind.AnyShape{}}}

	tests := []struct {
		status  int
		success bool
	}{
		{199, false},
		{200, true},
		{299, true},
		{300, false},
		{100, false},
		{404, false},
		{500, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(strconv.Itoa(tt.status), func(t *testing.T) {
			t.Parallel()

			outcome := restbind.Classify(&restbind.Result{Status: tt.status}, route)
			assert.Equal(t, tt.success, outcome.Success)
			assert.Equal(t, tt.status, outcome.Status)
		})
	}
}

func TestClassify_SuccessPayloadShape(t *testing.T) {
	t.Parallel()

	t.Run("enumerated declaration yields inner data", func(t *testing.T) {
		t.Parallel()

		route := restbind.Route{Responses: restbind.StatusShapes{ByStatus: map[int]restbind.Shape{
			200: restbind.AnyShape{},
		}}}

		result := &restbind.Result{Status: 200, Data: map[string]any{"id": "42"}}
		outcome := restbind.Classify(result, route)

		require.True(t, outcome.Success)
		assert.Equal(t, result.Data, outcome.Payload)
	})

	t.Run("catch-all declaration yields the whole result", func(t *testing.T) {
		t.Parallel()

		route := restbind.Route{Responses: restbind.StatusShapes{CatchAll: restbind.AnyShape{}}}

		result := &restbind.Result{Status: 200, Data: map[string]any{"id": "42"}}
		outcome := restbind.Classify(result, route)

		require.True(t, outcome.Success)
		assert.Equal(t, result, outcome.Payload)
	})
}

func TestClassify_ErrorBranch(t *testing.T) {
	t.Parallel()

	route := restbind.Route{Responses: restbind.StatusShapes{ByStatus: map[int]restbind.Shape{
		200: restbind.AnyShape{},
		404: restbind.AnyShape{},
	}}}

	t.Run("declared failure status", func(t *testing.T) {
		t.Parallel()

		result := &restbind.Result{Status: 404, Data: map[string]any{"message": "not found"}}
		outcome := restbind.Classify(result, route)

		require.False(t, outcome.Success)
		require.NotNil(t, outcome.Err)
		assert.Equal(t, 404, outcome.Err.Status)
		assert.Equal(t, result.Data, outcome.Err.Data)
		assert.True(t, outcome.Err.Declared)
	})

	t.Run("undeclared failure status", func(t *testing.T) {
		t.Parallel()

		result := &restbind.Result{Status: 500, Data: "boom"}
		outcome := restbind.Classify(result, route)

		require.False(t, outcome.Success)
		require.NotNil(t, outcome.Err)
		assert.Equal(t, 500, outcome.Err.Status)
		assert.False(t, outcome.Err.Declared)
	})
}
