package order_test

import (
	"fmt"
	"testing"

	"washroute/internal/core/domain/model/order"
	"washroute/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	t.Run("should render wire names", func(t *testing.T) {
		assert.Equal(t, "pending", order.Pending.String())
		assert.Equal(t, "in-progress", order.InProgress.String())
		assert.Equal(t, "completed", order.Completed.String())
		assert.Equal(t, "unknown", order.Status(42).String())
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		assert.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
		assert.NoError(t, order.InProgress.Validate())
	})

	t.Run("should implement fmt.Stringer interface", func(t *testing.T) {
		assert.Equal(t, "completed", fmt.Sprintf("%s", order.Completed))
	})
}

func TestSubtaskStatus(t *testing.T) {
	t.Run("should complete pending status once", func(t *testing.T) {
		next, err := order.SubtaskPending.Complete()
		require.NoError(t, err)
		assert.Equal(t, order.SubtaskCompleted, next)

		_, err = next.Complete()
		assert.ErrorIs(t, err, errs.ErrStateIsInvalid)
	})

	t.Run("should parse wire names", func(t *testing.T) {
		s, err := order.ParseSubtaskStatus("completed")
		require.NoError(t, err)
		assert.Equal(t, order.SubtaskCompleted, s)

		_, err = order.ParseSubtaskStatus("unknown")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestKind(t *testing.T) {
	for _, name := range []string{"pickup", "drop", "collect", "delivery"} {
		t.Run("should round trip "+name, func(t *testing.T) {
			k, err := order.ParseKind(name)
			require.NoError(t, err)
			assert.NoError(t, k.Validate())
			assert.Equal(t, name, k.String())
		})
	}

	t.Run("should reject unknown kind", func(t *testing.T) {
		_, err := order.ParseKind("teleport")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Error(t, order.UnknownKind.Validate())
	})
}

func TestPriorityClass(t *testing.T) {
	t.Run("should list both-tagged orders as express only", func(t *testing.T) {
		assert.True(t, order.Both.BelongsTo(order.Express))
		assert.False(t, order.Both.BelongsTo(order.Standard))
		assert.True(t, order.Express.BelongsTo(order.Express))
		assert.False(t, order.Express.BelongsTo(order.Standard))
		assert.True(t, order.Standard.BelongsTo(order.Standard))
		assert.False(t, order.Standard.BelongsTo(order.Express))
	})

	t.Run("should never match an invalid filter", func(t *testing.T) {
		assert.False(t, order.Both.BelongsTo(order.Both))
		assert.False(t, order.Express.BelongsTo(order.UnknownPriority))
	})

	t.Run("should accept only partitions as filters", func(t *testing.T) {
		assert.NoError(t, order.Express.ValidateFilter())
		assert.NoError(t, order.Standard.ValidateFilter())
		assert.ErrorIs(t, order.Both.ValidateFilter(), errs.ErrValueIsInvalid)
	})

	t.Run("should parse wire names", func(t *testing.T) {
		p, err := order.ParsePriorityClass("both")
		require.NoError(t, err)
		assert.Equal(t, order.Both, p)

		_, err = order.ParsePriorityClass("EXPRESS")
		assert.Error(t, err)
	})
}
