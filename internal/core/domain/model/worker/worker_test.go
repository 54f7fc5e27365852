package worker_test

import (
	"testing"

	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/core/domain/model/worker"
	"washroute/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorker(t *testing.T) {
	start, err := kernel.NewLocation(0, 0, "Depot")
	require.NoError(t, err)

	t.Run("should create worker with valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()

		w, err := worker.NewWorker(id, "  Sam ", start)

		require.NoError(t, err)
		require.NoError(t, w.Validate())
		assert.True(t, w.ID().IsEqual(id))
		assert.Equal(t, "Sam", w.Name())
		assert.Equal(t, start, w.Location())
	})

	t.Run("should aggregate validation errors", func(t *testing.T) {
		w, err := worker.NewWorker(kernel.UUID{}, "", kernel.Location{})

		require.Error(t, err)
		assert.Nil(t, w)
		assert.ErrorIs(t, err, worker.ErrNameIsRequired)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestWorker_ArriveAt(t *testing.T) {
	start, _ := kernel.NewLocation(0, 0, "Depot")
	w, err := worker.NewWorker(kernel.NewUUID(), "Sam", start)
	require.NoError(t, err)

	t.Run("should move to a valid location", func(t *testing.T) {
		stop, _ := kernel.NewLocation(0, 1, "Customer")

		require.NoError(t, w.ArriveAt(stop))
		assert.Equal(t, stop, w.Location())
	})

	t.Run("should stay put on invalid location", func(t *testing.T) {
		before := w.Location()

		assert.Error(t, w.ArriveAt(kernel.Location{}))
		assert.Equal(t, before, w.Location())
	})

	t.Run("should clone independently", func(t *testing.T) {
		c := w.Clone()
		elsewhere, _ := kernel.NewLocation(5, 5, "Elsewhere")
		require.NoError(t, w.ArriveAt(elsewhere))

		assert.NotEqual(t, w.Location(), c.Location())
		assert.True(t, c.IsEqual(w))
	})
}

func TestWorker_Validate(t *testing.T) {
	var w *worker.Worker
	assert.ErrorIs(t, w.Validate(), worker.ErrWorkerIsNotConstructed)
	assert.ErrorIs(t, (&worker.Worker{}).Validate(), worker.ErrWorkerIsNotConstructed)
}
