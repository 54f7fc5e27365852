package kernel_test

import (
	"encoding/json"
	"testing"

	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("should create a valid unique UUID", func(t *testing.T) {
		id1 := kernel.NewUUID()
		id2 := kernel.NewUUID()

		assert.NoError(t, id1.Validate())
		assert.False(t, id1.IsZero())
		assert.False(t, id1.IsEqual(id2))
	})
}

func TestUUIDFromString(t *testing.T) {
	const raw = "550e8400-e29b-41d4-a716-446655440000"

	t.Run("should parse canonical form", func(t *testing.T) {
		id, err := kernel.UUIDFromString(raw)

		require.NoError(t, err)
		assert.Equal(t, raw, id.String())
	})

	t.Run("should accept urn prefix", func(t *testing.T) {
		id, err := kernel.UUIDFromString("urn:uuid:" + raw)

		require.NoError(t, err)
		assert.Equal(t, raw, id.String())
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		for _, s := range []string{"", "not-a-uuid", "550e8400-e29b-41d4-a716"} {
			_, err := kernel.UUIDFromString(s)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid, s)
		}
	})

	t.Run("should reject nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromString(uuid.Nil.String())

		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should restore bytes of an existing UUID", func(t *testing.T) {
		original := kernel.NewUUID()
		raw := original.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("should reject wrong length", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{1, 2, 3})

		assert.Error(t, err)
	})
}

func TestUUID_Validate(t *testing.T) {
	t.Run("should return error for zero value UUID", func(t *testing.T) {
		var id kernel.UUID

		assert.True(t, id.IsZero())
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})
}

func TestUUID_Text(t *testing.T) {
	type envelope struct {
		ID kernel.UUID `json:"id"`
	}

	t.Run("should marshal as a JSON string", func(t *testing.T) {
		id := kernel.NewUUID()

		data, err := json.Marshal(envelope{ID: id})

		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"`+id.String()+`"}`, string(data))
	})

	t.Run("should unmarshal from a JSON string", func(t *testing.T) {
		id := kernel.NewUUID()
		var got envelope

		require.NoError(t, json.Unmarshal([]byte(`{"id":"`+id.String()+`"}`), &got))

		assert.True(t, id.IsEqual(got.ID))
	})

	t.Run("should leave zero value for empty string", func(t *testing.T) {
		var got envelope

		require.NoError(t, json.Unmarshal([]byte(`{"id":""}`), &got))

		assert.True(t, got.ID.IsZero())
	})

	t.Run("should fail for malformed string", func(t *testing.T) {
		var got envelope

		assert.Error(t, json.Unmarshal([]byte(`{"id":"nope"}`), &got))
	})
}

func TestUUID_MapKey(t *testing.T) {
	id := kernel.NewUUID()
	copyOfID, err := kernel.UUIDFromString(id.String())
	require.NoError(t, err)

	seen := map[kernel.UUID]bool{id: true}

	assert.True(t, seen[copyOfID])
}

func TestNewNameUUID(t *testing.T) {
	t.Run("should derive the same id from the same name", func(t *testing.T) {
		assert.True(t, kernel.NewNameUUID("order/WR-2").IsEqual(kernel.NewNameUUID("order/WR-2")))
	})

	t.Run("should derive different ids from different names", func(t *testing.T) {
		assert.False(t, kernel.NewNameUUID("order/WR-2").IsEqual(kernel.NewNameUUID("order/WR-3")))
	})

	t.Run("should be valid", func(t *testing.T) {
		assert.NoError(t, kernel.NewNameUUID("worker/Sam").Validate())
	})
}
