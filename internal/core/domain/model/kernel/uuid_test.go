package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("should create a new UUID", func(t *testing.T) {
		id := kernel.NewUUID()

		assert.NotEmpty(t, id.String())
		assert.NoError(t, id.Validate())
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", id.String())
	})

	t.Run("should create unique UUIDs", func(t *testing.T) {
		orderID := kernel.NewUUID()
		partnerID := kernel.NewUUID()

		assert.NotEqual(t, orderID.String(), partnerID.String())
		assert.False(t, orderID.IsEqual(partnerID))
	})
}

func TestUUIDFromString(t *testing.T) {
	orderID := "7c9e6679-7425-40de-944b-e07fc1f90ae7"

	t.Run("should create UUID from valid string", func(t *testing.T) {
		id, err := kernel.UUIDFromString(orderID)

		require.NoError(t, err)
		assert.Equal(t, orderID, id.String())
		assert.NoError(t, id.Validate())
	})

	t.Run("should accept UUID with braces", func(t *testing.T) {
		id, err := kernel.UUIDFromString("{7c9e6679-7425-40de-944b-e07fc1f90ae7}")

		require.NoError(t, err)
		assert.Equal(t, orderID, id.String())
	})

	t.Run("should accept UUID with urn prefix", func(t *testing.T) {
		id, err := kernel.UUIDFromString("urn:uuid:7c9e6679-7425-40de-944b-e07fc1f90ae7")

		require.NoError(t, err)
		assert.Equal(t, orderID, id.String())
	})

	t.Run("should accept UUID without hyphens", func(t *testing.T) {
		id, err := kernel.UUIDFromString("7c9e6679742540de944be07fc1f90ae7")

		require.NoError(t, err)
		assert.Equal(t, orderID, id.String())
	})

	t.Run("should return error for invalid UUID format", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected string
		}{
			{"", "invalid UUID format"},
			{"order-12345", "invalid UUID format"},
			{"7c9e6679-7425-40de-944b", "invalid UUID format"},
			{"7c9e6679-7425-40de-944b-e07fc1f90ae7-extra", "invalid UUID format"},
			{"zzze6679-7425-40de-944b-e07fc1f90ae7", "invalid UUID format"},
			{"7c9e6679-7425-40de-944b-e07fc1f90aeg", "invalid UUID format"},
		}

		for _, tc := range testCases {
			_, err := kernel.UUIDFromString(tc.input)
			assert.Error(t, err, "expected error for input: %s", tc.input)
			assert.Contains(t, err.Error(), tc.expected)
		}
	})
}

func TestUUIDFromBytes(t *testing.T) {
	orderIDBytes := []byte{
		0x7c, 0x9e, 0x66, 0x79, 0x74, 0x25, 0x40, 0xde,
		0x94, 0x4b, 0xe0, 0x7f, 0xc1, 0xf9, 0x0a, 0xe7,
	}

	t.Run("should create UUID from valid bytes", func(t *testing.T) {
		id, err := kernel.UUIDFromBytes(orderIDBytes)

		require.NoError(t, err)
		assert.Equal(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", id.String())
		assert.NoError(t, id.Validate())
	})

	t.Run("should return error for invalid byte length", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x7c, 0x9e, 0x66})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("should return error for all-zero bytes", func(t *testing.T) {
		zeroBytes := make([]byte, 16)
		_, err := kernel.UUIDFromBytes(zeroBytes)

		assert.Error(t, err)
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_String(t *testing.T) {
	t.Run("should return string representation", func(t *testing.T) {
		id := kernel.NewUUID()
		str := id.String()

		assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, str)
	})

	t.Run("should return consistent string representation", func(t *testing.T) {
		id, _ := kernel.UUIDFromString("7c9e6679-7425-40de-944b-e07fc1f90ae7")

		assert.Equal(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", id.String())
		assert.Equal(t, id.String(), id.String())
	})
}

func TestUUID_Bytes(t *testing.T) {
	t.Run("should return underlying uuid.UUID", func(t *testing.T) {
		id := kernel.NewUUID()
		bytes := id.Bytes()

		assert.IsType(t, uuid.UUID{}, bytes)
		assert.Equal(t, id.String(), bytes.String())
	})
}

func TestUUID_IsEqual(t *testing.T) {
	t.Run("should return true for equal UUIDs", func(t *testing.T) {
		id1, _ := kernel.UUIDFromString("7c9e6679-7425-40de-944b-e07fc1f90ae7")
		id2, _ := kernel.UUIDFromString("7c9e6679-7425-40de-944b-e07fc1f90ae7")

		assert.True(t, id1.IsEqual(id2))
		assert.True(t, id2.IsEqual(id1))
	})

	t.Run("should return false for different UUIDs", func(t *testing.T) {
		orderID := kernel.NewUUID()
		partnerID := kernel.NewUUID()

		assert.False(t, orderID.IsEqual(partnerID))
		assert.False(t, partnerID.IsEqual(orderID))
	})

	t.Run("should handle zero value comparison", func(t *testing.T) {
		var id1 kernel.UUID
		var id2 kernel.UUID
		id3 := kernel.NewUUID()

		assert.True(t, id1.IsEqual(id2))
		assert.False(t, id1.IsEqual(id3))
	})
}

func TestUUID_Validate(t *testing.T) {
	t.Run("should return nil for valid UUID", func(t *testing.T) {
		id := kernel.NewUUID()
		assert.NoError(t, id.Validate())
	})

	t.Run("should return error for zero value UUID", func(t *testing.T) {
		var id kernel.UUID
		err := id.Validate()

		assert.Error(t, err)
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})

	t.Run("should return error for nil UUID", func(t *testing.T) {
		id, _ := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")
		err := id.Validate()

		assert.Error(t, err)
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_UsageInStruct(t *testing.T) {
	type Delivery struct {
		OrderID   kernel.UUID
		PartnerID kernel.UUID
	}

	t.Run("should work as struct field", func(t *testing.T) {
		delivery := Delivery{
			OrderID:   kernel.NewUUID(),
			PartnerID: kernel.NewUUID(),
		}

		assert.NoError(t, delivery.OrderID.Validate())
		assert.NoError(t, delivery.PartnerID.Validate())
		assert.False(t, delivery.OrderID.IsEqual(delivery.PartnerID))
	})

	t.Run("should detect uninitialized field", func(t *testing.T) {
		var delivery Delivery
		assert.Error(t, delivery.OrderID.Validate())
		assert.Error(t, delivery.PartnerID.Validate())
	})
}

func TestUUID_Immutability(t *testing.T) {
	t.Run("modifying Bytes() result does not affect original UUID", func(t *testing.T) {
		original := kernel.NewUUID()
		originalString := original.String()

		bytes := original.Bytes()
		for i := range bytes {
			bytes[i] = 0xFF
		}

		assert.Equal(t, originalString, original.String())
		assert.NoError(t, original.Validate())

		modifiedUUID := uuid.UUID(bytes)
		assert.NotEqual(t, original.String(), modifiedUUID.String())
	})
}
