package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShippingAddress(t *testing.T) {
	t.Run("creates address with required fields", func(t *testing.T) {
		addr, err := NewShippingAddress("Jane Wanjiku", "+254700000001", "Moi Avenue 12", "Nairobi", "Kenya")
		require.NoError(t, err)
		assert.Equal(t, "Jane Wanjiku", addr.FullName())
		assert.Equal(t, "Nairobi", addr.City())
		assert.Equal(t, "Kenya", addr.Country())
		assert.Empty(t, addr.Address2())
	})

	t.Run("trims whitespace", func(t *testing.T) {
		addr, err := NewShippingAddress("  Jane  ", " 0700 ", " Moi Avenue ", " Nairobi ", " Kenya ")
		require.NoError(t, err)
		assert.Equal(t, "Jane", addr.FullName())
		assert.Equal(t, "Moi Avenue", addr.Address1())
	})

	t.Run("sets optional second line", func(t *testing.T) {
		addr, err := NewShippingAddress("Jane", "0700", "Moi Avenue", "Nairobi", "Kenya", WithAddress2("Apt 4B"))
		require.NoError(t, err)
		assert.Equal(t, "Apt 4B", addr.Address2())
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		cases := [][5]string{
			{"", "0700", "Moi Avenue", "Nairobi", "Kenya"},
			{"Jane", "", "Moi Avenue", "Nairobi", "Kenya"},
			{"Jane", "0700", "", "Nairobi", "Kenya"},
			{"Jane", "0700", "Moi Avenue", "", "Kenya"},
			{"Jane", "0700", "Moi Avenue", "Nairobi", ""},
		}
		for _, c := range cases {
			_, err := NewShippingAddress(c[0], c[1], c[2], c[3], c[4])
			assert.Error(t, err)
		}
	})
}

func TestShippingAddressFullAddress(t *testing.T) {
	addr, err := NewShippingAddress("Jane", "0700", "Moi Avenue 12", "Nairobi", "Kenya", WithAddress2("Apt 4B"))
	require.NoError(t, err)
	assert.Equal(t, "Moi Avenue 12, Apt 4B, Nairobi, Kenya", addr.FullAddress())
	assert.Equal(t, addr.FullAddress(), addr.String())
}

func TestShippingAddressIsEmpty(t *testing.T) {
	assert.True(t, EmptyShippingAddress().IsEmpty())
	assert.Empty(t, EmptyShippingAddress().FullAddress())
}

func TestShippingAddressJSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		original, err := NewShippingAddress("Jane", "0700", "Moi Avenue", "Nairobi", "Kenya", WithAddress2("Apt 4B"))
		require.NoError(t, err)

		data, err := json.Marshal(original)
		require.NoError(t, err)

		var decoded ShippingAddress
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, original.Equals(decoded))
	})

	t.Run("empty object decodes to empty address", func(t *testing.T) {
		var decoded ShippingAddress
		require.NoError(t, json.Unmarshal([]byte(`{}`), &decoded))
		assert.True(t, decoded.IsEmpty())
	})

	t.Run("partial object fails validation", func(t *testing.T) {
		var decoded ShippingAddress
		err := json.Unmarshal([]byte(`{"full_name":"Jane"}`), &decoded)
		assert.Error(t, err)
	})
}
