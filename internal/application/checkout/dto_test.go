package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPick(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]interface{}
		keys    []string
		want    string
	}{
		{
			name:    "first alias wins",
			payload: map[string]interface{}{"full_name": "Jane Wanjiku", "fullName": "Other"},
			keys:    []string{"full_name", "fullName"},
			want:    "Jane Wanjiku",
		},
		{
			name:    "blank string falls through to next alias",
			payload: map[string]interface{}{"full_name": "  ", "fullName": "Jane Wanjiku"},
			keys:    []string{"full_name", "fullName"},
			want:    "Jane Wanjiku",
		},
		{
			name:    "strings are trimmed",
			payload: map[string]interface{}{"city": "  Nairobi  "},
			keys:    []string{"city"},
			want:    "Nairobi",
		},
		{
			name:    "nil counts as absent",
			payload: map[string]interface{}{"phone": nil, "phoneNumber": "+254700000001"},
			keys:    []string{"phone", "phoneNumber"},
			want:    "+254700000001",
		},
		{
			name:    "numeric zero counts as absent",
			payload: map[string]interface{}{"tax_id": float64(0), "taxId": "P051234567X"},
			keys:    []string{"tax_id", "taxId"},
			want:    "P051234567X",
		},
		{
			name:    "false counts as absent",
			payload: map[string]interface{}{"address2": false},
			keys:    []string{"address2"},
			want:    "",
		},
		{
			name:    "numbers keep plain notation",
			payload: map[string]interface{}{"phone": float64(254700000001)},
			keys:    []string{"phone"},
			want:    "254700000001",
		},
		{
			name:    "missing everywhere yields empty",
			payload: map[string]interface{}{},
			keys:    []string{"country"},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pick(tt.payload, tt.keys...))
		})
	}
}

func TestNormalizeShipping(t *testing.T) {
	fields := normalizeShipping(map[string]interface{}{
		"fullName":     "Jane Wanjiku",
		"phone":        "+254700000001",
		"addressLine1": "Moi Avenue 12",
		"address2":     float64(0),
		"city":         "Nairobi",
		"country":      "Kenya",
	})

	assert.Equal(t, "Jane Wanjiku", fields.FullName)
	assert.Equal(t, "+254700000001", fields.Phone)
	assert.Equal(t, "Moi Avenue 12", fields.Address1)
	assert.Empty(t, fields.Address2)
	assert.Equal(t, "Nairobi", fields.City)
	assert.Equal(t, "Kenya", fields.Country)
}
