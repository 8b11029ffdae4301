package checkout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// CheckoutRequest carries the checkout payload. Shipping and billing
// arrive as loose maps because storefront clients mix snake_case and
// camelCase key spellings; normalization happens server side.
type CheckoutRequest struct {
	Shipping      map[string]interface{} `json:"shipping"`
	Billing       map[string]interface{} `json:"billing"`
	PaymentMethod string                 `json:"payment_method"`
}

// CheckoutResponse confirms a placed order
type CheckoutResponse struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
	Total  string    `json:"total"`
}

// TotalsResponse is the validate-step summary
type TotalsResponse struct {
	OK     bool   `json:"ok"`
	Totals Totals `json:"totals"`
}

// Totals carries the formatted checkout amounts
type Totals struct {
	Subtotal    string `json:"subtotal"`
	ShippingFee string `json:"shipping_fee"`
	Total       string `json:"total"`
}

// shippingFields is the normalized shipping payload
type shippingFields struct {
	FullName string
	Phone    string
	Address1 string
	Address2 string
	City     string
	Country  string
}

// billingFields is the normalized billing payload
type billingFields struct {
	NameOnCard string
	TaxID      string
}

// pick returns the first non-blank value among the aliased keys.
// Non-string values are stringified; JSON zero values (0, false) count
// as absent just like "" does, so the next alias is still consulted.
func pick(payload map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		value, ok := payload[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		case bool:
			if v {
				return "true"
			}
		case float64:
			if v != 0 {
				return strconv.FormatFloat(v, 'f', -1, 64)
			}
		default:
			return fmt.Sprintf("%v", value)
		}
	}
	return ""
}

func normalizeShipping(payload map[string]interface{}) shippingFields {
	return shippingFields{
		FullName: pick(payload, "full_name", "fullName", "name"),
		Phone:    pick(payload, "phone", "phoneNumber"),
		Address1: pick(payload, "address1", "addressLine1"),
		Address2: pick(payload, "address2", "addressLine2"),
		City:     pick(payload, "city"),
		Country:  pick(payload, "country"),
	}
}

func normalizeBilling(payload map[string]interface{}) billingFields {
	return billingFields{
		NameOnCard: pick(payload, "name_on_card", "nameOnCard"),
		TaxID:      pick(payload, "tax_id", "taxId"),
	}
}
