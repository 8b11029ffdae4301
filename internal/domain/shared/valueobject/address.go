package valueobject

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ShippingAddress is a value object representing a delivery destination.
// It is immutable - all operations return new instances.
type ShippingAddress struct {
	fullName string
	phone    string
	address1 string
	address2 string
	city     string
	country  string
}

// ShippingAddressOption is a functional option for configuring ShippingAddress
type ShippingAddressOption func(*ShippingAddress)

// WithAddress2 sets the secondary address line
func WithAddress2(address2 string) ShippingAddressOption {
	return func(a *ShippingAddress) {
		a.address2 = strings.TrimSpace(address2)
	}
}

// NewShippingAddress creates a new ShippingAddress.
// Full name, phone, address line 1, city and country are required.
func NewShippingAddress(fullName, phone, address1, city, country string, opts ...ShippingAddressOption) (ShippingAddress, error) {
	fullName = strings.TrimSpace(fullName)
	phone = strings.TrimSpace(phone)
	address1 = strings.TrimSpace(address1)
	city = strings.TrimSpace(city)
	country = strings.TrimSpace(country)

	for name, value := range map[string]string{
		"full_name": fullName,
		"phone":     phone,
		"address1":  address1,
		"city":      city,
		"country":   country,
	} {
		if value == "" {
			return ShippingAddress{}, fmt.Errorf("%s cannot be empty", name)
		}
		if len(value) > 200 {
			return ShippingAddress{}, fmt.Errorf("%s cannot exceed 200 characters", name)
		}
	}

	addr := ShippingAddress{
		fullName: fullName,
		phone:    phone,
		address1: address1,
		city:     city,
		country:  country,
	}
	for _, opt := range opts {
		opt(&addr)
	}
	return addr, nil
}

// EmptyShippingAddress returns an empty address
func EmptyShippingAddress() ShippingAddress {
	return ShippingAddress{}
}

// FullName returns the recipient name
func (a ShippingAddress) FullName() string {
	return a.fullName
}

// Phone returns the contact phone number
func (a ShippingAddress) Phone() string {
	return a.phone
}

// Address1 returns the primary address line
func (a ShippingAddress) Address1() string {
	return a.address1
}

// Address2 returns the secondary address line
func (a ShippingAddress) Address2() string {
	return a.address2
}

// City returns the city
func (a ShippingAddress) City() string {
	return a.city
}

// Country returns the country
func (a ShippingAddress) Country() string {
	return a.country
}

// IsEmpty returns true if the address has no fields set
func (a ShippingAddress) IsEmpty() bool {
	return a.fullName == "" && a.phone == "" && a.address1 == "" && a.city == "" && a.country == ""
}

// FullAddress returns the complete formatted address string
func (a ShippingAddress) FullAddress() string {
	if a.IsEmpty() {
		return ""
	}
	parts := make([]string, 0, 4)
	if a.address1 != "" {
		parts = append(parts, a.address1)
	}
	if a.address2 != "" {
		parts = append(parts, a.address2)
	}
	if a.city != "" {
		parts = append(parts, a.city)
	}
	if a.country != "" {
		parts = append(parts, a.country)
	}
	return strings.Join(parts, ", ")
}

// String returns a string representation of the address
func (a ShippingAddress) String() string {
	return a.FullAddress()
}

// Equals returns true if both addresses are equal
func (a ShippingAddress) Equals(other ShippingAddress) bool {
	return a == other
}

type shippingAddressJSON struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

// MarshalJSON implements json.Marshaler
func (a ShippingAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(shippingAddressJSON{
		FullName: a.fullName,
		Phone:    a.phone,
		Address1: a.address1,
		Address2: a.address2,
		City:     a.city,
		Country:  a.country,
	})
}

// UnmarshalJSON implements json.Unmarshaler, delegating to the factory so
// validation rules apply consistently.
func (a *ShippingAddress) UnmarshalJSON(data []byte) error {
	var v shippingAddressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.FullName == "" && v.Phone == "" && v.Address1 == "" && v.City == "" && v.Country == "" {
		*a = EmptyShippingAddress()
		return nil
	}
	addr, err := NewShippingAddress(v.FullName, v.Phone, v.Address1, v.City, v.Country, WithAddress2(v.Address2))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
