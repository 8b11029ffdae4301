package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jontech/backend/internal/domain/shared"
	"github.com/jontech/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentMethod identifies how an order is paid for
type PaymentMethod string

const (
	PaymentCOD   PaymentMethod = "cod"
	PaymentMpesa PaymentMethod = "mpesa"
	PaymentCard  PaymentMethod = "card"
)

// IsValid checks if the value is a known payment method
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCOD, PaymentMpesa, PaymentCard:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// ParsePaymentMethod maps a raw value to a payment method.
// Empty input falls back to cash on delivery; unknown values are rejected.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	if raw == "" {
		return PaymentCOD, nil
	}
	m := PaymentMethod(raw)
	if !m.IsValid() {
		return "", shared.NewDomainError("INVALID_PAYMENT_METHOD", fmt.Sprintf("Unknown payment method: %s", raw))
	}
	return m, nil
}

// Status represents the status of an order
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
	StatusFulfilled Status = "FULFILLED"
)

// IsValid checks if the status is a valid order status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled, StatusFulfilled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusPaid || target == StatusCancelled
	case StatusPaid:
		return target == StatusFulfilled
	case StatusCancelled, StatusFulfilled:
		return false // Terminal states
	}
	return false
}

// Line is an immutable snapshot of a purchased product.
// Name and unit price are copied from the catalog at checkout time so
// later catalog changes never alter placed orders.
type Line struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	Name      string          `gorm:"type:varchar(300);not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total"`
}

// TableName returns the table name for GORM
func (Line) TableName() string {
	return "order_lines"
}

// Order is the order aggregate root.
// It is materialized once at checkout and never re-priced afterwards;
// only its status and receipt tracking fields change.
type Order struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	ShippingFee decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"shipping_fee"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`

	PaymentMethod PaymentMethod `gorm:"type:varchar(10);not null;default:'cod'" json:"payment_method"`
	Status        Status        `gorm:"type:varchar(12);not null;default:'PENDING'" json:"status"`

	ShipFullName string `gorm:"type:varchar(255);not null" json:"ship_full_name"`
	ShipPhone    string `gorm:"type:varchar(64);not null" json:"ship_phone"`
	ShipAddress1 string `gorm:"type:varchar(255);not null" json:"ship_address1"`
	ShipAddress2 string `gorm:"type:varchar(255)" json:"ship_address2"`
	ShipCity     string `gorm:"type:varchar(128);not null" json:"ship_city"`
	ShipCountry  string `gorm:"type:varchar(128);not null;default:'Kenya'" json:"ship_country"`

	BillNameOnCard string `gorm:"type:varchar(255)" json:"bill_name_on_card"`
	BillTaxID      string `gorm:"type:varchar(64)" json:"bill_tax_id"`

	ReceiptNumber      string     `gorm:"type:varchar(32);uniqueIndex:idx_orders_receipt_number,where:receipt_number <> ''" json:"receipt_number"`
	ReceiptPath        string     `gorm:"type:varchar(500)" json:"receipt_path"`
	ReceiptGeneratedAt *time.Time `json:"receipt_generated_at"`
	ReceiptSentAt      *time.Time `json:"receipt_sent_at"`

	Lines []Line `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a pending order for a user with a shipping
// destination and a flat shipping fee. Lines are added afterwards and
// totals recalculated per line.
func NewOrder(userID uuid.UUID, shipping valueobject.ShippingAddress, billNameOnCard, billTaxID string, payment PaymentMethod, shippingFee decimal.Decimal) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if shipping.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_SHIPPING", "Shipping address is required")
	}
	if !payment.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	if shippingFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_SHIPPING_FEE", "Shipping fee cannot be negative")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Subtotal:          decimal.Zero,
		ShippingFee:       shippingFee,
		Total:             shippingFee,
		PaymentMethod:     payment,
		Status:            StatusPending,
		ShipFullName:      shipping.FullName(),
		ShipPhone:         shipping.Phone(),
		ShipAddress1:      shipping.Address1(),
		ShipAddress2:      shipping.Address2(),
		ShipCity:          shipping.City(),
		ShipCountry:       shipping.Country(),
		BillNameOnCard:    billNameOnCard,
		BillTaxID:         billTaxID,
		Lines:             make([]Line, 0),
	}, nil
}

// AddLine appends a snapshot line and recalculates the totals
func (o *Order) AddLine(productID uuid.UUID, name string, unitPrice decimal.Decimal, quantity int) error {
	if o.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot add lines to a non-pending order")
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", fmt.Sprintf("Invalid quantity for %s", name))
	}

	lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	o.Lines = append(o.Lines, Line{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		ProductID:  productID,
		Name:       name,
		UnitPrice:  unitPrice,
		Quantity:   quantity,
		LineTotal:  lineTotal,
	})
	o.recalculateTotals()
	o.UpdatedAt = time.Now()

	return nil
}

// Place finalizes the pending order. Requires at least one line.
func (o *Order) Place() error {
	if o.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot place order in %s status", o.Status))
	}
	if len(o.Lines) == 0 {
		return shared.ErrEmptyCart
	}

	o.AddDomainEvent(NewOrderPlacedEvent(o))

	return nil
}

// MarkPaid transitions the order to PAID
func (o *Order) MarkPaid() error {
	if !o.Status.CanTransitionTo(StatusPaid) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark order paid in %s status", o.Status))
	}

	o.Status = StatusPaid
	o.UpdatedAt = time.Now()
	o.AddDomainEvent(NewOrderPaidEvent(o))

	return nil
}

// Cancel transitions the order to CANCELLED
func (o *Order) Cancel() error {
	if !o.Status.CanTransitionTo(StatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}

	o.Status = StatusCancelled
	o.UpdatedAt = time.Now()
	o.AddDomainEvent(NewOrderCancelledEvent(o))

	return nil
}

// Fulfill transitions the order to FULFILLED
func (o *Order) Fulfill() error {
	if !o.Status.CanTransitionTo(StatusFulfilled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot fulfill order in %s status", o.Status))
	}

	o.Status = StatusFulfilled
	o.UpdatedAt = time.Now()
	o.AddDomainEvent(NewOrderFulfilledEvent(o))

	return nil
}

// AssignReceiptNumber sets the receipt number once
func (o *Order) AssignReceiptNumber(number string) error {
	if number == "" {
		return shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot be empty")
	}
	if o.ReceiptNumber != "" {
		return shared.NewDomainError("RECEIPT_ALREADY_NUMBERED", "Order already has a receipt number")
	}

	o.ReceiptNumber = number
	o.UpdatedAt = time.Now()

	return nil
}

// MarkReceiptGenerated records where the rendered receipt is stored
func (o *Order) MarkReceiptGenerated(path string, at time.Time) error {
	if path == "" {
		return shared.NewDomainError("INVALID_RECEIPT_PATH", "Receipt path cannot be empty")
	}

	o.ReceiptPath = path
	o.ReceiptGeneratedAt = &at
	o.UpdatedAt = time.Now()

	return nil
}

// MarkReceiptSent records when the receipt email went out
func (o *Order) MarkReceiptSent(at time.Time) {
	o.ReceiptSentAt = &at
	o.UpdatedAt = time.Now()
}

// HasReceipt returns true when a rendered receipt exists for the order
func (o *Order) HasReceipt() bool {
	return o.ReceiptPath != ""
}

// ShippingAddress reassembles the shipping destination value object
func (o *Order) ShippingAddress() (valueobject.ShippingAddress, error) {
	opts := []valueobject.ShippingAddressOption{}
	if o.ShipAddress2 != "" {
		opts = append(opts, valueobject.WithAddress2(o.ShipAddress2))
	}
	return valueobject.NewShippingAddress(o.ShipFullName, o.ShipPhone, o.ShipAddress1, o.ShipCity, o.ShipCountry, opts...)
}

// TotalMoney returns the order total as Money
func (o *Order) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyKES(o.Total)
}

// SubtotalMoney returns the order subtotal as Money
func (o *Order) SubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyKES(o.Subtotal)
}

// LineCount returns the number of lines in the order
func (o *Order) LineCount() int {
	return len(o.Lines)
}

// TotalQuantity returns the sum of all line quantities
func (o *Order) TotalQuantity() int {
	total := 0
	for idx := range o.Lines {
		total += o.Lines[idx].Quantity
	}
	return total
}

// IsTerminal returns true if the order is cancelled or fulfilled
func (o *Order) IsTerminal() bool {
	return o.Status == StatusCancelled || o.Status == StatusFulfilled
}

func (o *Order) recalculateTotals() {
	subtotal := decimal.Zero
	for idx := range o.Lines {
		subtotal = subtotal.Add(o.Lines[idx].LineTotal)
	}
	o.Subtotal = subtotal
	o.Total = subtotal.Add(o.ShippingFee)
}
