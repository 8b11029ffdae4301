package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jontech/backend/internal/domain/order"
)

// OrderLineResponse is an order line snapshot
type OrderLineResponse struct {
	ProductID uuid.UUID `json:"product"`
	Name      string    `json:"name"`
	UnitPrice string    `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	LineTotal string    `json:"line_total"`
}

// OrderResponse is the order shape served to buyers
type OrderResponse struct {
	ID                 uuid.UUID           `json:"id"`
	Status             string              `json:"status"`
	Subtotal           string              `json:"subtotal"`
	ShippingFee        string              `json:"shipping_fee"`
	Total              string              `json:"total"`
	PaymentMethod      string              `json:"payment_method"`
	CreatedAt          time.Time           `json:"created_at"`
	Items              []OrderLineResponse `json:"items"`
	ReceiptNumber      string              `json:"receipt_number"`
	ReceiptPDFURL      *string             `json:"receipt_pdf_url"`
	ReceiptGeneratedAt *time.Time          `json:"receipt_generated_at"`
	ReceiptSentAt      *time.Time          `json:"receipt_sent_at"`
}

// ReceiptStatusResponse reports whether the receipt can be downloaded
type ReceiptStatusResponse struct {
	Ready       bool    `json:"ready"`
	DownloadURL *string `json:"download_url"`
}

// EmailReceiptResponse confirms a receipt email
type EmailReceiptResponse struct {
	Sent bool   `json:"sent"`
	To   string `json:"to"`
}

// ReceiptDownloadURL is the storefront path for fetching the PDF
func ReceiptDownloadURL(baseURL string, orderID uuid.UUID) string {
	return fmt.Sprintf("%s/api/v1/orders/%s/receipt/download", baseURL, orderID)
}

// ToOrderResponse converts an order to its response representation
func ToOrderResponse(o *order.Order, baseURL string) OrderResponse {
	items := make([]OrderLineResponse, len(o.Lines))
	for i := range o.Lines {
		line := &o.Lines[i]
		items[i] = OrderLineResponse{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice.StringFixed(2),
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal.StringFixed(2),
		}
	}

	resp := OrderResponse{
		ID:                 o.ID,
		Status:             o.Status.String(),
		Subtotal:           o.Subtotal.StringFixed(2),
		ShippingFee:        o.ShippingFee.StringFixed(2),
		Total:              o.Total.StringFixed(2),
		PaymentMethod:      o.PaymentMethod.String(),
		CreatedAt:          o.CreatedAt,
		Items:              items,
		ReceiptNumber:      o.ReceiptNumber,
		ReceiptGeneratedAt: o.ReceiptGeneratedAt,
		ReceiptSentAt:      o.ReceiptSentAt,
	}
	if o.HasReceipt() {
		url := ReceiptDownloadURL(baseURL, o.ID)
		resp.ReceiptPDFURL = &url
	}
	return resp
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []order.Order, baseURL string) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i], baseURL)
	}
	return responses
}
