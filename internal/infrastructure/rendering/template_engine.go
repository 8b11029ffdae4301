package rendering

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templateFS embed.FS

// ReceiptData carries the order fields bound into the receipt template.
// Monetary amounts arrive pre-formatted with two decimal places.
type ReceiptData struct {
	Number        string
	OrderID       string
	CreatedAt     time.Time
	Status        string
	PaymentMethod string
	ShipFullName  string
	ShipPhone     string
	ShipAddress1  string
	ShipAddress2  string
	ShipCity      string
	ShipCountry   string
	Lines         []ReceiptLine
	Subtotal      string
	ShippingFee   string
	Total         string
}

// ReceiptLine is a single purchased item on the receipt
type ReceiptLine struct {
	Name      string
	Quantity  int
	UnitPrice string
	LineTotal string
}

// TemplateEngine renders HTML documents from embedded templates.
// It uses Go's html/template package with custom formatting functions.
type TemplateEngine struct {
	funcMap template.FuncMap
	receipt *template.Template
}

// NewTemplateEngine creates a template engine with the receipt template parsed
func NewTemplateEngine() (*TemplateEngine, error) {
	e := &TemplateEngine{}

	e.funcMap = template.FuncMap{
		"formatMoney":    formatMoney,
		"formatDate":     formatDate,
		"formatDateTime": formatDateTime,
		"title":          titleCase,
		"upper":          strings.ToUpper,
		"lower":          strings.ToLower,
		"statusText":     statusText,
		"paymentText":    paymentText,
		"shortID":        shortOrderID,
	}

	tmpl, err := template.New("receipt.html").Funcs(e.funcMap).ParseFS(templateFS, "templates/receipt.html")
	if err != nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "failed to parse receipt template", err)
	}
	e.receipt = tmpl

	return e, nil
}

// RenderReceipt renders the receipt template with the provided order data
func (e *TemplateEngine) RenderReceipt(data *ReceiptData) (string, error) {
	if data == nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "receipt data is nil", nil)
	}

	var buf bytes.Buffer
	if err := e.receipt.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute receipt template", err)
	}

	return buf.String(), nil
}

// RenderString renders an arbitrary template string with the provided data
func (e *TemplateEngine) RenderString(name, content string, data interface{}) (string, error) {
	if content == "" {
		return "", NewRenderError(ErrCodeInvalidHTML, "template content is empty", nil)
	}

	tmpl, err := template.New(name).Funcs(e.funcMap).Parse(content)
	if err != nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "failed to parse template", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute template", err)
	}

	return buf.String(), nil
}

// formatMoney formats an amount as Kenyan shillings with thousand separators
// Example: "15499.00" -> "KSh 15,499.00"
func formatMoney(v interface{}) string {
	d := toDecimal(v)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	parts := strings.Split(d.StringFixed(2), ".")
	intPart := parts[0]
	decPart := "00"
	if len(parts) > 1 {
		decPart = parts[1]
	}

	var result strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}

	return "KSh " + sign + result.String() + "." + decPart
}

// formatDate formats a time value as a date string
// Example: "2026-08-30"
func formatDate(v interface{}) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// formatDateTime formats a time value as a datetime string
// Example: "2026-08-30 14:30:00"
func formatDateTime(v interface{}) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

// titleCase converts a string to title case using proper Unicode handling
func titleCase(s string) string {
	caser := cases.Title(language.English)
	return caser.String(s)
}

// statusText converts order status codes to display text
func statusText(status string) string {
	statusMap := map[string]string{
		"PENDING":   "Pending",
		"PAID":      "Paid",
		"CANCELLED": "Cancelled",
		"FULFILLED": "Fulfilled",
	}
	if text, ok := statusMap[status]; ok {
		return text
	}
	return status
}

// paymentText converts payment method codes to display text
func paymentText(method string) string {
	methodMap := map[string]string{
		"cod":   "Cash on Delivery",
		"mpesa": "M-Pesa",
		"card":  "Card",
	}
	if text, ok := methodMap[method]; ok {
		return text
	}
	return method
}

// toDecimal converts various types to decimal.Decimal
func toDecimal(v interface{}) decimal.Decimal {
	switch val := v.(type) {
	case decimal.Decimal:
		return val
	case *decimal.Decimal:
		if val == nil {
			return decimal.Zero
		}
		return *val
	case int:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case float64:
		return decimal.NewFromFloat(val)
	case string:
		d, err := decimal.NewFromString(val)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// toTime converts various types to time.Time
func toTime(v interface{}) time.Time {
	switch val := v.(type) {
	case time.Time:
		return val
	case *time.Time:
		if val == nil {
			return time.Time{}
		}
		return *val
	case string:
		formats := []string{
			time.RFC3339,
			"2006-01-02 15:04:05",
			"2006-01-02",
		}
		for _, f := range formats {
			if t, err := time.Parse(f, val); err == nil {
				return t
			}
		}
		return time.Time{}
	case int64:
		return time.Unix(val, 0)
	default:
		return time.Time{}
	}
}

// shortOrderID shortens an order UUID for display
func shortOrderID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
