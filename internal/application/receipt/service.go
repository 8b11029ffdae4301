package receipt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jontech/backend/internal/domain/order"
	"github.com/jontech/backend/internal/domain/shared"
	"github.com/jontech/backend/internal/infrastructure/mail"
	"github.com/jontech/backend/internal/infrastructure/rendering"
	"github.com/jontech/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// numbering collisions are retried a few times; the receipt number
// column carries a unique index
const maxNumberAttempts = 3

// Service generates, stores, and delivers order receipts.
// A receipt is rendered once and reused afterwards unless regeneration
// is requested explicitly.
type Service struct {
	orderRepo       order.Repository
	templates       *rendering.TemplateEngine
	renderer        rendering.PDFRenderer
	storage         rendering.PDFStorage
	mailer          mail.Sender
	businessMetrics *telemetry.BusinessMetrics
	logger          *zap.Logger
}

// NewService creates a new receipt Service
func NewService(
	orderRepo order.Repository,
	templates *rendering.TemplateEngine,
	renderer rendering.PDFRenderer,
	storage rendering.PDFStorage,
	mailer mail.Sender,
	logger *zap.Logger,
) *Service {
	return &Service{
		orderRepo: orderRepo,
		templates: templates,
		renderer:  renderer,
		storage:   storage,
		mailer:    mailer,
		logger:    logger,
	}
}

// SetBusinessMetrics sets the business metrics collector
func (s *Service) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Ensure makes sure the order has a numbered, rendered receipt.
// With regenerate the PDF is rendered again even when one exists.
func (s *Service) Ensure(ctx context.Context, orderID uuid.UUID, regenerate bool) (*order.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.ensure(ctx, o, regenerate); err != nil {
		return nil, err
	}
	return o, nil
}

// Issue numbers and renders the receipt, then emails it when an
// address is known. Used after checkout commits.
func (s *Service) Issue(ctx context.Context, orderID uuid.UUID, email string) error {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if err := s.ensure(ctx, o, false); err != nil {
		return err
	}
	if email == "" {
		return nil
	}
	return s.deliver(ctx, o, email)
}

// Deliver emails the receipt PDF, rendering it first when missing
func (s *Service) Deliver(ctx context.Context, orderID uuid.UUID, email string) error {
	if email == "" {
		return shared.NewDomainError("MISSING_EMAIL", "No email address on file.")
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if err := s.ensure(ctx, o, false); err != nil {
		return err
	}
	return s.deliver(ctx, o, email)
}

// Open returns the stored receipt PDF for download
func (s *Service) Open(ctx context.Context, o *order.Order) (io.ReadCloser, error) {
	if !o.HasReceipt() {
		return nil, shared.ErrReceiptNotReady
	}
	return s.storage.Get(ctx, o.ReceiptPath)
}

func (s *Service) ensure(ctx context.Context, o *order.Order, regenerate bool) error {
	if o.HasReceipt() && !regenerate {
		return nil
	}

	assigned := false
	if o.ReceiptNumber == "" {
		if err := s.assignNumber(ctx, o); err != nil {
			return err
		}
		assigned = true
	}

	html, err := s.templates.RenderReceipt(receiptData(o))
	if err != nil {
		return s.releaseNumber(ctx, o, assigned, err)
	}

	result, err := s.renderer.Render(ctx, &rendering.RenderRequest{
		HTML:  html,
		Title: fmt.Sprintf("Receipt %s", o.ReceiptNumber),
	})
	if err != nil {
		return s.releaseNumber(ctx, o, assigned, err)
	}

	stored, err := s.storage.Store(ctx, &rendering.StoreRequest{
		Filename: fmt.Sprintf("%s.pdf", o.ReceiptNumber),
		PDFData:  result.PDFData,
	})
	if err != nil {
		return s.releaseNumber(ctx, o, assigned, err)
	}

	if err := o.MarkReceiptGenerated(stored.Path, time.Now()); err != nil {
		return err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return err
	}

	s.logger.Info("receipt generated",
		zap.String("order_id", o.ID.String()),
		zap.String("receipt_number", o.ReceiptNumber),
		zap.String("path", stored.Path),
	)

	if s.businessMetrics != nil {
		s.businessMetrics.RecordReceiptGenerated(ctx)
	}

	return nil
}

// assignNumber reserves the next receipt number. A concurrent issuer
// can win the same number, in which case the save trips the unique
// index and we take a fresh one.
func (s *Service) assignNumber(ctx context.Context, o *order.Order) error {
	var lastErr error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number, err := s.orderRepo.GenerateReceiptNumber(ctx)
		if err != nil {
			return err
		}
		if err := o.AssignReceiptNumber(number); err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				o.ReceiptNumber = ""
				lastErr = err
				continue
			}
			return err
		}
		return nil
	}
	return fmt.Errorf("could not reserve a receipt number: %w", lastErr)
}

// releaseNumber backs out a number reserved by this attempt so a failed
// render leaves the order's receipt fields as they were. Numbers released
// this way are simply skipped; uniqueness is what matters, not density.
func (s *Service) releaseNumber(ctx context.Context, o *order.Order, assigned bool, cause error) error {
	if !assigned {
		return cause
	}
	number := o.ReceiptNumber
	o.ReceiptNumber = ""
	if err := s.orderRepo.Save(ctx, o); err != nil {
		s.logger.Warn("could not release receipt number after failed render",
			zap.String("order_id", o.ID.String()),
			zap.String("receipt_number", number),
			zap.Error(err),
		)
	}
	return cause
}

func (s *Service) deliver(ctx context.Context, o *order.Order, email string) error {
	reader, err := s.storage.Get(ctx, o.ReceiptPath)
	if err != nil {
		return err
	}
	defer reader.Close()

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	msg := &mail.Message{
		To:             email,
		Subject:        fmt.Sprintf("Your JONTECH receipt %s", o.ReceiptNumber),
		Body:           receiptEmailBody(o),
		AttachmentName: fmt.Sprintf("%s.pdf", o.ReceiptNumber),
		Attachment:     pdf,
		AttachmentMIME: "application/pdf",
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		if s.businessMetrics != nil {
			s.businessMetrics.RecordReceiptEmailed(ctx, telemetry.PaymentStatusFailed)
		}
		return err
	}
	if s.businessMetrics != nil {
		s.businessMetrics.RecordReceiptEmailed(ctx, telemetry.PaymentStatusSuccess)
	}

	o.MarkReceiptSent(time.Now())
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return err
	}

	s.logger.Info("receipt emailed",
		zap.String("order_id", o.ID.String()),
		zap.String("receipt_number", o.ReceiptNumber),
		zap.String("to", email),
	)

	return nil
}

func receiptEmailBody(o *order.Order) string {
	name := o.ShipFullName
	if name == "" {
		name = "customer"
	}
	lines := []string{
		fmt.Sprintf("Hi %s,", name),
		"",
		"Thanks for your order with JONTECH.",
		fmt.Sprintf("Order: #%s", o.ID),
		fmt.Sprintf("Status: %s", o.Status),
		"",
		"Your receipt is attached as a PDF.",
		"If the attachment is blocked, you can also download it from your account.",
		"",
		"- JONTECH",
	}
	return strings.Join(lines, "\n")
}

func receiptData(o *order.Order) *rendering.ReceiptData {
	lines := make([]rendering.ReceiptLine, len(o.Lines))
	for i := range o.Lines {
		line := &o.Lines[i]
		lines[i] = rendering.ReceiptLine{
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice.StringFixed(2),
			LineTotal: line.LineTotal.StringFixed(2),
		}
	}
	return &rendering.ReceiptData{
		Number:        o.ReceiptNumber,
		OrderID:       o.ID.String(),
		CreatedAt:     o.CreatedAt,
		Status:        o.Status.String(),
		PaymentMethod: o.PaymentMethod.String(),
		ShipFullName:  o.ShipFullName,
		ShipPhone:     o.ShipPhone,
		ShipAddress1:  o.ShipAddress1,
		ShipAddress2:  o.ShipAddress2,
		ShipCity:      o.ShipCity,
		ShipCountry:   o.ShipCountry,
		Lines:         lines,
		Subtotal:      o.Subtotal.StringFixed(2),
		ShippingFee:   o.ShippingFee.StringFixed(2),
		Total:         o.Total.StringFixed(2),
	}
}
