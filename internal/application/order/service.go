package order

import (
	"context"
	"io"

	"github.com/google/uuid"
	receiptapp "github.com/jontech/backend/internal/application/receipt"
	"github.com/jontech/backend/internal/domain/order"
	"github.com/jontech/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service serves a buyer's orders and their receipts.
// Every lookup is scoped to the requesting user; an order belonging to
// someone else is indistinguishable from a missing one.
type Service struct {
	orderRepo order.Repository
	receipts  *receiptapp.Service
	baseURL   string
	logger    *zap.Logger
}

// NewService creates a new order Service
func NewService(orderRepo order.Repository, receipts *receiptapp.Service, baseURL string, logger *zap.Logger) *Service {
	return &Service{
		orderRepo: orderRepo,
		receipts:  receipts,
		baseURL:   baseURL,
		logger:    logger,
	}
}

// GetByID retrieves one of the user's orders
func (s *Service) GetByID(ctx context.Context, orderID, userID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o, s.baseURL)
	return &response, nil
}

// List retrieves the user's orders, newest first
func (s *Service) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]OrderResponse, int64, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(orders, s.baseURL), total, nil
}

// ReceiptStatus reports whether the order's receipt is ready
func (s *Service) ReceiptStatus(ctx context.Context, orderID, userID uuid.UUID) (*ReceiptStatusResponse, error) {
	o, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	resp := &ReceiptStatusResponse{Ready: o.HasReceipt()}
	if resp.Ready {
		url := ReceiptDownloadURL(s.baseURL, o.ID)
		resp.DownloadURL = &url
	}
	return resp, nil
}

// DownloadReceipt opens the receipt PDF stream. Downloads never generate;
// a receipt that has not been rendered yet reads as not found.
func (s *Service) DownloadReceipt(ctx context.Context, orderID, userID uuid.UUID) (io.ReadCloser, string, error) {
	o, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, "", err
	}

	if !o.HasReceipt() {
		return nil, "", shared.ErrReceiptNotReady
	}

	reader, err := s.receipts.Open(ctx, o)
	if err != nil {
		return nil, "", err
	}
	return reader, o.ReceiptNumber + ".pdf", nil
}

// EmailReceipt sends (or resends) the receipt to the given address
func (s *Service) EmailReceipt(ctx context.Context, orderID, userID uuid.UUID, email string) (*EmailReceiptResponse, error) {
	if _, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID); err != nil {
		return nil, err
	}

	if err := s.receipts.Deliver(ctx, orderID, email); err != nil {
		return nil, err
	}

	s.logger.Info("receipt email requested",
		zap.String("order_id", orderID.String()),
		zap.String("user_id", userID.String()),
	)

	return &EmailReceiptResponse{Sent: true, To: email}, nil
}
