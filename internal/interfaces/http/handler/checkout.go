package handler

import (
	"errors"
	"net/http"

	checkoutapp "github.com/jontech/backend/internal/application/checkout"
	"github.com/jontech/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler turns the buyer's cart into an order. The validate and
// create endpoints keep the storefront client's flat response contract
// instead of the standard envelope: success bodies are the payload
// itself and failures are `{"detail": ...}` with a 400.
type CheckoutHandler struct {
	BaseHandler
	checkoutService *checkoutapp.Service
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *checkoutapp.Service) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// Validate recomputes the cart totals without placing an order
func (h *CheckoutHandler) Validate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User not authenticated")
		return
	}

	totals, err := h.checkoutService.Validate(c.Request.Context(), userID)
	if err != nil {
		h.storefrontError(c, err)
		return
	}

	c.JSON(http.StatusOK, totals)
}

// Create places an order from the cart, clearing it in the same
// transaction. Receipt generation and email delivery happen afterwards
// as best-effort side effects and never fail the response.
func (h *CheckoutHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User not authenticated")
		return
	}

	var req checkoutapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body."})
		return
	}

	order, err := h.checkoutService.Create(c.Request.Context(), userID, getUserEmail(c), req)
	if err != nil {
		h.storefrontError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// storefrontError maps domain failures onto the flat 400 body the
// storefront client expects
func (h *CheckoutHandler) storefrontError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": domainErr.Message})
		return
	}
	h.InternalError(c, "An unexpected error occurred")
}
