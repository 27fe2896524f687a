package gateway

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	svc "github.com/kevin07696/stripe-gateway/internal/services/gateway"
)

// ProcessCC handles POST /cards/charge
func (h *Handler) ProcessCC(c *gin.Context) {
	var req ChargeRequest
	if !h.bind(c, &req) || !requirePositive(c, req.Amount) {
		return
	}
	acct, ok := h.accountFor(c, req.Currency)
	if !ok {
		return
	}

	h.logger.Info("Charge request received",
		zap.String("gateway_id", acct.GatewayID),
		zap.String("amount", req.Amount.String()),
		zap.String("currency", acct.Currency),
	)

	card := svc.OneOffCard{PaymentMethodReference: req.PaymentMethodReference}
	result, err := h.service.ProcessCC(c.Request.Context(), acct, card, req.Amount, toInvoiceAmounts(req.Invoices))
	respondTransaction(c, result, err)
}

// AuthorizeCC handles POST /cards/authorize
func (h *Handler) AuthorizeCC(c *gin.Context) {
	var req ChargeRequest
	if !h.bind(c, &req) {
		return
	}
	card := svc.OneOffCard{PaymentMethodReference: req.PaymentMethodReference}
	result, err := h.service.AuthorizeCC(c.Request.Context(), h.account, card, req.Amount, toInvoiceAmounts(req.Invoices))
	respondTransaction(c, result, err)
}

// CaptureCC handles POST /cards/capture
func (h *Handler) CaptureCC(c *gin.Context) {
	var req FollowUpRequest
	if !h.bind(c, &req) {
		return
	}
	result, err := h.service.CaptureCC(c.Request.Context(), h.account, req.ReferenceID, req.TransactionID, amountOrZero(req.Amount))
	respondTransaction(c, result, err)
}

// VoidCC handles POST /cards/void
func (h *Handler) VoidCC(c *gin.Context) {
	var req FollowUpRequest
	if !h.bind(c, &req) {
		return
	}
	result, err := h.service.VoidCC(c.Request.Context(), h.account, req.ReferenceID, req.TransactionID)
	respondTransaction(c, result, err)
}

// RefundCC handles POST /cards/refund
func (h *Handler) RefundCC(c *gin.Context) {
	var req FollowUpRequest
	if !h.bind(c, &req) {
		return
	}
	result, err := h.service.RefundCC(c.Request.Context(), h.account, req.ReferenceID, req.TransactionID, req.Amount)
	respondTransaction(c, result, err)
}

// ProcessStoredCC handles POST /stored-cards/charge
func (h *Handler) ProcessStoredCC(c *gin.Context) {
	var req ChargeRequest
	if !h.bind(c, &req) || !requirePositive(c, req.Amount) {
		return
	}
	acct, ok := h.accountFor(c, req.Currency)
	if !ok {
		return
	}

	h.logger.Info("Stored card charge request received",
		zap.String("gateway_id", acct.GatewayID),
		zap.String("amount", req.Amount.String()),
		zap.String("currency", acct.Currency),
	)

	result, err := h.service.ProcessStoredCC(c.Request.Context(), acct, req.CustomerReference, req.PaymentMethodReference, req.Amount, toInvoiceAmounts(req.Invoices))
	respondTransaction(c, result, err)
}

// AuthorizeStoredCC handles POST /stored-cards/authorize
func (h *Handler) AuthorizeStoredCC(c *gin.Context) {
	var req ChargeRequest
	if !h.bind(c, &req) || !requirePositive(c, req.Amount) {
		return
	}
	acct, ok := h.accountFor(c, req.Currency)
	if !ok {
		return
	}

	result, err := h.service.AuthorizeStoredCC(c.Request.Context(), acct, req.CustomerReference, req.PaymentMethodReference, req.Amount, toInvoiceAmounts(req.Invoices))
	respondTransaction(c, result, err)
}

// CaptureStoredCC handles POST /stored-cards/capture
func (h *Handler) CaptureStoredCC(c *gin.Context) {
	var req FollowUpRequest
	if !h.bind(c, &req) {
		return
	}
	acct, ok := h.accountFor(c, req.Currency)
	if !ok {
		return
	}

	result, err := h.service.CaptureStoredCC(c.Request.Context(), acct, req.ReferenceID, req.TransactionID, amountOrZero(req.Amount))
	respondTransaction(c, result, err)
}

// VoidStoredCC handles POST /stored-cards/void
func (h *Handler) VoidStoredCC(c *gin.Context) {
	var req FollowUpRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.service.VoidStoredCC(c.Request.Context(), h.account, req.ReferenceID, req.TransactionID)
	respondTransaction(c, result, err)
}

// RefundStoredCC handles POST /stored-cards/refund. Omitting amount refunds in full.
func (h *Handler) RefundStoredCC(c *gin.Context) {
	var req FollowUpRequest
	if !h.bind(c, &req) {
		return
	}
	if req.Amount != nil && req.Amount.IsNegative() {
		respondBadRequest(c, "amount", "The amount must not be negative.")
		return
	}
	acct, ok := h.accountFor(c, req.Currency)
	if !ok {
		return
	}

	result, err := h.service.RefundStoredCC(c.Request.Context(), acct, req.ReferenceID, req.TransactionID, req.Amount)
	respondTransaction(c, result, err)
}

func amountOrZero(amount *decimal.Decimal) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return *amount
}
