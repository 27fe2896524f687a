// Package gateway exposes the card gateway over HTTP for the host framework.
package gateway

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	svc "github.com/kevin07696/stripe-gateway/internal/services/gateway"
	"github.com/kevin07696/stripe-gateway/internal/services/ports"
)

// Handler serves the gateway operations for one installed gateway
type Handler struct {
	service ports.GatewayService
	account svc.Account
	logger  *zap.Logger
}

// NewHandler creates a new gateway handler. account supplies the gateway id,
// keys and default currency of every request.
func NewHandler(service ports.GatewayService, account svc.Account, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		account: account,
		logger:  logger,
	}
}

// RegisterRoutes mounts the gateway endpoints on r
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	cards := r.Group("/cards")
	cards.POST("/charge", h.ProcessCC)
	cards.POST("/authorize", h.AuthorizeCC)
	cards.POST("/capture", h.CaptureCC)
	cards.POST("/void", h.VoidCC)
	cards.POST("/refund", h.RefundCC)

	stored := r.Group("/stored-cards")
	stored.POST("", h.StoreCC)
	stored.PUT("", h.UpdateCC)
	stored.DELETE("/:reference_id", h.RemoveCC)
	stored.POST("/charge", h.ProcessStoredCC)
	stored.POST("/authorize", h.AuthorizeStoredCC)
	stored.POST("/capture", h.CaptureStoredCC)
	stored.POST("/void", h.VoidStoredCC)
	stored.POST("/refund", h.RefundStoredCC)

	r.POST("/card-forms", h.PrepareCardForm)
	r.GET("/payment-intents/:reference_id/confirmation", h.PaymentConfirmation)

	r.GET("/currencies", h.ListCurrencies)
	r.POST("/settings/validate", h.ValidateSettings)
	r.PUT("/settings", h.EditSettings)
	r.POST("/migrations", h.MigrateBatch)
}

// accountFor returns the handler's account with the request currency applied.
// ok is false when a response has already been written.
func (h *Handler) accountFor(c *gin.Context, currency string) (svc.Account, bool) {
	acct := h.account
	if currency == "" {
		return acct, true
	}
	if !svc.IsSupportedCurrency(currency) {
		respondBadRequest(c, "currency", "The currency "+strings.ToUpper(currency)+" is not supported.")
		return acct, false
	}
	acct.Currency = strings.ToLower(currency)
	return acct, true
}

func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Debug("Rejected malformed request",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		respondBadRequest(c, "body", "The request body is invalid.")
		return false
	}
	return true
}

func requirePositive(c *gin.Context, amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		respondBadRequest(c, "amount", "The amount must be greater than zero.")
		return false
	}
	return true
}

// ListCurrencies handles GET /currencies
func (h *Handler) ListCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"currencies": svc.SupportedCurrencies()})
}
