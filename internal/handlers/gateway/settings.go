package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kevin07696/stripe-gateway/internal/domain"
	svc "github.com/kevin07696/stripe-gateway/internal/services/gateway"
)

// ValidateSettings handles POST /settings/validate. The connectivity check
// runs unless ?check_connection=false.
func (h *Handler) ValidateSettings(c *gin.Context) {
	var req SettingsRequest
	if !h.bind(c, &req) {
		return
	}

	cfg := domain.GatewayConfig{
		PublishableKey: req.Meta[svc.SettingPublishableKey],
		SecretKey:      req.Meta[svc.SettingSecretKey],
	}
	checkConnection := c.DefaultQuery("check_connection", "true") != "false"

	if err := h.service.ValidateSettings(c.Request.Context(), cfg, checkConnection); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid":              true,
		"encryptable_fields": svc.EncryptableFields(),
	})
}

// EditSettings handles PUT /settings
func (h *Handler) EditSettings(c *gin.Context) {
	var req SettingsRequest
	if !h.bind(c, &req) {
		return
	}

	update, err := h.service.EditSettings(c.Request.Context(), h.account.GatewayID, req.Meta)
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info("Gateway settings accepted",
		zap.String("gateway_id", h.account.GatewayID),
		zap.Bool("migration_ran", update.Migration != nil),
	)
	c.JSON(http.StatusOK, update)
}

// MigrateBatch handles POST /migrations
func (h *Handler) MigrateBatch(c *gin.Context) {
	var req MigrationRequest
	if c.Request.ContentLength > 0 && !h.bind(c, &req) {
		return
	}

	report, err := h.service.MigrateBatch(c.Request.Context(), h.account, req.MaxCount)
	if err != nil {
		h.logger.Error("Legacy migration batch failed",
			zap.String("gateway_id", h.account.GatewayID),
			zap.Error(err),
		)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
