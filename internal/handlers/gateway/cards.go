package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StoreCC handles POST /stored-cards
func (h *Handler) StoreCC(c *gin.Context) {
	var req StoreCardRequest
	if !h.bind(c, &req) {
		return
	}

	stored, err := h.service.StoreCC(c.Request.Context(), h.account, req.PaymentMethodReference, req.CustomerReference)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stored)
}

// UpdateCC handles PUT /stored-cards
func (h *Handler) UpdateCC(c *gin.Context) {
	var req StoreCardRequest
	if !h.bind(c, &req) {
		return
	}

	stored, err := h.service.UpdateCC(c.Request.Context(), h.account, req.PaymentMethodReference, req.CustomerReference, req.OldPaymentMethodReference)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stored)
}

// RemoveCC handles DELETE /stored-cards/:reference_id?client_reference_id=
func (h *Handler) RemoveCC(c *gin.Context) {
	removed, err := h.service.RemoveCC(c.Request.Context(), h.account, c.Query("client_reference_id"), c.Param("reference_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, removed)
}

// PrepareCardForm handles POST /card-forms
func (h *Handler) PrepareCardForm(c *gin.Context) {
	form, err := h.service.PrepareCardForm(c.Request.Context(), h.account)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// PaymentConfirmation handles GET /payment-intents/:reference_id/confirmation
func (h *Handler) PaymentConfirmation(c *gin.Context) {
	confirmation, err := h.service.PaymentConfirmation(c.Request.Context(), h.account, c.Param("reference_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, confirmation)
}
