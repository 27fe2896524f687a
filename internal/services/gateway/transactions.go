package gateway

import (
	"context"

	"github.com/shopspring/decimal"

	adapterports "github.com/kevin07696/stripe-gateway/internal/adapters/ports"
	"github.com/kevin07696/stripe-gateway/internal/domain"
	"github.com/kevin07696/stripe-gateway/internal/domain/ports"
	"github.com/kevin07696/stripe-gateway/pkg/observability"
)

// OneOffCard is a card tokenized in the browser and not stored for reuse
type OneOffCard struct {
	PaymentMethodReference string `json:"reference_id"`
}

const captureMethodManual = "manual"

// ProcessCC charges a one-off card immediately
func (s *Service) ProcessCC(ctx context.Context, acct Account, card OneOffCard, amount decimal.Decimal, invoices []InvoiceAmount) (*domain.TransactionResult, error) {
	return s.charge(ctx, acct, "", card.PaymentMethodReference, amount, invoices)
}

// ProcessStoredCC charges a stored card immediately
func (s *Service) ProcessStoredCC(ctx context.Context, acct Account, customerRef, paymentMethodRef string, amount decimal.Decimal, invoices []InvoiceAmount) (*domain.TransactionResult, error) {
	return s.charge(ctx, acct, customerRef, paymentMethodRef, amount, invoices)
}

func (s *Service) charge(ctx context.Context, acct Account, customerRef, paymentMethodRef string, amount decimal.Decimal, invoices []InvoiceAmount) (*domain.TransactionResult, error) {
	if paymentMethodRef == "" {
		return s.rejected("charge", domain.NewInvalidInputError("reference_id", "A payment method reference is required."))
	}

	currency := acct.currency()
	req := &adapterports.CreatePaymentIntentRequest{
		Amount:        FormatAmount(amount, currency),
		Currency:      currency,
		PaymentMethod: paymentMethodRef,
		Customer:      customerRef,
		Description:   s.chargeDescription(ctx, invoices),
		Confirm:       true,
		OffSession:    false,
	}

	intent, gwErr := execute(ctx, s, acct, OpCreatePaymentIntent, req,
		func(ctx context.Context, key string) (*adapterports.PaymentIntent, error) {
			return s.remote.CreatePaymentIntent(ctx, key, req)
		})

	o := classifyCharge(intent, gwErr)
	result := &domain.TransactionResult{Status: o.status, Message: o.message, Code: o.code}
	if intent != nil {
		result.ReferenceID = intent.ID
		result.TransactionID = intent.LatestChargeID
	}

	s.recordTransaction("charge", acct, result)
	return result, toError(gwErr)
}

// AuthorizeStoredCC places a hold on a stored card without capturing funds.
// The result carries the intent reference; the transaction id only exists
// after capture.
func (s *Service) AuthorizeStoredCC(ctx context.Context, acct Account, customerRef, paymentMethodRef string, amount decimal.Decimal, invoices []InvoiceAmount) (*domain.TransactionResult, error) {
	if paymentMethodRef == "" {
		return s.rejected("authorize", domain.NewInvalidInputError("reference_id", "A payment method reference is required."))
	}

	currency := acct.currency()
	req := &adapterports.CreatePaymentIntentRequest{
		Amount:        FormatAmount(amount, currency),
		Currency:      currency,
		PaymentMethod: paymentMethodRef,
		Customer:      customerRef,
		Description:   s.chargeDescription(ctx, invoices),
		CaptureMethod: captureMethodManual,
	}

	intent, gwErr := execute(ctx, s, acct, OpCreatePaymentIntent, req,
		func(ctx context.Context, key string) (*adapterports.PaymentIntent, error) {
			return s.remote.CreatePaymentIntent(ctx, key, req)
		})
	if gwErr != nil {
		result := failedResult(gwErr, "", "")
		s.recordTransaction("authorize", acct, result)
		return result, gwErr
	}

	o := classifyIntentStatus(intent)
	result := &domain.TransactionResult{
		Status:      o.status,
		ReferenceID: intent.ID,
		Message:     o.message,
		Code:        o.code,
	}

	s.recordTransaction("authorize", acct, result)
	return result, nil
}

// CaptureStoredCC captures a previously authorized intent. A positive amount
// captures less than the authorized total.
func (s *Service) CaptureStoredCC(ctx context.Context, acct Account, referenceID, transactionID string, amount decimal.Decimal) (*domain.TransactionResult, error) {
	if referenceID == "" {
		return s.rejected("capture", domain.NewInvalidInputError("reference_id", "A payment intent reference is required."))
	}

	intent, gwErr := execute(ctx, s, acct, OpRetrievePaymentIntent, map[string]string{"id": referenceID},
		func(ctx context.Context, key string) (*adapterports.PaymentIntent, error) {
			return s.remote.RetrievePaymentIntent(ctx, key, referenceID)
		})
	if gwErr != nil {
		result := failedResult(gwErr, referenceID, transactionID)
		s.recordTransaction("capture", acct, result)
		return result, gwErr
	}

	req := &adapterports.CapturePaymentIntentRequest{IntentID: intent.ID}
	if amount.IsPositive() {
		req.AmountToCapture = FormatAmount(amount, acct.currency())
	}

	captured, gwErr := execute(ctx, s, acct, OpCapturePaymentIntent, req,
		func(ctx context.Context, key string) (*adapterports.PaymentIntent, error) {
			return s.remote.CapturePaymentIntent(ctx, key, req)
		})
	if gwErr != nil {
		result := failedResult(gwErr, referenceID, transactionID)
		s.recordTransaction("capture", acct, result)
		return result, gwErr
	}

	o := classifyIntentStatus(captured)
	result := &domain.TransactionResult{
		Status:        o.status,
		ReferenceID:   captured.ID,
		TransactionID: captured.LatestChargeID,
		Message:       o.message,
		Code:          o.code,
	}

	s.recordTransaction("capture", acct, result)
	return result, nil
}

// VoidStoredCC cancels an uncaptured intent, or refunds a captured charge in
// full and reports it as void. An intent without a charge is never refunded.
func (s *Service) VoidStoredCC(ctx context.Context, acct Account, referenceID, transactionID string) (*domain.TransactionResult, error) {
	if transactionID != "" {
		result, err := s.refund(ctx, acct, referenceID, transactionID, nil)
		if err == nil {
			result.Status = domain.TransactionStatusVoid
		}
		s.recordTransaction("void", acct, result)
		return result, err
	}

	if referenceID == "" {
		return s.rejected("void", domain.NewInvalidInputError("reference_id", "A payment intent reference or transaction id is required."))
	}

	_, gwErr := execute(ctx, s, acct, OpCancelPaymentIntent, map[string]string{"id": referenceID},
		func(ctx context.Context, key string) (*adapterports.PaymentIntent, error) {
			return s.remote.CancelPaymentIntent(ctx, key, referenceID)
		})
	if gwErr != nil {
		result := failedResult(gwErr, referenceID, "")
		s.recordTransaction("void", acct, result)
		return result, gwErr
	}

	result := &domain.TransactionResult{
		Status:      domain.TransactionStatusVoid,
		ReferenceID: referenceID,
	}
	s.recordTransaction("void", acct, result)
	return result, nil
}

// RefundStoredCC refunds a captured charge. A nil amount refunds in full.
func (s *Service) RefundStoredCC(ctx context.Context, acct Account, referenceID, transactionID string, amount *decimal.Decimal) (*domain.TransactionResult, error) {
	result, err := s.refund(ctx, acct, referenceID, transactionID, amount)
	s.recordTransaction("refund", acct, result)
	return result, err
}

func (s *Service) refund(ctx context.Context, acct Account, referenceID, transactionID string, amount *decimal.Decimal) (*domain.TransactionResult, error) {
	if transactionID == "" {
		gwErr := domain.NewInvalidInputError("transaction_id", "A transaction id is required to refund.")
		return failedResult(gwErr, referenceID, ""), gwErr
	}

	req := &adapterports.CreateRefundRequest{Charge: transactionID}
	if amount != nil && amount.IsPositive() {
		req.Amount = FormatAmount(*amount, acct.currency())
	}

	refund, gwErr := execute(ctx, s, acct, OpCreateRefund, req,
		func(ctx context.Context, key string) (*adapterports.Refund, error) {
			return s.remote.CreateRefund(ctx, key, req)
		})
	if gwErr == nil && (refund.Status == adapterports.RefundStatusFailed || refund.Status == adapterports.RefundStatusCanceled) {
		gwErr = refundFailure(refund)
	}
	if gwErr != nil {
		return failedResult(gwErr, referenceID, transactionID), gwErr
	}

	return &domain.TransactionResult{
		Status:        domain.TransactionStatusRefunded,
		ReferenceID:   referenceID,
		TransactionID: transactionID,
	}, nil
}

func refundFailure(refund *adapterports.Refund) *domain.GatewayError {
	message := refund.FailureReason
	if message == "" {
		message = "The refund was " + refund.Status + "."
	}
	gwErr := domain.NewGatewayError(domain.ErrorCodeRemoteGeneral, message)
	gwErr.RemoteCode = refund.FailureReason
	gwErr.Fields.Add("stripe_error", "refund", message)
	return gwErr
}

// AuthorizeCC is not offered for one-off cards
func (s *Service) AuthorizeCC(ctx context.Context, acct Account, card OneOffCard, amount decimal.Decimal, invoices []InvoiceAmount) (*domain.TransactionResult, error) {
	return s.rejected("authorize", domain.NewUnsupportedError("authorize_cc"))
}

// CaptureCC is not offered for one-off cards
func (s *Service) CaptureCC(ctx context.Context, acct Account, referenceID, transactionID string, amount decimal.Decimal) (*domain.TransactionResult, error) {
	return s.rejected("capture", domain.NewUnsupportedError("capture_cc"))
}

// VoidCC is not offered for one-off cards
func (s *Service) VoidCC(ctx context.Context, acct Account, referenceID, transactionID string) (*domain.TransactionResult, error) {
	return s.rejected("void", domain.NewUnsupportedError("void_cc"))
}

// RefundCC is not offered for one-off cards
func (s *Service) RefundCC(ctx context.Context, acct Account, referenceID, transactionID string, amount *decimal.Decimal) (*domain.TransactionResult, error) {
	return s.rejected("refund", domain.NewUnsupportedError("refund_cc"))
}

// rejected reports an operation refused before any remote call
func (s *Service) rejected(operation string, gwErr *domain.GatewayError) (*domain.TransactionResult, error) {
	s.logger.Warn("Transaction rejected",
		ports.String("operation", operation),
		ports.String("code", string(gwErr.Code)),
	)
	result := failedResult(gwErr, "", "")
	observability.RecordTransaction(operation, string(result.Status))
	return result, gwErr
}

// failedResult maps a gateway error to a declined or error result
func failedResult(gwErr *domain.GatewayError, referenceID, transactionID string) *domain.TransactionResult {
	status := domain.TransactionStatusError
	if gwErr.IsCardDeclined() {
		status = domain.TransactionStatusDeclined
	}
	return domain.NewFailedResult(status, referenceID, transactionID, gwErr)
}

func (s *Service) recordTransaction(operation string, acct Account, result *domain.TransactionResult) {
	observability.RecordTransaction(operation, string(result.Status))

	fields := []ports.Field{
		ports.String("operation", operation),
		ports.String("gateway_id", acct.GatewayID),
		ports.String("status", string(result.Status)),
		ports.String("reference_id", result.ReferenceID),
		ports.String("transaction_id", result.TransactionID),
	}
	if result.IsFailure() {
		s.logger.Warn("Transaction completed", append(fields, ports.String("code", string(result.Code)))...)
		return
	}
	s.logger.Info("Transaction completed", fields...)
}
