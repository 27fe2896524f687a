package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adapterports "github.com/kevin07696/stripe-gateway/internal/adapters/ports"
	"github.com/kevin07696/stripe-gateway/internal/domain"
	"github.com/kevin07696/stripe-gateway/internal/testutil/fixtures"
)

func TestProcessCC_Approved(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	h.invoices.On("InvoiceCodes", mock.Anything, []string{"inv_1", "inv_2"}).
		Return([]string{"INV-001", "INV-002"}, nil)
	h.remote.On("CreatePaymentIntent", mock.Anything, fixtures.TestSecretKey,
		mock.MatchedBy(func(req *adapterports.CreatePaymentIntentRequest) bool {
			return req.Amount == 1999 &&
				req.Currency == "usd" &&
				req.PaymentMethod == "pm_card_visa" &&
				req.Customer == "" &&
				req.Description == "Charge for INV-001, INV-002" &&
				req.Confirm && !req.OffSession
		})).
		Return(fixtures.NewPaymentIntent().Build(), nil)

	invoices := []InvoiceAmount{
		{InvoiceID: "inv_1", Amount: fixtures.Amount("10.00")},
		{InvoiceID: "inv_2", Amount: fixtures.Amount("9.99")},
	}
	result, err := h.service.ProcessCC(ctx, testAccount(), OneOffCard{PaymentMethodReference: "pm_card_visa"}, fixtures.Amount("19.99"), invoices)

	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusApproved, result.Status)
	assert.Equal(t, "pi_test_123", result.ReferenceID)
	assert.Equal(t, "ch_test_123", result.TransactionID)
	assert.Empty(t, result.Message)
	h.remote.AssertExpectations(t)
	h.invoices.AssertExpectations(t)
}

func TestProcessStoredCC_ZeroDecimalCurrency(t *testing.T) {
	h := newTestHarness()
	acct := testAccount()
	acct.Currency = "JPY"

	h.remote.On("CreatePaymentIntent", mock.Anything, fixtures.TestSecretKey,
		mock.MatchedBy(func(req *adapterports.CreatePaymentIntentRequest) bool {
			return req.Amount == 1500 && req.Currency == "jpy" && req.Customer == "cus_1" &&
				req.Description == DefaultChargeDescription
		})).
		Return(fixtures.NewPaymentIntent().WithAmount(1500).Build(), nil)

	result, err := h.service.ProcessStoredCC(context.Background(), acct, "cus_1", "pm_1", fixtures.Amount("1500"), nil)

	require.NoError(t, err)
	assert.True(t, result.IsApproved())
	h.invoices.AssertNotCalled(t, "InvoiceCodes", mock.Anything, mock.Anything)
}

func TestProcessStoredCC_Declined(t *testing.T) {
	h := newTestHarness()

	h.remote.On("CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fixtures.CardDeclinedError())

	result, err := h.service.ProcessStoredCC(context.Background(), testAccount(), "cus_1", "pm_1", fixtures.Amount("5"), nil)

	require.Error(t, err)
	assert.Equal(t, domain.TransactionStatusDeclined, result.Status)
	assert.Equal(t, "Your card was declined.", result.Message)
	assert.Equal(t, domain.ErrorCodeRemoteCard, result.Code)
	assert.True(t, domain.IsGatewayError(err, domain.ErrorCodeRemoteCard))
}

func TestProcessStoredCC_AuthenticationFailure(t *testing.T) {
	h := newTestHarness()

	h.remote.On("CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fixtures.AuthenticationError())

	result, err := h.service.ProcessStoredCC(context.Background(), testAccount(), "cus_1", "pm_1", fixtures.Amount("5"), nil)

	require.Error(t, err)
	assert.Equal(t, domain.TransactionStatusError, result.Status)
	assert.Equal(t, "The gateway could not authenticate.", result.Message)
}

func TestProcessCC_InvoiceLookupFailureUsesDefaultDescription(t *testing.T) {
	h := newTestHarness()

	h.invoices.On("InvoiceCodes", mock.Anything, []string{"inv_1"}).Return(nil, errors.New("db down"))
	h.remote.On("CreatePaymentIntent", mock.Anything, mock.Anything,
		mock.MatchedBy(func(req *adapterports.CreatePaymentIntentRequest) bool {
			return req.Description == DefaultChargeDescription
		})).
		Return(fixtures.NewPaymentIntent().Build(), nil)

	result, err := h.service.ProcessCC(context.Background(), testAccount(), OneOffCard{PaymentMethodReference: "pm_1"},
		fixtures.Amount("1"), []InvoiceAmount{{InvoiceID: "inv_1", Amount: fixtures.Amount("1")}})

	require.NoError(t, err)
	assert.True(t, result.IsApproved())
	assert.NotEmpty(t, h.logger.WarnCalls)
}

func TestProcessCC_MissingConfigNeverCallsRemote(t *testing.T) {
	h := newTestHarness()
	acct := testAccount()
	acct.Config = domain.GatewayConfig{}

	result, err := h.service.ProcessCC(context.Background(), acct, OneOffCard{PaymentMethodReference: "pm_1"}, fixtures.Amount("1"), nil)

	require.Error(t, err)
	assert.Equal(t, domain.TransactionStatusError, result.Status)
	assert.Equal(t, domain.ErrorCodeConfiguration, result.Code)
	h.remote.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthorizeStoredCC_Pending(t *testing.T) {
	h := newTestHarness()

	h.remote.On("CreatePaymentIntent", mock.Anything, mock.Anything,
		mock.MatchedBy(func(req *adapterports.CreatePaymentIntentRequest) bool {
			return req.CaptureMethod == "manual" && !req.Confirm
		})).
		Return(fixtures.NewPaymentIntent().
			WithStatus(adapterports.IntentStatusRequiresConfirmation).
			WithCharge("").
			Build(), nil)

	result, err := h.service.AuthorizeStoredCC(context.Background(), testAccount(), "cus_1", "pm_1", fixtures.Amount("20"), nil)

	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusPending, result.Status)
	assert.Equal(t, "pi_test_123", result.ReferenceID)
	assert.Empty(t, result.TransactionID)
}

func TestCaptureStoredCC_PartialAmount(t *testing.T) {
	h := newTestHarness()

	h.remote.On("RetrievePaymentIntent", mock.Anything, mock.Anything, "pi_1").
		Return(fixtures.NewPaymentIntent().WithID("pi_1").WithStatus(adapterports.IntentStatusRequiresCapture).Build(), nil)
	h.remote.On("CapturePaymentIntent", mock.Anything, mock.Anything,
		&adapterports.CapturePaymentIntentRequest{IntentID: "pi_1", AmountToCapture: 1250}).
		Return(fixtures.NewPaymentIntent().WithID("pi_1").WithCharge("ch_9").Build(), nil)

	result, err := h.service.CaptureStoredCC(context.Background(), testAccount(), "pi_1", "", fixtures.Amount("12.50"))

	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusApproved, result.Status)
	assert.Equal(t, "ch_9", result.TransactionID)
	h.remote.AssertExpectations(t)
}

func TestCaptureStoredCC_FullAmount(t *testing.T) {
	h := newTestHarness()

	h.remote.On("RetrievePaymentIntent", mock.Anything, mock.Anything, "pi_1").
		Return(fixtures.NewPaymentIntent().WithID("pi_1").Build(), nil)
	h.remote.On("CapturePaymentIntent", mock.Anything, mock.Anything,
		&adapterports.CapturePaymentIntentRequest{IntentID: "pi_1"}).
		Return(fixtures.NewPaymentIntent().WithID("pi_1").Build(), nil)

	_, err := h.service.CaptureStoredCC(context.Background(), testAccount(), "pi_1", "", decimal.Zero)

	require.NoError(t, err)
	h.remote.AssertExpectations(t)
}

func TestCaptureStoredCC_RetrieveFails(t *testing.T) {
	h := newTestHarness()

	h.remote.On("RetrievePaymentIntent", mock.Anything, mock.Anything, "pi_missing").
		Return(nil, fixtures.InvalidRequestError("resource_missing", "No such payment_intent: 'pi_missing'"))

	result, err := h.service.CaptureStoredCC(context.Background(), testAccount(), "pi_missing", "", decimal.Zero)

	require.Error(t, err)
	assert.Equal(t, domain.TransactionStatusError, result.Status)
	assert.Equal(t, "pi_missing", result.ReferenceID)
	h.remote.AssertNotCalled(t, "CapturePaymentIntent", mock.Anything, mock.Anything, mock.Anything)
}

func TestVoidStoredCC_BeforeCaptureCancelsWithoutRefund(t *testing.T) {
	h := newTestHarness()

	h.remote.On("CancelPaymentIntent", mock.Anything, mock.Anything, "pi_1").
		Return(fixtures.NewPaymentIntent().WithID("pi_1").WithStatus(adapterports.IntentStatusCanceled).Build(), nil)

	result, err := h.service.VoidStoredCC(context.Background(), testAccount(), "pi_1", "")

	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusVoid, result.Status)
	assert.Equal(t, "pi_1", result.ReferenceID)
	h.remote.AssertNotCalled(t, "CreateRefund", mock.Anything, mock.Anything, mock.Anything)
}

func TestVoidStoredCC_AfterCaptureRefundsInFull(t *testing.T) {
	h := newTestHarness()

	h.remote.On("CreateRefund", mock.Anything, mock.Anything, &adapterports.CreateRefundRequest{Charge: "ch_1"}).
		Return(&adapterports.Refund{ID: "re_1", Charge: "ch_1", Status: adapterports.RefundStatusSucceeded}, nil)

	result, err := h.service.VoidStoredCC(context.Background(), testAccount(), "pi_1", "ch_1")

	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusVoid, result.Status)
	assert.Equal(t, "ch_1", result.TransactionID)
	h.remote.AssertNotCalled(t, "CancelPaymentIntent", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefundStoredCC(t *testing.T) {
	t.Run("partial refund", func(t *testing.T) {
		h := newTestHarness()
		h.remote.On("CreateRefund", mock.Anything, mock.Anything, &adapterports.CreateRefundRequest{Charge: "ch_1", Amount: 500}).
			Return(&adapterports.Refund{ID: "re_1", Status: adapterports.RefundStatusPending}, nil)

		result, err := h.service.RefundStoredCC(context.Background(), testAccount(), "pi_1", "ch_1", fixtures.DecimalPtr("5.00"))

		require.NoError(t, err)
		assert.Equal(t, domain.TransactionStatusRefunded, result.Status)
		assert.Equal(t, "pi_1", result.ReferenceID)
		assert.Equal(t, "ch_1", result.TransactionID)
	})

	t.Run("failed refund status is an error", func(t *testing.T) {
		h := newTestHarness()
		h.remote.On("CreateRefund", mock.Anything, mock.Anything, mock.Anything).
			Return(&adapterports.Refund{ID: "re_1", Status: adapterports.RefundStatusFailed, FailureReason: "expired_or_canceled_card"}, nil)

		result, err := h.service.RefundStoredCC(context.Background(), testAccount(), "pi_1", "ch_1", nil)

		require.Error(t, err)
		assert.Equal(t, domain.TransactionStatusError, result.Status)
		assert.Equal(t, "expired_or_canceled_card", result.Message)
		gwErr, ok := domain.AsGatewayError(err)
		require.True(t, ok)
		assert.Equal(t, "expired_or_canceled_card", gwErr.Fields["stripe_error"]["refund"])
	})

	t.Run("missing transaction id", func(t *testing.T) {
		h := newTestHarness()

		result, err := h.service.RefundStoredCC(context.Background(), testAccount(), "pi_1", "", nil)

		require.Error(t, err)
		assert.Equal(t, domain.TransactionStatusError, result.Status)
		assert.Equal(t, domain.ErrorCodeInvalidInput, result.Code)
		h.remote.AssertNotCalled(t, "CreateRefund", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOneOffCardOperationsUnsupported(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()
	acct := testAccount()
	card := OneOffCard{PaymentMethodReference: "pm_1"}

	ops := map[string]func() (*domain.TransactionResult, error){
		"authorize": func() (*domain.TransactionResult, error) {
			return h.service.AuthorizeCC(ctx, acct, card, fixtures.Amount("1"), nil)
		},
		"capture": func() (*domain.TransactionResult, error) {
			return h.service.CaptureCC(ctx, acct, "pi_1", "ch_1", fixtures.Amount("1"))
		},
		"void": func() (*domain.TransactionResult, error) {
			return h.service.VoidCC(ctx, acct, "pi_1", "ch_1")
		},
		"refund": func() (*domain.TransactionResult, error) {
			return h.service.RefundCC(ctx, acct, "pi_1", "ch_1", nil)
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			result, err := op()
			require.Error(t, err)
			assert.Equal(t, domain.TransactionStatusError, result.Status)
			assert.Equal(t, "The gateway does not support this action.", result.Message)
			assert.True(t, domain.IsGatewayError(err, domain.ErrorCodeUnsupportedOperation))
		})
	}

	assert.Empty(t, h.remote.Calls)
	assert.Empty(t, h.audit.Entries)
}
