package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"

	adapterports "github.com/kevin07696/stripe-gateway/internal/adapters/ports"
	"github.com/kevin07696/stripe-gateway/internal/domain"
	"github.com/kevin07696/stripe-gateway/internal/testutil/fixtures"
)

func TestClassifyCharge(t *testing.T) {
	t.Run("no error approves", func(t *testing.T) {
		o := classifyCharge(fixtures.NewPaymentIntent().Build(), nil)
		assert.Equal(t, domain.TransactionStatusApproved, o.status)
		assert.Empty(t, o.message)
	})

	t.Run("requires action with no error still approves", func(t *testing.T) {
		intent := fixtures.NewPaymentIntent().WithStatus(adapterports.IntentStatusRequiresAction).Build()
		o := classifyCharge(intent, nil)
		assert.Equal(t, domain.TransactionStatusApproved, o.status)
	})

	t.Run("card declined error declines", func(t *testing.T) {
		gwErr := classifyRemoteError(fixtures.CardDeclinedError())
		o := classifyCharge(nil, gwErr)
		assert.Equal(t, domain.TransactionStatusDeclined, o.status)
		assert.Equal(t, "Your card was declined.", o.message)
		assert.Equal(t, domain.ErrorCodeRemoteCard, o.code)
	})

	t.Run("declined last payment error declines", func(t *testing.T) {
		intent := fixtures.NewPaymentIntent().
			WithStatus(adapterports.IntentStatusRequiresPaymentMethod).
			WithLastPaymentError(fixtures.CardDeclinedError()).
			Build()
		o := classifyCharge(intent, nil)
		assert.Equal(t, domain.TransactionStatusDeclined, o.status)
		assert.Equal(t, "Your card was declined.", o.message)
	})

	t.Run("other card error is an error", func(t *testing.T) {
		remote := fixtures.CardDeclinedError()
		remote.Code = "expired_card"
		remote.Message = "Your card has expired."
		o := classifyCharge(nil, classifyRemoteError(remote))
		assert.Equal(t, domain.TransactionStatusError, o.status)
		assert.Equal(t, "Your card has expired.", o.message)
	})

	t.Run("outage is an error", func(t *testing.T) {
		o := classifyCharge(nil, classifyRemoteError(fixtures.OutageError()))
		assert.Equal(t, domain.TransactionStatusError, o.status)
		assert.Equal(t, domain.MessageGeneralFailure, o.message)
		assert.Equal(t, domain.ErrorCodeRemoteGeneral, o.code)
	})
}

func TestClassifyIntentStatus(t *testing.T) {
	tests := []struct {
		status string
		want   domain.TransactionStatus
	}{
		{adapterports.IntentStatusRequiresConfirmation, domain.TransactionStatusPending},
		{adapterports.IntentStatusRequiresAction, domain.TransactionStatusPending},
		{adapterports.IntentStatusRequiresSourceAction, domain.TransactionStatusPending},
		{adapterports.IntentStatusProcessing, domain.TransactionStatusPending},
		{adapterports.IntentStatusCanceled, domain.TransactionStatusDeclined},
		{adapterports.IntentStatusSucceeded, domain.TransactionStatusApproved},
		{adapterports.IntentStatusRequiresPaymentMethod, domain.TransactionStatusError},
		{adapterports.IntentStatusRequiresSource, domain.TransactionStatusError},
		{adapterports.IntentStatusRequiresCapture, domain.TransactionStatusError},
		{"something_new", domain.TransactionStatusError},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			intent := fixtures.NewPaymentIntent().WithStatus(tt.status).Build()
			assert.Equal(t, tt.want, classifyIntentStatus(intent).status)
		})
	}

	assert.Equal(t, domain.TransactionStatusError, classifyIntentStatus(nil).status)
}

func TestClassifyRemoteError(t *testing.T) {
	t.Run("authentication uses fixed message", func(t *testing.T) {
		gwErr := classifyRemoteError(fixtures.AuthenticationError())
		assert.Equal(t, domain.ErrorCodeRemoteAuthentication, gwErr.Code)
		assert.Equal(t, domain.MessageAuthenticationFailed, gwErr.Message)
		assert.Equal(t, domain.MessageAuthenticationFailed, gwErr.Fields["invalid_request_error"]["auth_error"])
		assert.NotContains(t, gwErr.Message, fixtures.TestSecretKey)
	})

	t.Run("authentication without body", func(t *testing.T) {
		gwErr := classifyRemoteError(&adapterports.RemoteError{Kind: adapterports.RemoteErrorAuthentication})
		assert.Equal(t, domain.MessageAuthenticationFailed, gwErr.Fields["authentication_error"]["auth_error"])
	})

	t.Run("invalid request", func(t *testing.T) {
		gwErr := classifyRemoteError(fixtures.InvalidRequestError("resource_missing", "No such payment_method: 'pm_x'"))
		assert.Equal(t, domain.ErrorCodeRemoteInvalidRequest, gwErr.Code)
		assert.Equal(t, "No such payment_method: 'pm_x'", gwErr.Fields["invalid_request_error"]["error"])
		assert.Equal(t, "resource_missing", gwErr.RemoteCode)
	})

	t.Run("card error keyed by code", func(t *testing.T) {
		gwErr := classifyRemoteError(fixtures.CardDeclinedError())
		assert.Equal(t, "Your card was declined.", gwErr.Fields["card_error"]["card_declined"])
		assert.True(t, gwErr.IsCardDeclined())
	})

	t.Run("no body falls back to general", func(t *testing.T) {
		remote := fixtures.InvalidRequestError("", "")
		remote.HasBody = false
		gwErr := classifyRemoteError(remote)
		assert.Equal(t, domain.ErrorCodeRemoteGeneral, gwErr.Code)
		assert.Equal(t, domain.MessageGeneralFailure, gwErr.Message)
	})
}

func TestClassifyRemoteError_AuthenticationNeverLeaksKey(t *testing.T) {
	gwErr := classifyRemoteError(fixtures.AuthenticationError())
	assert.NotContains(t, gwErr.Error(), fixtures.TestSecretKey)
	assert.Nil(t, gwErr.Unwrap())
}
