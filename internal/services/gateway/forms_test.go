package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adapterports "github.com/kevin07696/stripe-gateway/internal/adapters/ports"
	"github.com/kevin07696/stripe-gateway/internal/domain"
	"github.com/kevin07696/stripe-gateway/internal/testutil/fixtures"
)

func TestPrepareCardForm(t *testing.T) {
	h := newTestHarness()
	h.remote.On("CreateSetupIntent", mock.Anything, fixtures.TestSecretKey).
		Return(&adapterports.SetupIntent{ID: "seti_1", Status: "requires_payment_method", ClientSecret: "seti_1_secret_x"}, nil)

	form, err := h.service.PrepareCardForm(context.Background(), testAccount())

	require.NoError(t, err)
	assert.Equal(t, &domain.CardForm{
		PublishableKey: fixtures.TestPublishableKey,
		SetupIntentID:  "seti_1",
		ClientSecret:   "seti_1_secret_x",
	}, form)
	require.Len(t, h.audit.Entries, 2)
	assert.NotContains(t, string(h.audit.Entries[1].Payload), "seti_1_secret_x")
}

func TestPaymentConfirmation(t *testing.T) {
	h := newTestHarness()
	h.remote.On("RetrievePaymentIntent", mock.Anything, mock.Anything, "pi_1").
		Return(fixtures.NewPaymentIntent().WithID("pi_1").WithStatus(adapterports.IntentStatusRequiresAction).Build(), nil)

	confirmation, err := h.service.PaymentConfirmation(context.Background(), testAccount(), "pi_1")

	require.NoError(t, err)
	assert.Equal(t, "pi_1", confirmation.ReferenceID)
	assert.Equal(t, adapterports.IntentStatusRequiresAction, confirmation.Status)
	assert.Equal(t, "pi_test_123_secret_abc", confirmation.ClientSecret)
	assert.Equal(t, fixtures.TestPublishableKey, confirmation.PublishableKey)
}

func TestPaymentConfirmation_MissingReference(t *testing.T) {
	h := newTestHarness()

	_, err := h.service.PaymentConfirmation(context.Background(), testAccount(), "")

	assert.True(t, domain.IsGatewayError(err, domain.ErrorCodeInvalidInput))
}
