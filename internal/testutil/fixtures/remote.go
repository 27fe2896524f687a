package fixtures

import (
	"net/http"

	"github.com/kevin07696/stripe-gateway/internal/adapters/ports"
)

// Test keys in the processor's format. They never reach a real API.
const (
	TestPublishableKey = "pk_test_51Hx0000000000000000000000"
	TestSecretKey      = "sk_test_51Hx0000000000000000000000"
)

// PaymentIntentBuilder provides a fluent API for building remote intents.
type PaymentIntentBuilder struct {
	intent *ports.PaymentIntent
}

// NewPaymentIntent creates a succeeded intent with a charge.
func NewPaymentIntent() *PaymentIntentBuilder {
	return &PaymentIntentBuilder{
		intent: &ports.PaymentIntent{
			ID:             "pi_test_123",
			Status:         ports.IntentStatusSucceeded,
			Amount:         1999,
			Currency:       "usd",
			ClientSecret:   "pi_test_123_secret_abc",
			LatestChargeID: "ch_test_123",
		},
	}
}

func (b *PaymentIntentBuilder) WithID(id string) *PaymentIntentBuilder {
	b.intent.ID = id
	return b
}

func (b *PaymentIntentBuilder) WithStatus(status string) *PaymentIntentBuilder {
	b.intent.Status = status
	return b
}

func (b *PaymentIntentBuilder) WithAmount(amount int64) *PaymentIntentBuilder {
	b.intent.Amount = amount
	return b
}

func (b *PaymentIntentBuilder) WithCharge(chargeID string) *PaymentIntentBuilder {
	b.intent.LatestChargeID = chargeID
	return b
}

func (b *PaymentIntentBuilder) WithLastPaymentError(err *ports.RemoteError) *PaymentIntentBuilder {
	b.intent.LastPaymentError = err
	return b
}

func (b *PaymentIntentBuilder) Build() *ports.PaymentIntent {
	return b.intent
}

// NewCardPaymentMethod creates a tokenized card payment method.
func NewCardPaymentMethod(id, brand, last4 string, expMonth, expYear int64) *ports.PaymentMethod {
	return &ports.PaymentMethod{
		ID: id,
		Card: &ports.Card{
			Brand:    brand,
			Last4:    last4,
			ExpMonth: expMonth,
			ExpYear:  expYear,
		},
	}
}

// CardDeclinedError is the failure the processor reports for a declined card.
func CardDeclinedError() *ports.RemoteError {
	return &ports.RemoteError{
		Kind:       ports.RemoteErrorCard,
		Type:       "card_error",
		Code:       "card_declined",
		Message:    "Your card was declined.",
		HTTPStatus: http.StatusPaymentRequired,
		HasBody:    true,
	}
}

// AuthenticationError is the failure for a rejected secret key. The message
// echoes the key the way the processor does.
func AuthenticationError() *ports.RemoteError {
	return &ports.RemoteError{
		Kind:       ports.RemoteErrorAuthentication,
		Type:       "invalid_request_error",
		Message:    "Invalid API Key provided: " + TestSecretKey,
		HTTPStatus: http.StatusUnauthorized,
		HasBody:    true,
	}
}

// InvalidRequestError is a well-formed request rejection.
func InvalidRequestError(code, message string) *ports.RemoteError {
	return &ports.RemoteError{
		Kind:       ports.RemoteErrorInvalidRequest,
		Type:       "invalid_request_error",
		Code:       code,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		HasBody:    true,
	}
}

// OutageError is a processor failure with no usable body.
func OutageError() *ports.RemoteError {
	return &ports.RemoteError{
		Kind:       ports.RemoteErrorAPI,
		Message:    "connection reset by peer",
		HTTPStatus: http.StatusBadGateway,
	}
}
