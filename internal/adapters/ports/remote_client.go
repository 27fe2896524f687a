package ports

import (
	"context"
	"fmt"
)

// RemoteClient defines the port for the remote payment processor API.
// Every call authenticates with the secret key passed in, so one client may
// serve any number of gateway instances concurrently.
type RemoteClient interface {
	// Payment intents
	CreatePaymentIntent(ctx context.Context, secretKey string, req *CreatePaymentIntentRequest) (*PaymentIntent, error)
	RetrievePaymentIntent(ctx context.Context, secretKey, intentID string) (*PaymentIntent, error)
	CancelPaymentIntent(ctx context.Context, secretKey, intentID string) (*PaymentIntent, error)
	CapturePaymentIntent(ctx context.Context, secretKey string, req *CapturePaymentIntentRequest) (*PaymentIntent, error)

	// Customers
	CreateCustomer(ctx context.Context, secretKey string, req *CreateCustomerRequest) (*Customer, error)
	RetrieveCustomer(ctx context.Context, secretKey, customerID string) (*Customer, error)

	// Payment methods
	RetrievePaymentMethod(ctx context.Context, secretKey, paymentMethodID string) (*PaymentMethod, error)
	AttachPaymentMethod(ctx context.Context, secretKey string, req *AttachPaymentMethodRequest) (*PaymentMethod, error)
	DetachPaymentMethod(ctx context.Context, secretKey, paymentMethodID string) (*PaymentMethod, error)

	// Refunds
	CreateRefund(ctx context.Context, secretKey string, req *CreateRefundRequest) (*Refund, error)

	// Account
	RetrieveBalance(ctx context.Context, secretKey string) (*Balance, error)
	CreateSetupIntent(ctx context.Context, secretKey string) (*SetupIntent, error)
}

// CreatePaymentIntentRequest contains the parameters for creating a payment intent
type CreatePaymentIntentRequest struct {
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	PaymentMethod string `json:"payment_method"`
	Customer      string `json:"customer,omitempty"`
	Description   string `json:"description,omitempty"`
	Confirm       bool   `json:"confirm"`
	OffSession    bool   `json:"off_session"`
	// CaptureMethod is "manual" to authorize without capturing
	CaptureMethod string `json:"capture_method,omitempty"`
}

// CapturePaymentIntentRequest contains the parameters for capturing an authorized intent
type CapturePaymentIntentRequest struct {
	IntentID string `json:"id"`
	// AmountToCapture captures the full authorized amount when zero
	AmountToCapture int64 `json:"amount_to_capture,omitempty"`
}

// CreateCustomerRequest contains the parameters for creating a customer
type CreateCustomerRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// AttachPaymentMethodRequest contains the parameters for attaching a payment method
type AttachPaymentMethodRequest struct {
	PaymentMethodID string `json:"id"`
	Customer        string `json:"customer"`
}

// CreateRefundRequest contains the parameters for refunding a charge
type CreateRefundRequest struct {
	Charge string `json:"charge"`
	// Amount refunds the full charge when zero
	Amount int64 `json:"amount,omitempty"`
}

// Payment intent statuses reported by the processor
const (
	IntentStatusRequiresPaymentMethod = "requires_payment_method"
	IntentStatusRequiresSource        = "requires_source"
	IntentStatusRequiresConfirmation  = "requires_confirmation"
	IntentStatusRequiresAction        = "requires_action"
	IntentStatusRequiresSourceAction  = "requires_source_action"
	IntentStatusProcessing            = "processing"
	IntentStatusRequiresCapture       = "requires_capture"
	IntentStatusCanceled              = "canceled"
	IntentStatusSucceeded             = "succeeded"
)

// PaymentIntent is the processor's record of an in-progress charge attempt
type PaymentIntent struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	ClientSecret   string `json:"-"`
	LatestChargeID string `json:"latest_charge,omitempty"`
	// LastPaymentError is the decline recorded on the intent, if any
	LastPaymentError *RemoteError `json:"last_payment_error,omitempty"`
}

// Customer is the processor's customer record
type Customer struct {
	ID string `json:"id"`
	// DefaultSourceID is the card attached through the legacy sources API
	DefaultSourceID string `json:"default_source,omitempty"`
}

// PaymentMethod is the processor's tokenized card
type PaymentMethod struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer,omitempty"`
	Card       *Card  `json:"card,omitempty"`
}

// Card holds the non-sensitive card details of a payment method
type Card struct {
	Brand    string `json:"brand"`
	Last4    string `json:"last4"`
	ExpMonth int64  `json:"exp_month"`
	ExpYear  int64  `json:"exp_year"`
}

// Refund statuses reported by the processor
const (
	RefundStatusPending   = "pending"
	RefundStatusSucceeded = "succeeded"
	RefundStatusFailed    = "failed"
	RefundStatusCanceled  = "canceled"
)

// Refund is the processor's refund record
type Refund struct {
	ID            string `json:"id"`
	Charge        string `json:"charge"`
	Amount        int64  `json:"amount"`
	Status        string `json:"status"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// Balance is the account balance; only its retrieval matters
type Balance struct {
	Livemode bool `json:"livemode"`
}

// SetupIntent lets a browser tokenize a card for later use
type SetupIntent struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	ClientSecret string `json:"-"`
}

// RemoteErrorKind categorizes a failed remote call
type RemoteErrorKind string

const (
	RemoteErrorInvalidRequest RemoteErrorKind = "invalid_request"
	RemoteErrorCard           RemoteErrorKind = "card"
	RemoteErrorAuthentication RemoteErrorKind = "authentication"
	// RemoteErrorAPI covers processor-side, transport and unclassified failures
	RemoteErrorAPI RemoteErrorKind = "api"
)

// RemoteError is a failure reported by the processor. HasBody is false when
// the processor answered without a parseable error body.
type RemoteError struct {
	Kind       RemoteErrorKind `json:"-"`
	Type       string          `json:"type"`
	Code       string          `json:"code,omitempty"`
	Message    string          `json:"message,omitempty"`
	HTTPStatus int             `json:"-"`
	HasBody    bool            `json:"-"`
	Err        error           `json:"-"`
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("remote %s error (%s, http %d): %s", e.Kind, e.Code, e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("remote %s error (http %d): %s", e.Kind, e.HTTPStatus, e.Message)
}

// Unwrap returns the underlying transport error, if any
func (e *RemoteError) Unwrap() error {
	return e.Err
}
