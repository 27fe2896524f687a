package stripe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	stripeapi "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/balance"
	"github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/paymentmethod"
	"github.com/stripe/stripe-go/v82/refund"
	"github.com/stripe/stripe-go/v82/setupintent"
	"go.uber.org/zap"

	"github.com/kevin07696/stripe-gateway/internal/adapters/ports"
	httpclient "github.com/kevin07696/stripe-gateway/pkg/http"
)

// Config contains configuration for the processor API client
type Config struct {
	// APIURL overrides the processor endpoint; empty uses the public API
	APIURL string

	// HTTP client timeout
	Timeout time.Duration

	CircuitBreaker CircuitBreakerConfig
}

// DefaultConfig returns default configuration for the processor API client
func DefaultConfig() *Config {
	return &Config{
		APIURL:         stripeapi.APIURL,
		Timeout:        80 * time.Second,
		CircuitBreaker: DefaultCircuitBreakerConfig(),
	}
}

// client implements the RemoteClient port on top of stripe-go.
// The global stripe.Key is never touched; every request carries its own key.
type client struct {
	backend        stripeapi.Backend
	logger         *zap.Logger
	circuitBreaker *CircuitBreaker
}

// NewClient creates a processor API client
func NewClient(config *Config, logger *zap.Logger) ports.RemoteClient {
	backendConfig := &stripeapi.BackendConfig{
		HTTPClient:        httpclient.NewHTTPClient(httpclient.ProcessorClientConfig(), config.Timeout),
		MaxNetworkRetries: stripeapi.Int64(0),
		LeveledLogger:     logger.Named("stripe-go").Sugar(),
	}
	if config.APIURL != "" {
		backendConfig.URL = stripeapi.String(config.APIURL)
	}

	breakerConfig := config.CircuitBreaker
	if breakerConfig.IsFailure == nil {
		breakerConfig.IsFailure = isOutage
	}
	previous := breakerConfig.OnStateChange
	breakerConfig.OnStateChange = func(from, to CircuitState) {
		logger.Warn("Processor circuit breaker changed state",
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
		if previous != nil {
			previous(from, to)
		}
	}

	return &client{
		backend:        stripeapi.GetBackendWithConfig(stripeapi.APIBackend, backendConfig),
		logger:         logger,
		circuitBreaker: NewCircuitBreaker(breakerConfig),
	}
}

// call runs fn through the circuit breaker and normalizes any failure into a *ports.RemoteError
func (c *client) call(ctx context.Context, operation string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return &ports.RemoteError{Kind: ports.RemoteErrorAPI, Message: err.Error(), Err: err}
	}

	start := time.Now()
	err := c.circuitBreaker.Call(fn)
	if err == nil {
		c.logger.Debug("Processor call succeeded",
			zap.String("operation", operation),
			zap.Duration("duration", time.Since(start)),
		)
		return nil
	}

	remoteErr := toRemoteError(err)
	c.logger.Debug("Processor call failed",
		zap.String("operation", operation),
		zap.String("kind", string(remoteErr.Kind)),
		zap.Int("http_status", remoteErr.HTTPStatus),
		zap.Duration("duration", time.Since(start)),
	)
	return remoteErr
}

func (c *client) CreatePaymentIntent(ctx context.Context, secretKey string, req *ports.CreatePaymentIntentRequest) (*ports.PaymentIntent, error) {
	params := &stripeapi.PaymentIntentParams{
		Amount:        stripeapi.Int64(req.Amount),
		Currency:      stripeapi.String(req.Currency),
		PaymentMethod: stripeapi.String(req.PaymentMethod),
	}
	if req.Customer != "" {
		params.Customer = stripeapi.String(req.Customer)
	}
	if req.Description != "" {
		params.Description = stripeapi.String(req.Description)
	}
	if req.Confirm {
		params.Confirm = stripeapi.Bool(true)
		params.OffSession = stripeapi.Bool(req.OffSession)
	}
	if req.CaptureMethod != "" {
		params.CaptureMethod = stripeapi.String(req.CaptureMethod)
	}
	params.Context = ctx

	var intent *stripeapi.PaymentIntent
	err := c.call(ctx, "payment_intents.create", func() error {
		var err error
		intent, err = c.paymentIntents(secretKey).New(params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toPaymentIntent(intent), nil
}

func (c *client) RetrievePaymentIntent(ctx context.Context, secretKey, intentID string) (*ports.PaymentIntent, error) {
	params := &stripeapi.PaymentIntentParams{}
	params.Context = ctx

	var intent *stripeapi.PaymentIntent
	err := c.call(ctx, "payment_intents.retrieve", func() error {
		var err error
		intent, err = c.paymentIntents(secretKey).Get(intentID, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toPaymentIntent(intent), nil
}

func (c *client) CancelPaymentIntent(ctx context.Context, secretKey, intentID string) (*ports.PaymentIntent, error) {
	params := &stripeapi.PaymentIntentCancelParams{}
	params.Context = ctx

	var intent *stripeapi.PaymentIntent
	err := c.call(ctx, "payment_intents.cancel", func() error {
		var err error
		intent, err = c.paymentIntents(secretKey).Cancel(intentID, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toPaymentIntent(intent), nil
}

func (c *client) CapturePaymentIntent(ctx context.Context, secretKey string, req *ports.CapturePaymentIntentRequest) (*ports.PaymentIntent, error) {
	params := &stripeapi.PaymentIntentCaptureParams{}
	if req.AmountToCapture > 0 {
		params.AmountToCapture = stripeapi.Int64(req.AmountToCapture)
	}
	params.Context = ctx

	var intent *stripeapi.PaymentIntent
	err := c.call(ctx, "payment_intents.capture", func() error {
		var err error
		intent, err = c.paymentIntents(secretKey).Capture(req.IntentID, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toPaymentIntent(intent), nil
}

func (c *client) CreateCustomer(ctx context.Context, secretKey string, req *ports.CreateCustomerRequest) (*ports.Customer, error) {
	params := &stripeapi.CustomerParams{
		PaymentMethod: stripeapi.String(req.PaymentMethod),
	}
	params.Context = ctx

	var cust *stripeapi.Customer
	err := c.call(ctx, "customers.create", func() error {
		var err error
		cust, err = c.customers(secretKey).New(params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toCustomer(cust), nil
}

func (c *client) RetrieveCustomer(ctx context.Context, secretKey, customerID string) (*ports.Customer, error) {
	params := &stripeapi.CustomerParams{}
	params.Context = ctx

	var cust *stripeapi.Customer
	err := c.call(ctx, "customers.retrieve", func() error {
		var err error
		cust, err = c.customers(secretKey).Get(customerID, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toCustomer(cust), nil
}

func (c *client) RetrievePaymentMethod(ctx context.Context, secretKey, paymentMethodID string) (*ports.PaymentMethod, error) {
	params := &stripeapi.PaymentMethodParams{}
	params.Context = ctx

	var pm *stripeapi.PaymentMethod
	err := c.call(ctx, "payment_methods.retrieve", func() error {
		var err error
		pm, err = c.paymentMethods(secretKey).Get(paymentMethodID, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toPaymentMethod(pm), nil
}

func (c *client) AttachPaymentMethod(ctx context.Context, secretKey string, req *ports.AttachPaymentMethodRequest) (*ports.PaymentMethod, error) {
	params := &stripeapi.PaymentMethodAttachParams{
		Customer: stripeapi.String(req.Customer),
	}
	params.Context = ctx

	var pm *stripeapi.PaymentMethod
	err := c.call(ctx, "payment_methods.attach", func() error {
		var err error
		pm, err = c.paymentMethods(secretKey).Attach(req.PaymentMethodID, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toPaymentMethod(pm), nil
}

func (c *client) DetachPaymentMethod(ctx context.Context, secretKey, paymentMethodID string) (*ports.PaymentMethod, error) {
	params := &stripeapi.PaymentMethodDetachParams{}
	params.Context = ctx

	var pm *stripeapi.PaymentMethod
	err := c.call(ctx, "payment_methods.detach", func() error {
		var err error
		pm, err = c.paymentMethods(secretKey).Detach(paymentMethodID, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toPaymentMethod(pm), nil
}

func (c *client) CreateRefund(ctx context.Context, secretKey string, req *ports.CreateRefundRequest) (*ports.Refund, error) {
	params := &stripeapi.RefundParams{
		Charge: stripeapi.String(req.Charge),
	}
	if req.Amount > 0 {
		params.Amount = stripeapi.Int64(req.Amount)
	}
	params.Context = ctx

	var r *stripeapi.Refund
	err := c.call(ctx, "refunds.create", func() error {
		var err error
		r, err = (&refund.Client{B: c.backend, Key: secretKey}).New(params)
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &ports.Refund{
		ID:            r.ID,
		Amount:        r.Amount,
		Status:        string(r.Status),
		FailureReason: string(r.FailureReason),
	}
	if r.Charge != nil {
		result.Charge = r.Charge.ID
	}
	return result, nil
}

func (c *client) RetrieveBalance(ctx context.Context, secretKey string) (*ports.Balance, error) {
	params := &stripeapi.BalanceParams{}
	params.Context = ctx

	var b *stripeapi.Balance
	err := c.call(ctx, "balance.retrieve", func() error {
		var err error
		b, err = (&balance.Client{B: c.backend, Key: secretKey}).Get(params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &ports.Balance{Livemode: b.Livemode}, nil
}

func (c *client) CreateSetupIntent(ctx context.Context, secretKey string) (*ports.SetupIntent, error) {
	params := &stripeapi.SetupIntentParams{}
	params.Context = ctx

	var si *stripeapi.SetupIntent
	err := c.call(ctx, "setup_intents.create", func() error {
		var err error
		si, err = (&setupintent.Client{B: c.backend, Key: secretKey}).New(params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &ports.SetupIntent{
		ID:           si.ID,
		Status:       string(si.Status),
		ClientSecret: si.ClientSecret,
	}, nil
}

func (c *client) paymentIntents(secretKey string) *paymentintent.Client {
	return &paymentintent.Client{B: c.backend, Key: secretKey}
}

func (c *client) customers(secretKey string) *customer.Client {
	return &customer.Client{B: c.backend, Key: secretKey}
}

func (c *client) paymentMethods(secretKey string) *paymentmethod.Client {
	return &paymentmethod.Client{B: c.backend, Key: secretKey}
}

func toPaymentIntent(pi *stripeapi.PaymentIntent) *ports.PaymentIntent {
	result := &ports.PaymentIntent{
		ID:           pi.ID,
		Status:       string(pi.Status),
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		ClientSecret: pi.ClientSecret,
	}
	if pi.LatestCharge != nil {
		result.LatestChargeID = pi.LatestCharge.ID
	}
	if pi.LastPaymentError != nil {
		result.LastPaymentError = fromStripeError(pi.LastPaymentError)
	}
	return result
}

func toCustomer(cust *stripeapi.Customer) *ports.Customer {
	result := &ports.Customer{ID: cust.ID}
	if cust.DefaultSource != nil {
		result.DefaultSourceID = cust.DefaultSource.ID
	}
	return result
}

func toPaymentMethod(pm *stripeapi.PaymentMethod) *ports.PaymentMethod {
	result := &ports.PaymentMethod{ID: pm.ID}
	if pm.Customer != nil {
		result.CustomerID = pm.Customer.ID
	}
	if pm.Card != nil {
		result.Card = &ports.Card{
			Brand:    string(pm.Card.Brand),
			Last4:    pm.Card.Last4,
			ExpMonth: pm.Card.ExpMonth,
			ExpYear:  pm.Card.ExpYear,
		}
	}
	return result
}

// toRemoteError classifies any failure from stripe-go or the circuit breaker
func toRemoteError(err error) *ports.RemoteError {
	var remoteErr *ports.RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr
	}

	var stripeErr *stripeapi.Error
	if errors.As(err, &stripeErr) {
		return fromStripeError(stripeErr)
	}

	if errors.Is(err, ErrCircuitOpen) || errors.Is(err, ErrTooManyRequests) {
		return &ports.RemoteError{
			Kind:    ports.RemoteErrorAPI,
			Message: fmt.Sprintf("processor unavailable: %v", err),
			Err:     err,
		}
	}

	return &ports.RemoteError{
		Kind:    ports.RemoteErrorAPI,
		Message: err.Error(),
		Err:     err,
	}
}

func fromStripeError(stripeErr *stripeapi.Error) *ports.RemoteError {
	remoteErr := &ports.RemoteError{
		Type:       string(stripeErr.Type),
		Code:       string(stripeErr.Code),
		Message:    stripeErr.Msg,
		HTTPStatus: stripeErr.HTTPStatusCode,
		HasBody:    stripeErr.Type != "",
		Err:        stripeErr,
	}

	switch {
	case stripeErr.HTTPStatusCode == http.StatusUnauthorized:
		remoteErr.Kind = ports.RemoteErrorAuthentication
	case stripeErr.Type == stripeapi.ErrorTypeCard:
		remoteErr.Kind = ports.RemoteErrorCard
	case stripeErr.Type == stripeapi.ErrorTypeInvalidRequest:
		remoteErr.Kind = ports.RemoteErrorInvalidRequest
	default:
		remoteErr.Kind = ports.RemoteErrorAPI
	}
	return remoteErr
}

// isOutage reports whether err means the processor could not answer
func isOutage(err error) bool {
	var remoteErr *ports.RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.Kind == ports.RemoteErrorAPI
	}

	var stripeErr *stripeapi.Error
	if errors.As(err, &stripeErr) {
		return stripeErr.HTTPStatusCode >= http.StatusInternalServerError ||
			stripeErr.HTTPStatusCode == http.StatusTooManyRequests ||
			stripeErr.Type == stripeapi.ErrorTypeAPI
	}
	return true
}
