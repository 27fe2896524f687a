package stripe

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kevin07696/stripe-gateway/internal/adapters/ports"
)

const testKey = "sk_test_abc123"

type recordedRequest struct {
	method string
	path   string
	auth   string
	form   url.Values
}

func newTestClient(t *testing.T, status int, body string) (ports.RemoteClient, *recordedRequest) {
	t.Helper()

	recorded := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		recorded.method = r.Method
		recorded.path = r.URL.Path
		recorded.auth = r.Header.Get("Authorization")
		recorded.form, _ = url.ParseQuery(string(raw))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	config := DefaultConfig()
	config.APIURL = server.URL
	config.Timeout = 5 * time.Second

	return NewClient(config, zap.NewNop()), recorded
}

func TestClient_CreatePaymentIntent(t *testing.T) {
	c, recorded := newTestClient(t, http.StatusOK, `{
		"id": "pi_123",
		"object": "payment_intent",
		"status": "succeeded",
		"amount": 1000,
		"currency": "usd",
		"client_secret": "pi_123_secret_456",
		"latest_charge": "ch_789"
	}`)

	intent, err := c.CreatePaymentIntent(context.Background(), testKey, &ports.CreatePaymentIntentRequest{
		Amount:        1000,
		Currency:      "usd",
		PaymentMethod: "pm_card_visa",
		Customer:      "cus_1",
		Description:   "Charge for invoices",
		Confirm:       true,
	})

	require.NoError(t, err)
	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, ports.IntentStatusSucceeded, intent.Status)
	assert.Equal(t, "ch_789", intent.LatestChargeID)
	assert.Equal(t, "pi_123_secret_456", intent.ClientSecret)
	assert.Nil(t, intent.LastPaymentError)

	assert.Equal(t, http.MethodPost, recorded.method)
	assert.Equal(t, "/v1/payment_intents", recorded.path)
	assert.Equal(t, "Bearer "+testKey, recorded.auth)
	assert.Equal(t, "1000", recorded.form.Get("amount"))
	assert.Equal(t, "usd", recorded.form.Get("currency"))
	assert.Equal(t, "pm_card_visa", recorded.form.Get("payment_method"))
	assert.Equal(t, "cus_1", recorded.form.Get("customer"))
	assert.Equal(t, "true", recorded.form.Get("confirm"))
	assert.Equal(t, "false", recorded.form.Get("off_session"))
	assert.Empty(t, recorded.form.Get("capture_method"))
}

func TestClient_CreatePaymentIntent_ManualCapture(t *testing.T) {
	c, recorded := newTestClient(t, http.StatusOK, `{"id":"pi_1","object":"payment_intent","status":"requires_capture"}`)

	intent, err := c.CreatePaymentIntent(context.Background(), testKey, &ports.CreatePaymentIntentRequest{
		Amount:        500,
		Currency:      "usd",
		PaymentMethod: "pm_1",
		CaptureMethod: "manual",
	})

	require.NoError(t, err)
	assert.Equal(t, ports.IntentStatusRequiresCapture, intent.Status)
	assert.Equal(t, "manual", recorded.form.Get("capture_method"))
	assert.Empty(t, recorded.form.Get("confirm"))
	assert.Empty(t, recorded.form.Get("customer"))
}

func TestClient_CapturePaymentIntent(t *testing.T) {
	c, recorded := newTestClient(t, http.StatusOK, `{"id":"pi_1","object":"payment_intent","status":"succeeded","latest_charge":"ch_1"}`)

	intent, err := c.CapturePaymentIntent(context.Background(), testKey, &ports.CapturePaymentIntentRequest{
		IntentID:        "pi_1",
		AmountToCapture: 750,
	})

	require.NoError(t, err)
	assert.Equal(t, "ch_1", intent.LatestChargeID)
	assert.Equal(t, "/v1/payment_intents/pi_1/capture", recorded.path)
	assert.Equal(t, "750", recorded.form.Get("amount_to_capture"))
}

func TestClient_RetrievePaymentMethod(t *testing.T) {
	c, recorded := newTestClient(t, http.StatusOK, `{
		"id": "pm_1",
		"object": "payment_method",
		"customer": "cus_9",
		"card": {"brand": "mastercard", "last4": "4444", "exp_month": 3, "exp_year": 2030}
	}`)

	pm, err := c.RetrievePaymentMethod(context.Background(), testKey, "pm_1")

	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, recorded.method)
	assert.Equal(t, "/v1/payment_methods/pm_1", recorded.path)
	assert.Equal(t, "cus_9", pm.CustomerID)
	require.NotNil(t, pm.Card)
	assert.Equal(t, "mastercard", pm.Card.Brand)
	assert.Equal(t, "4444", pm.Card.Last4)
	assert.Equal(t, int64(3), pm.Card.ExpMonth)
	assert.Equal(t, int64(2030), pm.Card.ExpYear)
}

func TestClient_CreateRefund(t *testing.T) {
	c, recorded := newTestClient(t, http.StatusOK, `{"id":"re_1","object":"refund","amount":250,"status":"succeeded","charge":"ch_1"}`)

	r, err := c.CreateRefund(context.Background(), testKey, &ports.CreateRefundRequest{Charge: "ch_1", Amount: 250})

	require.NoError(t, err)
	assert.Equal(t, "re_1", r.ID)
	assert.Equal(t, "ch_1", r.Charge)
	assert.Equal(t, ports.RefundStatusSucceeded, r.Status)
	assert.Equal(t, "ch_1", recorded.form.Get("charge"))
	assert.Equal(t, "250", recorded.form.Get("amount"))
}

func TestClient_CreateRefund_FullAmountOmitsAmount(t *testing.T) {
	c, recorded := newTestClient(t, http.StatusOK, `{"id":"re_1","object":"refund","status":"succeeded"}`)

	_, err := c.CreateRefund(context.Background(), testKey, &ports.CreateRefundRequest{Charge: "ch_1"})

	require.NoError(t, err)
	_, present := recorded.form["amount"]
	assert.False(t, present)
}

func TestClient_RetrieveCustomer_DefaultSource(t *testing.T) {
	c, _ := newTestClient(t, http.StatusOK, `{"id":"cus_1","object":"customer","default_source":"card_42"}`)

	cust, err := c.RetrieveCustomer(context.Background(), testKey, "cus_1")

	require.NoError(t, err)
	assert.Equal(t, "cus_1", cust.ID)
	assert.Equal(t, "card_42", cust.DefaultSourceID)
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantKind    ports.RemoteErrorKind
		wantCode    string
		wantHasBody bool
	}{
		{
			name:        "card declined",
			status:      http.StatusPaymentRequired,
			body:        `{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`,
			wantKind:    ports.RemoteErrorCard,
			wantCode:    "card_declined",
			wantHasBody: true,
		},
		{
			name:        "invalid request",
			status:      http.StatusBadRequest,
			body:        `{"error":{"type":"invalid_request_error","message":"No such payment_method: 'pm_x'"}}`,
			wantKind:    ports.RemoteErrorInvalidRequest,
			wantHasBody: true,
		},
		{
			name:        "authentication",
			status:      http.StatusUnauthorized,
			body:        `{"error":{"type":"invalid_request_error","message":"Invalid API Key provided: sk_test_****c123"}}`,
			wantKind:    ports.RemoteErrorAuthentication,
			wantHasBody: true,
		},
		{
			name:        "api error",
			status:      http.StatusInternalServerError,
			body:        `{"error":{"type":"api_error","message":"Something went wrong"}}`,
			wantKind:    ports.RemoteErrorAPI,
			wantHasBody: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, tt.status, tt.body)

			_, err := c.RetrievePaymentIntent(context.Background(), testKey, "pi_1")

			require.Error(t, err)
			remoteErr, ok := err.(*ports.RemoteError)
			require.True(t, ok, "expected *ports.RemoteError, got %T", err)
			assert.Equal(t, tt.wantKind, remoteErr.Kind)
			assert.Equal(t, tt.wantCode, remoteErr.Code)
			assert.Equal(t, tt.status, remoteErr.HTTPStatus)
			assert.Equal(t, tt.wantHasBody, remoteErr.HasBody)
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	config := DefaultConfig()
	config.APIURL = serverURL
	config.Timeout = time.Second
	c := NewClient(config, zap.NewNop())

	_, err := c.RetrieveBalance(context.Background(), testKey)

	require.Error(t, err)
	remoteErr, ok := err.(*ports.RemoteError)
	require.True(t, ok)
	assert.Equal(t, ports.RemoteErrorAPI, remoteErr.Kind)
	assert.False(t, remoteErr.HasBody)
}

func TestClient_CanceledContext(t *testing.T) {
	c, recorded := newTestClient(t, http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.RetrieveBalance(ctx, testKey)

	require.Error(t, err)
	assert.Empty(t, recorded.path, "no request should reach the processor")
}

func TestClient_CircuitOpensOnOutagesOnly(t *testing.T) {
	var calls atomic.Int32
	status := atomic.Int32{}
	status.Store(http.StatusPaymentRequired)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(int(status.Load()))
		if status.Load() == http.StatusPaymentRequired {
			_, _ = w.Write([]byte(`{"error":{"type":"card_error","code":"card_declined","message":"declined"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"error":{"type":"api_error","message":"down"}}`))
	}))
	t.Cleanup(server.Close)

	config := DefaultConfig()
	config.APIURL = server.URL
	config.CircuitBreaker.MaxFailures = 2
	config.CircuitBreaker.Timeout = time.Hour
	c := NewClient(config, zap.NewNop())
	ctx := context.Background()

	// Declines are answers, the circuit stays closed
	for i := 0; i < 3; i++ {
		_, err := c.RetrievePaymentIntent(ctx, testKey, "pi_1")
		require.Error(t, err)
	}
	assert.Equal(t, int32(3), calls.Load())

	// Outages trip the breaker
	status.Store(http.StatusServiceUnavailable)
	for i := 0; i < 2; i++ {
		_, _ = c.RetrievePaymentIntent(ctx, testKey, "pi_1")
	}
	assert.Equal(t, int32(5), calls.Load())

	_, err := c.RetrievePaymentIntent(ctx, testKey, "pi_1")
	require.Error(t, err)
	remoteErr, ok := err.(*ports.RemoteError)
	require.True(t, ok)
	assert.Equal(t, ports.RemoteErrorAPI, remoteErr.Kind)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(5), calls.Load(), "open circuit must not reach the processor")
}
