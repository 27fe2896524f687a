package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	adapterports "github.com/kevin07696/stripe-gateway/internal/adapters/ports"
	"github.com/kevin07696/stripe-gateway/internal/domain"
	svc "github.com/kevin07696/stripe-gateway/internal/services/gateway"
	"github.com/kevin07696/stripe-gateway/internal/services/ports"
	"github.com/kevin07696/stripe-gateway/internal/testutil/fixtures"
	tmocks "github.com/kevin07696/stripe-gateway/internal/testutil/mocks"
	"github.com/kevin07696/stripe-gateway/test/mocks"
)

var _ ports.GatewayService = (*svc.Service)(nil)

func init() {
	gin.SetMode(gin.TestMode)
}

type handlerHarness struct {
	router *gin.Engine
	remote *tmocks.MockRemoteClient
	audit  *mocks.MockAuditLog
	legacy *tmocks.MockLegacyAccountStore
}

func newHandlerHarness(t *testing.T) *handlerHarness {
	h := &handlerHarness{
		remote: new(tmocks.MockRemoteClient),
		audit:  mocks.NewMockAuditLog(),
		legacy: new(tmocks.MockLegacyAccountStore),
	}
	service := svc.NewService(h.remote, h.audit, nil, h.legacy, mocks.NewMockLogger(), svc.DefaultConfig())
	account := svc.Account{
		GatewayID: "gw_1",
		Config: domain.GatewayConfig{
			PublishableKey: fixtures.TestPublishableKey,
			SecretKey:      fixtures.TestSecretKey,
		},
		Currency: "usd",
	}

	h.router = gin.New()
	NewHandler(service, account, zaptest.NewLogger(t)).RegisterRoutes(h.router.Group("/v1"))
	return h
}

func (h *handlerHarness) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decodeTransaction(t *testing.T, w *httptest.ResponseRecorder) TransactionResponse {
	t.Helper()
	var resp TransactionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandler_ProcessCC_Approved(t *testing.T) {
	h := newHandlerHarness(t)
	h.remote.On("CreatePaymentIntent", mock.Anything, fixtures.TestSecretKey,
		mock.MatchedBy(func(req *adapterports.CreatePaymentIntentRequest) bool {
			return req.Amount == 1999 && req.Currency == "usd" && req.PaymentMethod == "pm_card_visa"
		})).
		Return(fixtures.NewPaymentIntent().Build(), nil)

	w := h.do(t, http.MethodPost, "/v1/cards/charge", gin.H{
		"reference_id": "pm_card_visa",
		"amount":       "19.99",
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeTransaction(t, w)
	assert.Equal(t, domain.TransactionStatusApproved, resp.Result.Status)
	assert.Equal(t, "pi_test_123", resp.Result.ReferenceID)
	assert.Equal(t, "ch_test_123", resp.Result.TransactionID)
	assert.Nil(t, resp.Error)
	h.remote.AssertExpectations(t)
}

func TestHandler_ProcessStoredCC_Declined(t *testing.T) {
	h := newHandlerHarness(t)
	h.remote.On("CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fixtures.CardDeclinedError())

	w := h.do(t, http.MethodPost, "/v1/stored-cards/charge", gin.H{
		"reference_id":        "pm_1",
		"client_reference_id": "cus_1",
		"amount":              "5.00",
	})

	require.Equal(t, http.StatusPaymentRequired, w.Code)
	resp := decodeTransaction(t, w)
	assert.Equal(t, domain.TransactionStatusDeclined, resp.Result.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, domain.ErrorCodeRemoteCard, resp.Error.Code)
	assert.Equal(t, "Your card was declined.", resp.Error.Message)
}

func TestHandler_AuthenticationFailureHidesKey(t *testing.T) {
	h := newHandlerHarness(t)
	h.remote.On("CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fixtures.AuthenticationError())

	w := h.do(t, http.MethodPost, "/v1/stored-cards/charge", gin.H{
		"reference_id": "pm_1",
		"amount":       "5.00",
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), fixtures.TestSecretKey)
	assert.Contains(t, w.Body.String(), "The gateway could not authenticate.")
}

func TestHandler_ChargeRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		body  any
		field string
	}{
		{
			name:  "missing reference",
			path:  "/v1/cards/charge",
			body:  gin.H{"amount": "1.00"},
			field: "body",
		},
		{
			name:  "zero amount",
			path:  "/v1/cards/charge",
			body:  gin.H{"reference_id": "pm_1", "amount": "0"},
			field: "amount",
		},
		{
			name:  "unsupported currency",
			path:  "/v1/stored-cards/charge",
			body:  gin.H{"reference_id": "pm_1", "amount": "1.00", "currency": "xyz"},
			field: "currency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerHarness(t)

			w := h.do(t, http.MethodPost, tt.path, tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, domain.ErrorCodeInvalidInput, resp.Error.Code)
			assert.Contains(t, resp.Error.Fields, tt.field)
			h.remote.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_OneOffFollowUpsAreUnsupported(t *testing.T) {
	for _, path := range []string{"/v1/cards/authorize", "/v1/cards/capture", "/v1/cards/void", "/v1/cards/refund"} {
		t.Run(path, func(t *testing.T) {
			h := newHandlerHarness(t)

			w := h.do(t, http.MethodPost, path, gin.H{
				"reference_id":   "pi_1",
				"transaction_id": "ch_1",
				"amount":         "1.00",
			})

			assert.Equal(t, http.StatusNotImplemented, w.Code)
			resp := decodeTransaction(t, w)
			assert.Equal(t, domain.TransactionStatusError, resp.Result.Status)
			assert.Equal(t, domain.ErrorCodeUnsupportedOperation, resp.Error.Code)
		})
	}
}

func TestHandler_RefundStoredCC_Partial(t *testing.T) {
	h := newHandlerHarness(t)
	h.remote.On("CreateRefund", mock.Anything, fixtures.TestSecretKey,
		mock.MatchedBy(func(req *adapterports.CreateRefundRequest) bool {
			return req.Charge == "ch_1" && req.Amount == 500
		})).
		Return(&adapterports.Refund{ID: "re_1", Status: adapterports.RefundStatusSucceeded}, nil)

	w := h.do(t, http.MethodPost, "/v1/stored-cards/refund", gin.H{
		"reference_id":   "pi_1",
		"transaction_id": "ch_1",
		"amount":         "5.00",
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeTransaction(t, w)
	assert.Equal(t, domain.TransactionStatusRefunded, resp.Result.Status)
	assert.Equal(t, "ch_1", resp.Result.TransactionID)
	h.remote.AssertExpectations(t)
}

func TestHandler_VoidStoredCC_CancelsIntent(t *testing.T) {
	h := newHandlerHarness(t)
	h.remote.On("CancelPaymentIntent", mock.Anything, fixtures.TestSecretKey, "pi_1").
		Return(fixtures.NewPaymentIntent().WithID("pi_1").WithStatus(adapterports.IntentStatusCanceled).Build(), nil)

	w := h.do(t, http.MethodPost, "/v1/stored-cards/void", gin.H{"reference_id": "pi_1"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.TransactionStatusVoid, decodeTransaction(t, w).Result.Status)
}

func TestHandler_StoreCC(t *testing.T) {
	h := newHandlerHarness(t)
	h.remote.On("RetrievePaymentMethod", mock.Anything, fixtures.TestSecretKey, "pm_1").
		Return(fixtures.NewCardPaymentMethod("pm_1", "visa", "4242", 4, 2030), nil)
	h.remote.On("AttachPaymentMethod", mock.Anything, fixtures.TestSecretKey, mock.Anything).
		Return(fixtures.NewCardPaymentMethod("pm_1", "visa", "4242", 4, 2030), nil)

	w := h.do(t, http.MethodPost, "/v1/stored-cards", gin.H{
		"reference_id":        "pm_1",
		"client_reference_id": "cus_1",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var stored domain.StoredCard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stored))
	assert.Equal(t, "cus_1", stored.CustomerReference)
	assert.Equal(t, "4242", stored.Last4)
	assert.Equal(t, "203004", stored.Expiration)
	assert.Equal(t, domain.CardBrandVisa, stored.Brand)
}

func TestHandler_RemoveCC_NotFound(t *testing.T) {
	h := newHandlerHarness(t)
	h.remote.On("RetrievePaymentMethod", mock.Anything, mock.Anything, "pm_missing").
		Return(nil, fixtures.InvalidRequestError("resource_missing", "No such PaymentMethod: 'pm_missing'"))

	w := h.do(t, http.MethodDelete, "/v1/stored-cards/pm_missing?client_reference_id=cus_1", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	h.remote.AssertNotCalled(t, "DetachPaymentMethod", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_PrepareCardForm(t *testing.T) {
	h := newHandlerHarness(t)
	h.remote.On("CreateSetupIntent", mock.Anything, fixtures.TestSecretKey).
		Return(&adapterports.SetupIntent{ID: "seti_1", ClientSecret: "seti_1_secret"}, nil)

	w := h.do(t, http.MethodPost, "/v1/card-forms", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var form domain.CardForm
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &form))
	assert.Equal(t, fixtures.TestPublishableKey, form.PublishableKey)
	assert.Equal(t, "seti_1_secret", form.ClientSecret)
	assert.NotContains(t, w.Body.String(), fixtures.TestSecretKey)
}

func TestHandler_ValidateSettings_MissingKeys(t *testing.T) {
	h := newHandlerHarness(t)

	w := h.do(t, http.MethodPost, "/v1/settings/validate?check_connection=false", gin.H{
		"meta": gin.H{"publishable_key": fixtures.TestPublishableKey},
	})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.ErrorCodeConfiguration, resp.Error.Code)
	h.remote.AssertNotCalled(t, "RetrieveBalance", mock.Anything, mock.Anything)
}

func TestHandler_EditSettings_StripsMigrationFlag(t *testing.T) {
	h := newHandlerHarness(t)
	h.remote.On("RetrieveBalance", mock.Anything, fixtures.TestSecretKey).
		Return(&adapterports.Balance{}, nil)
	h.legacy.On("ListActive", mock.Anything).Return(nil, nil)

	w := h.do(t, http.MethodPut, "/v1/settings", gin.H{
		"meta": gin.H{
			"publishable_key":  fixtures.TestPublishableKey,
			"secret_key":       fixtures.TestSecretKey,
			"migrate_accounts": "1",
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var update svc.SettingsUpdate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &update))
	assert.NotContains(t, update.Meta, "migrate_accounts")
	require.NotNil(t, update.Migration)
	assert.Zero(t, update.Migration.Migrated)
}

func TestHandler_ListCurrencies(t *testing.T) {
	h := newHandlerHarness(t)

	w := h.do(t, http.MethodGet, "/v1/currencies", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "USD")
}

func TestErrorBody_NonGatewayErrors(t *testing.T) {
	status, body := errorBody(context.DeadlineExceeded)
	assert.Equal(t, http.StatusGatewayTimeout, status)
	assert.Equal(t, domain.ErrorCodeRemoteGeneral, body.Code)

	status, body = errorBody(assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", body.Message)
}
