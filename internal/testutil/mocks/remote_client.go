// Package mocks provides shared testify mocks for the gateway's ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kevin07696/stripe-gateway/internal/adapters/ports"
)

// MockRemoteClient is a testify mock of ports.RemoteClient
type MockRemoteClient struct {
	mock.Mock
}

func (m *MockRemoteClient) CreatePaymentIntent(ctx context.Context, secretKey string, req *ports.CreatePaymentIntentRequest) (*ports.PaymentIntent, error) {
	args := m.Called(ctx, secretKey, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.PaymentIntent), args.Error(1)
}

func (m *MockRemoteClient) RetrievePaymentIntent(ctx context.Context, secretKey, intentID string) (*ports.PaymentIntent, error) {
	args := m.Called(ctx, secretKey, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.PaymentIntent), args.Error(1)
}

func (m *MockRemoteClient) CancelPaymentIntent(ctx context.Context, secretKey, intentID string) (*ports.PaymentIntent, error) {
	args := m.Called(ctx, secretKey, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.PaymentIntent), args.Error(1)
}

func (m *MockRemoteClient) CapturePaymentIntent(ctx context.Context, secretKey string, req *ports.CapturePaymentIntentRequest) (*ports.PaymentIntent, error) {
	args := m.Called(ctx, secretKey, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.PaymentIntent), args.Error(1)
}

func (m *MockRemoteClient) CreateCustomer(ctx context.Context, secretKey string, req *ports.CreateCustomerRequest) (*ports.Customer, error) {
	args := m.Called(ctx, secretKey, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.Customer), args.Error(1)
}

func (m *MockRemoteClient) RetrieveCustomer(ctx context.Context, secretKey, customerID string) (*ports.Customer, error) {
	args := m.Called(ctx, secretKey, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.Customer), args.Error(1)
}

func (m *MockRemoteClient) RetrievePaymentMethod(ctx context.Context, secretKey, paymentMethodID string) (*ports.PaymentMethod, error) {
	args := m.Called(ctx, secretKey, paymentMethodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.PaymentMethod), args.Error(1)
}

func (m *MockRemoteClient) AttachPaymentMethod(ctx context.Context, secretKey string, req *ports.AttachPaymentMethodRequest) (*ports.PaymentMethod, error) {
	args := m.Called(ctx, secretKey, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.PaymentMethod), args.Error(1)
}

func (m *MockRemoteClient) DetachPaymentMethod(ctx context.Context, secretKey, paymentMethodID string) (*ports.PaymentMethod, error) {
	args := m.Called(ctx, secretKey, paymentMethodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.PaymentMethod), args.Error(1)
}

func (m *MockRemoteClient) CreateRefund(ctx context.Context, secretKey string, req *ports.CreateRefundRequest) (*ports.Refund, error) {
	args := m.Called(ctx, secretKey, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.Refund), args.Error(1)
}

func (m *MockRemoteClient) RetrieveBalance(ctx context.Context, secretKey string) (*ports.Balance, error) {
	args := m.Called(ctx, secretKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.Balance), args.Error(1)
}

func (m *MockRemoteClient) CreateSetupIntent(ctx context.Context, secretKey string) (*ports.SetupIntent, error) {
	args := m.Called(ctx, secretKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.SetupIntent), args.Error(1)
}
