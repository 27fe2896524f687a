package gateway

import (
	"context"

	adapterports "github.com/kevin07696/stripe-gateway/internal/adapters/ports"
	"github.com/kevin07696/stripe-gateway/internal/domain"
)

// PrepareCardForm declares a card setup so the browser can tokenize a card
// for later off-session use
func (s *Service) PrepareCardForm(ctx context.Context, acct Account) (*domain.CardForm, error) {
	si, gwErr := execute(ctx, s, acct, OpCreateSetupIntent, map[string]string{},
		func(ctx context.Context, key string) (*adapterports.SetupIntent, error) {
			return s.remote.CreateSetupIntent(ctx, key)
		})
	if gwErr != nil {
		return nil, gwErr
	}

	return &domain.CardForm{
		PublishableKey: acct.Config.PublishableKey,
		SetupIntentID:  si.ID,
		ClientSecret:   si.ClientSecret,
	}, nil
}

// PaymentConfirmation returns what the browser needs to complete customer
// action (such as 3-D Secure) on a pending intent
func (s *Service) PaymentConfirmation(ctx context.Context, acct Account, referenceID string) (*domain.PaymentConfirmation, error) {
	if referenceID == "" {
		return nil, domain.NewInvalidInputError("reference_id", "A payment intent reference is required.")
	}

	intent, gwErr := execute(ctx, s, acct, OpRetrievePaymentIntent, map[string]string{"id": referenceID},
		func(ctx context.Context, key string) (*adapterports.PaymentIntent, error) {
			return s.remote.RetrievePaymentIntent(ctx, key, referenceID)
		})
	if gwErr != nil {
		return nil, gwErr
	}

	return &domain.PaymentConfirmation{
		PublishableKey: acct.Config.PublishableKey,
		ReferenceID:    intent.ID,
		Status:         intent.Status,
		ClientSecret:   intent.ClientSecret,
	}, nil
}
