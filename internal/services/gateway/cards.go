package gateway

import (
	"context"
	"fmt"

	adapterports "github.com/kevin07696/stripe-gateway/internal/adapters/ports"
	"github.com/kevin07696/stripe-gateway/internal/domain"
	"github.com/kevin07696/stripe-gateway/internal/domain/ports"
	"github.com/kevin07696/stripe-gateway/pkg/observability"
)

// StoreCC binds a tokenized payment method to a customer at the processor.
// The card is attached to customerRef when given; if that is not possible a
// new customer is created around the payment method instead.
func (s *Service) StoreCC(ctx context.Context, acct Account, paymentMethodRef, customerRef string) (*domain.StoredCard, error) {
	stored, err := s.storeCard(ctx, acct, paymentMethodRef, customerRef)
	observability.RecordStoredCard("store", err == nil)
	return stored, err
}

func (s *Service) storeCard(ctx context.Context, acct Account, paymentMethodRef, customerRef string) (*domain.StoredCard, error) {
	if paymentMethodRef == "" {
		return nil, domain.NewInvalidInputError("reference_id", "A payment method reference is required.")
	}

	pm, gwErr := execute(ctx, s, acct, OpRetrievePaymentMethod, map[string]string{"id": paymentMethodRef},
		func(ctx context.Context, key string) (*adapterports.PaymentMethod, error) {
			return s.remote.RetrievePaymentMethod(ctx, key, paymentMethodRef)
		})
	if gwErr != nil {
		return nil, gwErr
	}

	attached := false
	if customerRef != "" {
		req := &adapterports.AttachPaymentMethodRequest{PaymentMethodID: paymentMethodRef, Customer: customerRef}
		_, attachErr := execute(ctx, s, acct, OpAttachPaymentMethod, req,
			func(ctx context.Context, key string) (*adapterports.PaymentMethod, error) {
				return s.remote.AttachPaymentMethod(ctx, key, req)
			})
		if attachErr != nil {
			// Falls through to a new customer; the attach failure is not surfaced
			s.logger.Warn("Attach to existing customer failed, creating a new customer",
				ports.String("gateway_id", acct.GatewayID),
				ports.String("code", string(attachErr.Code)),
			)
		}
		attached = attachErr == nil
	}

	if !attached {
		req := &adapterports.CreateCustomerRequest{PaymentMethod: paymentMethodRef}
		cust, gwErr := execute(ctx, s, acct, OpCreateCustomer, req,
			func(ctx context.Context, key string) (*adapterports.Customer, error) {
				return s.remote.CreateCustomer(ctx, key, req)
			})
		if gwErr != nil {
			return nil, gwErr
		}
		customerRef = cust.ID
	}

	stored := &domain.StoredCard{
		CustomerReference:      customerRef,
		PaymentMethodReference: paymentMethodRef,
		Brand:                  domain.CardBrandOther,
	}
	if pm.Card != nil {
		stored.Last4 = pm.Card.Last4
		stored.Expiration = fmt.Sprintf("%04d%02d", pm.Card.ExpYear, pm.Card.ExpMonth)
		stored.Brand = MapCardBrand(pm.Card.Brand)
	}

	s.logger.Info("Card stored",
		ports.String("gateway_id", acct.GatewayID),
		ports.String("customer_reference", stored.CustomerReference),
		ports.String("brand", string(stored.Brand)),
		ports.Bool("attached_existing", attached),
	)
	return stored, nil
}

// UpdateCC replaces a stored card: the new card is stored first, then the old
// one is removed. A failed removal does not undo the new card.
func (s *Service) UpdateCC(ctx context.Context, acct Account, paymentMethodRef, customerRef, oldPaymentMethodRef string) (*domain.StoredCard, error) {
	stored, err := s.storeCard(ctx, acct, paymentMethodRef, customerRef)
	if err != nil {
		observability.RecordStoredCard("update", false)
		return nil, err
	}

	if oldPaymentMethodRef != "" && oldPaymentMethodRef != paymentMethodRef {
		if _, err := s.removeCard(ctx, acct, customerRef, oldPaymentMethodRef); err != nil {
			s.logger.Warn("Old card could not be removed after update",
				ports.String("gateway_id", acct.GatewayID),
				ports.String("old_reference_id", oldPaymentMethodRef),
				ports.String("code", string(domain.GetErrorCode(err))),
			)
		}
	}

	observability.RecordStoredCard("update", true)
	return stored, nil
}

// RemoveCC detaches a stored card from its customer
func (s *Service) RemoveCC(ctx context.Context, acct Account, customerRef, paymentMethodRef string) (*domain.RemovedCard, error) {
	removed, err := s.removeCard(ctx, acct, customerRef, paymentMethodRef)
	observability.RecordStoredCard("remove", err == nil)
	return removed, err
}

func (s *Service) removeCard(ctx context.Context, acct Account, customerRef, paymentMethodRef string) (*domain.RemovedCard, error) {
	if paymentMethodRef == "" {
		return nil, domain.NewInvalidInputError("reference_id", "A payment method reference is required.")
	}

	_, gwErr := execute(ctx, s, acct, OpRetrievePaymentMethod, map[string]string{"id": paymentMethodRef},
		func(ctx context.Context, key string) (*adapterports.PaymentMethod, error) {
			return s.remote.RetrievePaymentMethod(ctx, key, paymentMethodRef)
		})
	if gwErr != nil {
		return nil, gwErr
	}

	_, gwErr = execute(ctx, s, acct, OpDetachPaymentMethod, map[string]string{"id": paymentMethodRef},
		func(ctx context.Context, key string) (*adapterports.PaymentMethod, error) {
			return s.remote.DetachPaymentMethod(ctx, key, paymentMethodRef)
		})
	if gwErr != nil {
		return nil, gwErr
	}

	return &domain.RemovedCard{
		CustomerReference:      customerRef,
		PaymentMethodReference: paymentMethodRef,
	}, nil
}
