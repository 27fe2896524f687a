package gateway

import "github.com/kevin07696/stripe-gateway/internal/domain"

var cardBrands = map[string]domain.CardBrand{
	"amex":       domain.CardBrandAmex,
	"diners":     domain.CardBrandDinersClub,
	"discover":   domain.CardBrandDiscover,
	"jcb":        domain.CardBrandJCB,
	"mastercard": domain.CardBrandMasterCard,
	"unionpay":   domain.CardBrandUnionPay,
	"visa":       domain.CardBrandVisa,
	"unknown":    domain.CardBrandOther,
}

// MapCardBrand translates the processor's brand name into the local card type.
// Unmapped brands are "other".
func MapCardBrand(brand string) domain.CardBrand {
	if mapped, ok := cardBrands[brand]; ok {
		return mapped
	}
	return domain.CardBrandOther
}
