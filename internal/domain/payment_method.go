package domain

// CardBrand is the host's local card type enumeration
type CardBrand string

const (
	CardBrandVisa       CardBrand = "visa"
	CardBrandMasterCard CardBrand = "mc"
	CardBrandAmex       CardBrand = "amex"
	CardBrandDiscover   CardBrand = "disc"
	CardBrandJCB        CardBrand = "jcb"
	CardBrandDinersClub CardBrand = "dc-int"
	CardBrandUnionPay   CardBrand = "cup"
	CardBrandOther      CardBrand = "other"
)

// StoredCard is a card retained at the remote processor and referenced locally
// only by opaque identifiers
type StoredCard struct {
	// CustomerReference is the remote customer the card is attached to. It may
	// be a customer created while storing the card.
	CustomerReference      string    `json:"client_reference_id"`
	PaymentMethodReference string    `json:"reference_id"`
	Last4                  string    `json:"last4"`
	Expiration             string    `json:"expiration"` // YYYYMM
	Brand                  CardBrand `json:"type"`
}

// RemovedCard identifies a card that was detached from its remote customer
type RemovedCard struct {
	CustomerReference      string `json:"client_reference_id"`
	PaymentMethodReference string `json:"reference_id"`
}

// CardForm carries what a browser needs to tokenize a card with the remote processor
type CardForm struct {
	PublishableKey string `json:"publishable_key"`
	SetupIntentID  string `json:"setup_intent_id"`
	ClientSecret   string `json:"client_secret"`
}

// PaymentConfirmation carries what a browser needs to finish a payment that
// requires customer action (e.g. 3-D Secure)
type PaymentConfirmation struct {
	PublishableKey string `json:"publishable_key"`
	ReferenceID    string `json:"reference_id"`
	Status         string `json:"status"`
	ClientSecret   string `json:"client_secret"`
}
