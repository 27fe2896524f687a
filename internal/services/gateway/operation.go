package gateway

// apiBaseURL prefixes the URL recorded with each audit entry
const apiBaseURL = "https://api.stripe.com/v1/"

// Operation enumerates the remote calls the executor can dispatch
type Operation int

const (
	OpCreatePaymentIntent Operation = iota
	OpRetrievePaymentIntent
	OpCancelPaymentIntent
	OpCapturePaymentIntent
	OpCreateCustomer
	OpRetrieveCustomer
	OpRetrievePaymentMethod
	OpAttachPaymentMethod
	OpDetachPaymentMethod
	OpCreateRefund
	OpRetrieveBalance
	OpCreateSetupIntent
)

type operationInfo struct {
	resource string
	action   string
}

var operations = map[Operation]operationInfo{
	OpCreatePaymentIntent:   {"payment_intents", "create"},
	OpRetrievePaymentIntent: {"payment_intents", "retrieve"},
	OpCancelPaymentIntent:   {"payment_intents", "cancel"},
	OpCapturePaymentIntent:  {"payment_intents", "capture"},
	OpCreateCustomer:        {"customers", "create"},
	OpRetrieveCustomer:      {"customers", "retrieve"},
	OpRetrievePaymentMethod: {"payment_methods", "retrieve"},
	OpAttachPaymentMethod:   {"payment_methods", "attach"},
	OpDetachPaymentMethod:   {"payment_methods", "detach"},
	OpCreateRefund:          {"refunds", "create"},
	OpRetrieveBalance:       {"balance", "retrieve"},
	OpCreateSetupIntent:     {"setup_intents", "create"},
}

// String returns the metric label, e.g. "payment_intents.create"
func (o Operation) String() string {
	info, ok := operations[o]
	if !ok {
		return "unknown"
	}
	return info.resource + "." + info.action
}

// LogURL returns the URL recorded in audit entries, e.g.
// "https://api.stripe.com/v1/payment_intents - create"
func (o Operation) LogURL() string {
	info, ok := operations[o]
	if !ok {
		return apiBaseURL + "unknown"
	}
	return apiBaseURL + info.resource + " - " + info.action
}
