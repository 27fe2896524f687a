package gateway

import (
	adapterports "github.com/kevin07696/stripe-gateway/internal/adapters/ports"
	"github.com/kevin07696/stripe-gateway/internal/domain"
)

// outcome is a classified (status, message) pair
type outcome struct {
	status  domain.TransactionStatus
	message string
	code    domain.ErrorCode
}

// classifyCharge decides the status of a create-and-confirm call. Declines
// are recognised on either the call error or the intent's last payment error.
func classifyCharge(intent *adapterports.PaymentIntent, gwErr *domain.GatewayError) outcome {
	var intentErr *adapterports.RemoteError
	if intent != nil {
		intentErr = intent.LastPaymentError
	}

	switch {
	case gwErr.IsCardDeclined():
		return outcome{status: domain.TransactionStatusDeclined, message: gwErr.Message, code: gwErr.Code}
	case intentErr != nil && intentErr.Code == domain.RemoteCodeCardDeclined:
		return outcome{status: domain.TransactionStatusDeclined, message: intentErr.Message, code: domain.ErrorCodeRemoteCard}
	case gwErr == nil && intentErr == nil:
		return outcome{status: domain.TransactionStatusApproved}
	case gwErr != nil:
		return outcome{status: domain.TransactionStatusError, message: gwErr.Message, code: gwErr.Code}
	default:
		return outcome{status: domain.TransactionStatusError, message: intentErr.Message, code: domain.ErrorCodeRemoteCard}
	}
}

// classifyIntentStatus collapses the processor's intent lifecycle into the
// local vocabulary. Unknown statuses are errors, never approvals.
func classifyIntentStatus(intent *adapterports.PaymentIntent) outcome {
	if intent == nil {
		return outcome{status: domain.TransactionStatusError}
	}

	switch intent.Status {
	case adapterports.IntentStatusRequiresConfirmation,
		adapterports.IntentStatusRequiresAction,
		adapterports.IntentStatusRequiresSourceAction,
		adapterports.IntentStatusProcessing:
		return outcome{status: domain.TransactionStatusPending}
	case adapterports.IntentStatusCanceled:
		return outcome{status: domain.TransactionStatusDeclined}
	case adapterports.IntentStatusSucceeded:
		return outcome{status: domain.TransactionStatusApproved}
	default:
		result := outcome{status: domain.TransactionStatusError}
		if intent.LastPaymentError != nil {
			result.message = intent.LastPaymentError.Message
			result.code = domain.ErrorCodeRemoteCard
		}
		return result
	}
}
