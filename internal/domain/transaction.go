package domain

// TransactionStatus is the local status vocabulary reported back to the host
// for every transaction operation
type TransactionStatus string

const (
	TransactionStatusApproved TransactionStatus = "approved"
	TransactionStatusDeclined TransactionStatus = "declined"
	TransactionStatusPending  TransactionStatus = "pending"
	TransactionStatusVoid     TransactionStatus = "void"
	TransactionStatusRefunded TransactionStatus = "refunded"
	TransactionStatusError    TransactionStatus = "error"
)

// IsValid reports whether s belongs to the local status vocabulary
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusApproved,
		TransactionStatusDeclined,
		TransactionStatusPending,
		TransactionStatusVoid,
		TransactionStatusRefunded,
		TransactionStatusError:
		return true
	}
	return false
}

// TransactionResult is the sole contract returned to the host for every
// transaction operation.
//
// Approved results never carry a message. Declined and error results carry the
// human-readable reason when one is available.
type TransactionResult struct {
	Status        TransactionStatus `json:"status"`
	ReferenceID   string            `json:"reference_id,omitempty"`
	TransactionID string            `json:"transaction_id,omitempty"`
	Message       string            `json:"message,omitempty"`

	// Code classifies the failure behind a declined or error status
	Code ErrorCode `json:"code,omitempty"`
}

// IsApproved returns true if the remote processor accepted the transaction
func (r *TransactionResult) IsApproved() bool {
	return r != nil && r.Status == TransactionStatusApproved
}

// IsFailure returns true for declined and error results
func (r *TransactionResult) IsFailure() bool {
	return r != nil && (r.Status == TransactionStatusDeclined || r.Status == TransactionStatusError)
}

// NewApprovedResult builds an approved result. Approved results never carry a message.
func NewApprovedResult(referenceID, transactionID string) *TransactionResult {
	return &TransactionResult{
		Status:        TransactionStatusApproved,
		ReferenceID:   referenceID,
		TransactionID: transactionID,
	}
}

// NewFailedResult builds a declined or error result from a gateway error
func NewFailedResult(status TransactionStatus, referenceID, transactionID string, err *GatewayError) *TransactionResult {
	result := &TransactionResult{
		Status:        status,
		ReferenceID:   referenceID,
		TransactionID: transactionID,
	}
	if err != nil {
		result.Message = err.Message
		result.Code = err.Code
	}
	return result
}
