package ports

import "context"

// LegacyAccount is a locally persisted card account still bound to the
// previous gateway. ReferenceID holds the remote customer id.
type LegacyAccount struct {
	ID          string
	GatewayID   string
	ReferenceID string
}

// LegacyAccountStore reads accounts of the previous gateway and rebinds them
// to the current one
type LegacyAccountStore interface {
	// ListActive returns the active legacy accounts that still carry a remote
	// reference, oldest first
	ListActive(ctx context.Context) ([]LegacyAccount, error)

	// Rebind points an account at the new gateway with new remote references
	Rebind(ctx context.Context, accountID, gatewayID, referenceID, clientReferenceID string) error
}
