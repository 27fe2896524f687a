package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Transaction outcomes as reported to the host
	transactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stripe_gateway_transactions_total",
		Help: "Total number of gateway transaction operations by resulting status",
	}, []string{
		"operation", // charge, authorize, capture, void, refund
		"status",    // approved, declined, pending, void, refunded, error
	})

	// Stored card lifecycle
	storedCardsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stripe_gateway_stored_cards_total",
		Help: "Total stored card operations",
	}, []string{
		"operation", // store, update, remove
		"result",    // success, failure
	})

	migratedAccountsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stripe_gateway_migrated_accounts_total",
		Help: "Total legacy accounts rebound to this gateway",
	})
)

// RecordTransaction records a transaction operation outcome
func RecordTransaction(operation, status string) {
	transactionsTotal.WithLabelValues(operation, status).Inc()
}

// RecordStoredCard records a stored card operation outcome
func RecordStoredCard(operation string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	storedCardsTotal.WithLabelValues(operation, result).Inc()
}

// RecordMigratedAccounts adds to the migrated account counter
func RecordMigratedAccounts(count int) {
	if count > 0 {
		migratedAccountsTotal.Add(float64(count))
	}
}
