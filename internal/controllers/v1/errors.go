package v1

import (
	"errors"
	"net/http"

	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
	"github.com/prometheus/client_golang/prometheus"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

var ledgerErrors = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_validation_errors_total",
		Help: "How many requests were rejected by ledger validation, partitioned by error kind.",
	},
	[]string{"kind"},
)

// Collectors returns the Prometheus collectors of the controllers.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{ledgerErrors}
}

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if kind := ledger.KindOf(err); kind != ledger.KindNone {
		ledgerErrors.WithLabelValues(string(kind)).Inc()
	}

	return http.StatusBadRequest
}

var (
	errMonthNotSet         = errors.New("the month must be set")
	errAllocationNotFound  = errors.New("there is no allocation matching your query")
	errTransactionNotFound = errors.New("there is no transaction matching your query")
	errBatchEmpty          = errors.New("the batch must contain at least one transaction")
	errExpandInvalid       = errors.New("expand only accepts stats, allocations and goal")
)
