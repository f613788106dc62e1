package soap

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK             = "ok"
	outcomeFault          = "fault"
	outcomeTransportError = "transport_error"
)

var callsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "gateway",
	Subsystem: "soap",
	Name:      "calls_total",
	Help:      "Total outbound SOAP calls partitioned by operation and outcome.",
}, []string{"operation", "outcome"})

func observeCall(operation, outcome string) {
	callsTotal.WithLabelValues(operation, outcome).Inc()
}
