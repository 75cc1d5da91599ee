package wakeonlan

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the Wake-on-LAN metrics. It is kept apart from the default registry
// so the CLI can export exactly these series to a node_exporter textfile.
var Registry = prometheus.NewRegistry()

var (
	// PacketsSentTotal counts magic packets handed to the network.
	PacketsSentTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wol_packets_sent_total",
			Help: "Number of Wake-on-LAN magic packets sent",
		},
	)

	// ErrorsTotal counts failed wake requests by reason.
	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wol_errors_total",
			Help: "Number of failed Wake-on-LAN requests",
		},
		[]string{"reason"},
	)
)

const (
	reasonInvalidMAC = "invalid_mac"
	reasonTransport  = "transport"
)

func init() {
	Registry.MustRegister(
		PacketsSentTotal,
		ErrorsTotal,
	)
}
