package service

import "github.com/prometheus/client_golang/prometheus"

var relationTogglesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "mingle_relation_toggles_total",
		Help: "Total number of like/follow toggles by resulting state",
	},
	[]string{"kind", "result"}, // kind: like|follow, result: on|off
)

func init() {
	prometheus.MustRegister(relationTogglesTotal)
}

func observeToggle(kind string, on bool) {
	result := "off"
	if on {
		result = "on"
	}
	relationTogglesTotal.WithLabelValues(kind, result).Inc()
}
