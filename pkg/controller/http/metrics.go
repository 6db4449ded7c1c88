package http

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	documentAppSiteAssociation = "app_site_association"
	documentAssetLinks         = "assetlinks"

	outcomeOK         = "ok"
	outcomeFetchError = "fetch_error"
	outcomeError      = "error"
)

// metrics holds the collectors of the check API
type metrics struct {
	checks *prometheus.CounterVec
}

func newMetrics(registry prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "appassoc",
			Name:      "checks_total",
			Help:      "Number of document checks by document and outcome",
		}, []string{"document", "outcome"}),
	}

	if err := registry.Register(m.checks); err != nil {
		return nil, goerr.Wrap(err, "failed to register check metrics")
	}

	return m, nil
}

func (m *metrics) observe(document, outcome string) {
	m.checks.WithLabelValues(document, outcome).Inc()
}
