package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics captures document generation health signals.
type Metrics struct {
	documentsGenerated *prometheus.CounterVec
	documentFailures   *prometheus.CounterVec
	allocationRetries  *prometheus.CounterVec
}

// New registers the document metrics on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		documentsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scribe_documents_generated_total",
			Help: "Documents successfully generated, by document type.",
		}, []string{"type"}),
		documentFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scribe_document_failures_total",
			Help: "Document generation failures, by document type and failure kind.",
		}, []string{"type", "kind"}),
		allocationRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scribe_number_allocation_retries_total",
			Help: "Sequence number allocation retries after a duplicate collision.",
		}, []string{"type"}),
	}
	if reg != nil {
		reg.MustRegister(m.documentsGenerated, m.documentFailures, m.allocationRetries)
	}
	return m
}

func (m *Metrics) DocumentGenerated(docType string) {
	if m == nil {
		return
	}
	m.documentsGenerated.WithLabelValues(docType).Inc()
}

func (m *Metrics) DocumentFailed(docType, kind string) {
	if m == nil {
		return
	}
	m.documentFailures.WithLabelValues(docType, kind).Inc()
}

func (m *Metrics) AllocationRetried(docType string) {
	if m == nil {
		return
	}
	m.allocationRetries.WithLabelValues(docType).Inc()
}
