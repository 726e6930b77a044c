package verifier

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hilbert-prover/hilbert/explain"
)

// Outcomes of the verification of a proof file.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

type metrics struct {
	lines    *prometheus.CounterVec
	proofs   *prometheus.CounterVec
	duration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		lines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hilbert_lines_checked_total",
			Help: "Number of proof lines checked, by justification kind and validity.",
		}, []string{"kind", "valid"}),
		proofs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hilbert_proofs_checked_total",
			Help: "Number of proof files checked, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hilbert_proof_check_seconds",
			Help:    "Time spent reading and checking a proof file.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.lines, m.proofs, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("could not register metrics: %w", err)
		}
	}
	return m, nil
}

func (m *metrics) observe(r Result) {
	m.proofs.WithLabelValues(r.Outcome()).Inc()
	m.duration.Observe(r.Duration.Seconds())
	for _, d := range r.Diagnostics {
		if d.Kind == explain.KindProof {
			continue
		}
		m.lines.WithLabelValues(string(d.Kind), fmt.Sprint(d.Valid)).Inc()
	}
}

// WriteSummary writes a one-line-per-series summary of the hilbert metrics gathered from g.
func WriteSummary(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("could not gather metrics: %w", err)
	}
	var lines []string
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "hilbert_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			switch {
			case m.GetCounter() != nil:
				lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				lines = append(lines, fmt.Sprintf("%s count=%d sum=%gs", name, h.GetSampleCount(), h.GetSampleSum()))
			}
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
