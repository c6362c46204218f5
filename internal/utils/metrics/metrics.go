// internal/utils/metrics/metrics.go
package metrics

import (
	"github.com/rovshanmuradov/token-launcher/internal/launch"
)

// Observe принимает переходы оркестратора; подходит как launch.Observer.
func (c *Collector) Observe(t launch.Transition) {
	platform := string(t.Platform)

	if t.From != launch.Idle {
		c.stageDuration.WithLabelValues(platform, t.From.String()).Observe(t.Elapsed.Seconds())
	}

	switch {
	case t.To == launch.Validating:
		c.inFlight.WithLabelValues(platform).Inc()
	case t.To.Terminal():
		c.inFlight.WithLabelValues(platform).Dec()
		c.launches.WithLabelValues(platform, outcome(t.To)).Inc()
	}
}

func outcome(s launch.State) string {
	if s == launch.Done {
		return "done"
	}
	return "failed"
}
