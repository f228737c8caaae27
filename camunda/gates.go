// FILE: lixenwraith/unicfg/camunda/gates.go
package camunda

import (
	"github.com/lixenwraith/unicfg"
)

var (
	// ContinuousBackups guards the periodic backup scheduler
	ContinuousBackups = unicfg.Gate{
		Name:   "continuous-backups",
		Key:    "camunda.data.backup.continuous",
		Legacy: []string{"zeebe.broker.data.backup.continuous"},
	}

	// MetricsExport guards the Prometheus registry
	MetricsExport = unicfg.Gate{
		Name:   "metrics-export",
		Key:    "camunda.monitoring.metrics.enabled",
		Legacy: []string{"management.metrics.export.prometheus.enabled"},
	}
)

// Gates lists every gate consulted by Assemble
func Gates() []unicfg.Gate {
	return []unicfg.Gate{ContinuousBackups, MetricsExport}
}
