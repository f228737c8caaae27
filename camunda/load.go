// FILE: lixenwraith/unicfg/camunda/load.go
package camunda

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/unicfg"
)

// Subsystem pairs a mapping table with the part of Config it populates
type Subsystem struct {
	Name   string
	Table  unicfg.Table
	Target func(*Config) any
}

// Subsystems lists every subsystem in a stable order
func Subsystems() []Subsystem {
	return []Subsystem{
		{Name: "backup", Table: BackupTable, Target: func(c *Config) any { return &c.Backup }},
		{Name: "batch-operations", Table: BatchOperationsTable, Target: func(c *Config) any { return &c.BatchOperations }},
		{Name: "restore", Table: RestoreTable, Target: func(c *Config) any { return &c.Restore }},
	}
}

// Tables returns the mapping table of every subsystem keyed by subsystem name
func Tables() map[string]unicfg.Table {
	tables := make(map[string]unicfg.Table)
	for _, s := range Subsystems() {
		tables[s.Name] = s.Table
	}
	return tables
}

// Load binds every subsystem table against props, starting from DefaultConfig.
// Subsystems are bound concurrently. Failures from all subsystems are joined into one
// error and no configuration is returned; the report covers every mapping either way.
func Load(props *unicfg.Properties, opts ...unicfg.ResolverOption) (*Config, unicfg.Report, error) {
	return LoadWith(unicfg.NewResolver(props, opts...))
}

// LoadWith is Load with an existing resolver
func LoadWith(resolver *unicfg.Resolver) (*Config, unicfg.Report, error) {
	cfg := DefaultConfig()
	binder := unicfg.NewBinder(resolver)

	subsystems := Subsystems()
	reports := make([]unicfg.Report, len(subsystems))
	errs := make([]error, len(subsystems))

	var g errgroup.Group
	for i, s := range subsystems {
		i, s := i, s
		g.Go(func() error {
			report, err := binder.Bind(s.Table, s.Target(&cfg))
			reports[i] = report
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", s.Name, err)
			}
			return errs[i]
		})
	}
	// Wait yields only the first failure; errs keeps every subsystem's
	failed := g.Wait()

	var report unicfg.Report
	for _, r := range reports {
		report = append(report, r...)
	}
	if failed != nil {
		return nil, report, errors.Join(errs...)
	}
	return &cfg, report, nil
}
