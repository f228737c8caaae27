// FILE: lixenwraith/unicfg/example/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/unicfg"
	"github.com/lixenwraith/unicfg/camunda"
)

// A deployment half-way through migrating from zeebe.* to camunda.* keys.
const legacyFile = `
[zeebe.broker.data.backup]
store = "filesystem"
checkpointInterval = "10m"
continuous = true

[zeebe.broker.data.backup.filesystem]
basePath = "%s"

[zeebe.broker.experimental.engine.batchOperations]
schedulerInterval = "15s"
partitions = [10, 20]

[zeebe.restore]
ignoreFilesInTarget = ["file1", "file2", "file3"]

[management.metrics.export.prometheus]
enabled = true
`

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	// =========================================================================
	// PART 1: A legacy configuration file on disk
	// =========================================================================
	dir, err := os.MkdirTemp("", "unicfg-example")
	if err != nil {
		logger.Fatal("temp dir", zap.Error(err))
	}
	defer os.RemoveAll(dir)

	configPath := filepath.Join(dir, "broker.toml")
	backupDir := filepath.Join(dir, "backups")
	if err := os.WriteFile(configPath, []byte(fmt.Sprintf(legacyFile, backupDir)), 0o644); err != nil {
		logger.Fatal("write config", zap.Error(err))
	}

	// =========================================================================
	// PART 2: Layered sources. The canonical key set on the command line and the
	// flag set beats its legacy alias from the file.
	// =========================================================================
	fs := camunda.BatchOperationsTable.FlagSet("batch")
	if err := fs.Parse([]string{"--camunda.processing.engine.batch-operations.partitions=30,40"}); err != nil {
		logger.Fatal("parse flags", zap.Error(err))
	}

	props, err := unicfg.NewBuilder().
		WithFile(configPath).
		WithArgs([]string{"--camunda.data.backup.store=filesystem"}).
		WithFlags(fs).
		WithEnvPrefix("EXAMPLE_").
		WithDefaults(map[string]string{"camunda.monitoring.metrics.enabled": "false"}).
		WithLogger(logger).
		Build()
	if err != nil && !errors.Is(err, unicfg.ErrConfigNotFound) {
		logger.Fatal("build properties", zap.Error(err))
	}

	fmt.Print(props.Debug(
		"camunda.data.backup.store",
		"zeebe.broker.data.backup.store",
		"camunda.processing.engine.batch-operations.partitions",
	))

	// =========================================================================
	// PART 3: Bind every subsystem
	// =========================================================================
	metrics, err := unicfg.NewMetrics(nil)
	if err != nil {
		logger.Fatal("metrics", zap.Error(err))
	}
	resolver := unicfg.NewResolver(props, unicfg.WithLogger(logger), unicfg.WithMetrics(metrics))
	cfg, report, err := camunda.LoadWith(resolver)
	if err != nil {
		for _, be := range unicfg.BindingErrors(err) {
			logger.Error("invalid property", zap.String("key", be.Key), zap.String("raw", be.Raw), zap.Error(be.Err))
		}
		os.Exit(1)
	}

	fmt.Println("\nStill on legacy keys:")
	for _, res := range report.Legacy() {
		fmt.Printf("  %s -> %s\n", res.Outcome.Key, res.Mapping.Key)
	}

	fmt.Println("\nBound configuration:")
	if err := unicfg.Dump(os.Stdout, cfg); err != nil {
		logger.Fatal("dump", zap.Error(err))
	}

	// =========================================================================
	// PART 4: Assemble gated components and run the scheduler briefly
	// =========================================================================
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	components, err := camunda.Assemble(ctx, cfg, resolver)
	if err != nil {
		logger.Fatal("assemble", zap.Error(err))
	}
	fmt.Printf("\nBackup store: %s at %s\n", components.Store.Kind(), components.Store.Location())
	if components.Registry != nil {
		families, err := components.Registry.Gather()
		if err != nil {
			logger.Fatal("gather", zap.Error(err))
		}
		for _, mf := range families {
			if strings.HasPrefix(mf.GetName(), "unicfg_") {
				fmt.Printf("  %s: %d series\n", mf.GetName(), len(mf.GetMetric()))
			}
		}
	}

	if components.Scheduler == nil {
		return
	}
	// The interval comes from the file; shorten it for the demo
	scheduler, err := camunda.NewBackupScheduler(components.Store, 500*time.Millisecond, logger)
	if err != nil {
		logger.Fatal("scheduler", zap.Error(err))
	}
	_ = scheduler.Run(ctx, func(_ context.Context, store camunda.BackupStore, checkpoint int64) error {
		path := filepath.Join(store.Location(), fmt.Sprintf("checkpoint-%d", checkpoint))
		return os.WriteFile(path, []byte(time.Now().Format(time.RFC3339)), 0o644)
	})
}
