// FILE: lixenwraith/unicfg/camunda/config.go

// Package camunda declares the broker configuration tree, the key mapping tables that
// feed it from the canonical camunda.* namespace and the legacy zeebe.* namespace,
// and the assembly of the components those settings control.
package camunda

import (
	"time"

	"github.com/lixenwraith/unicfg"
)

// Config is the root of the configuration object graph.
// It is populated once by Load and treated as read-only afterwards.
type Config struct {
	Backup          BackupConfig          `toml:"backup"`
	BatchOperations BatchOperationsConfig `toml:"batch_operations"`
	Restore         RestoreConfig         `toml:"restore"`
}

// DefaultConfig returns the graph with every field at its default.
// Fields whose keys are all absent keep these values after Load.
func DefaultConfig() Config {
	return Config{
		Backup: BackupConfig{
			Store:              StoreNone,
			CheckpointInterval: 5 * time.Minute,
			OffloadPartitions:  []int64{},
			S3: S3BackupConfig{
				APICallTimeout: 180 * time.Second,
				Compression:    "none",
			},
			GCS: GCSBackupConfig{
				Auth: GCSAuthAuto,
			},
			Azure: AzureBackupConfig{
				CreateContainer: true,
			},
		},
		BatchOperations: BatchOperationsConfig{
			SchedulerInterval:       time.Second,
			ChunkSize:               100,
			DBChunkSize:             3500,
			QueryPageSize:           10000,
			QueryInClauseSize:       1000,
			QueryRetryMax:           3,
			QueryRetryInitialDelay:  time.Second,
			QueryRetryMaxDelay:      60 * time.Second,
			QueryRetryBackoffFactor: 2,
			Partitions:              []int64{},
		},
		Restore: RestoreConfig{
			ValidateConfig:      true,
			IgnoreFilesInTarget: []string{"lost+found"},
			BackupIDs:           []int64{},
			Timeout:             time.Hour,
		},
	}
}

// Redacted returns a copy of c with credentials replaced for printing
func (c Config) Redacted() Config {
	mask := func(s *string) {
		if *s != "" {
			*s = unicfg.RedactedValue
		}
	}
	mask(&c.Backup.S3.SecretKey)
	mask(&c.Backup.Azure.AccountKey)
	mask(&c.Backup.Azure.ConnectionString)
	return c
}
