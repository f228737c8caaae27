// FILE: lixenwraith/unicfg/camunda/restore.go
package camunda

import (
	"time"

	"github.com/lixenwraith/unicfg"
)

// RestoreConfig drives restoring a broker data directory from backups
type RestoreConfig struct {
	ValidateConfig      bool          `toml:"validate_config"`
	IgnoreFilesInTarget []string      `toml:"ignore_files_in_target"`
	BackupIDs           []int64       `toml:"backup_ids"`
	Timeout             time.Duration `toml:"timeout"`
}

// RestoreTable maps camunda.system.restore.* and zeebe.restore.* onto RestoreConfig
var RestoreTable = unicfg.Table{
	{
		Key:    "camunda.system.restore.validate-config",
		Legacy: []string{"zeebe.restore.validateConfig"},
		Path:   "validate_config",
		Kind:   unicfg.KindBool,
	},
	{
		Key:    "camunda.system.restore.ignore-files-in-target",
		Legacy: []string{"zeebe.restore.ignoreFilesInTarget"},
		Path:   "ignore_files_in_target",
		Kind:   unicfg.KindStrings,
	},
	{
		Key:    "camunda.system.restore.backup-ids",
		Legacy: []string{"zeebe.restore.backupIds", "zeebe.restore.backupId"},
		Path:   "backup_ids",
		Kind:   unicfg.KindInt64s,
	},
	{
		Key:    "camunda.system.restore.timeout",
		Legacy: []string{"zeebe.restore.timeout"},
		Path:   "timeout",
		Kind:   unicfg.KindDuration,
	},
}
