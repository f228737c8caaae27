// FILE: lixenwraith/unicfg/camunda/backup.go
package camunda

import (
	"time"

	"github.com/lixenwraith/unicfg"
)

// Backup store literals
const (
	StoreNone       = "NONE"
	StoreS3         = "S3"
	StoreGCS        = "GCS"
	StoreAzure      = "AZURE"
	StoreFilesystem = "FILESYSTEM"
)

// BackupStores lists the declared backup store literals
var BackupStores = []string{StoreNone, StoreS3, StoreGCS, StoreAzure, StoreFilesystem}

// GCS authentication literals
const (
	GCSAuthNone = "NONE"
	GCSAuthAuto = "AUTO"
)

var gcsAuthModes = []string{GCSAuthNone, GCSAuthAuto}

// BackupConfig selects and configures the backup store
type BackupConfig struct {
	Store              string              `toml:"store"`
	CheckpointInterval time.Duration       `toml:"checkpoint_interval"`
	OffloadPartitions  []int64             `toml:"offload_partitions"`
	S3                 S3BackupConfig      `toml:"s3"`
	GCS                GCSBackupConfig     `toml:"gcs"`
	Azure              AzureBackupConfig   `toml:"azure"`
	Filesystem         FilesystemBackupCfg `toml:"filesystem"`
}

type S3BackupConfig struct {
	BucketName           string        `toml:"bucket_name"`
	Endpoint             string        `toml:"endpoint"`
	Region               string        `toml:"region"`
	AccessKey            string        `toml:"access_key"`
	SecretKey            string        `toml:"secret_key"`
	APICallTimeout       time.Duration `toml:"api_call_timeout"`
	ForcePathStyleAccess bool          `toml:"force_path_style_access"`
	Compression          string        `toml:"compression"`
	BasePath             string        `toml:"base_path"`
}

type GCSBackupConfig struct {
	BucketName string `toml:"bucket_name"`
	BasePath   string `toml:"base_path"`
	Host       string `toml:"host"`
	Auth       string `toml:"auth"`
}

type AzureBackupConfig struct {
	Endpoint         string `toml:"endpoint"`
	AccountName      string `toml:"account_name"`
	AccountKey       string `toml:"account_key"`
	ConnectionString string `toml:"connection_string"`
	BasePath         string `toml:"base_path"`
	CreateContainer  bool   `toml:"create_container"`
}

type FilesystemBackupCfg struct {
	BasePath string `toml:"base_path"`
}

const (
	backupPrefix       = "camunda.data.backup."
	legacyBackupPrefix = "zeebe.broker.data.backup."
)

func backupKey(leaf, legacyLeaf, path string, kind unicfg.Kind, enum ...string) unicfg.Mapping {
	return unicfg.Mapping{
		Key:    backupPrefix + leaf,
		Legacy: []string{legacyBackupPrefix + legacyLeaf},
		Path:   path,
		Kind:   kind,
		Enum:   enum,
	}
}

func secret(m unicfg.Mapping) unicfg.Mapping {
	m.Secret = true
	return m
}

// BackupTable maps camunda.data.backup.* and zeebe.broker.data.backup.* onto BackupConfig
var BackupTable = unicfg.Table{
	backupKey("store", "store", "store", unicfg.KindEnum, BackupStores...),
	backupKey("checkpoint-interval", "checkpointInterval", "checkpoint_interval", unicfg.KindDuration),
	backupKey("offload-partitions", "offloadPartitions", "offload_partitions", unicfg.KindInt64s),

	backupKey("s3.bucket-name", "s3.bucketName", "s3.bucket_name", unicfg.KindString),
	backupKey("s3.endpoint", "s3.endpoint", "s3.endpoint", unicfg.KindString),
	backupKey("s3.region", "s3.region", "s3.region", unicfg.KindString),
	backupKey("s3.access-key", "s3.accessKey", "s3.access_key", unicfg.KindString),
	secret(backupKey("s3.secret-key", "s3.secretKey", "s3.secret_key", unicfg.KindString)),
	backupKey("s3.api-call-timeout", "s3.apiCallTimeout", "s3.api_call_timeout", unicfg.KindDuration),
	backupKey("s3.force-path-style-access", "s3.forcePathStyleAccess", "s3.force_path_style_access", unicfg.KindBool),
	backupKey("s3.compression", "s3.compression", "s3.compression", unicfg.KindString),
	backupKey("s3.base-path", "s3.basePath", "s3.base_path", unicfg.KindString),

	backupKey("gcs.bucket-name", "gcs.bucketName", "gcs.bucket_name", unicfg.KindString),
	backupKey("gcs.base-path", "gcs.basePath", "gcs.base_path", unicfg.KindString),
	backupKey("gcs.host", "gcs.host", "gcs.host", unicfg.KindString),
	backupKey("gcs.auth", "gcs.auth", "gcs.auth", unicfg.KindEnum, gcsAuthModes...),

	backupKey("azure.endpoint", "azure.endpoint", "azure.endpoint", unicfg.KindString),
	backupKey("azure.account-name", "azure.accountName", "azure.account_name", unicfg.KindString),
	secret(backupKey("azure.account-key", "azure.accountKey", "azure.account_key", unicfg.KindString)),
	secret(backupKey("azure.connection-string", "azure.connectionString", "azure.connection_string", unicfg.KindString)),
	backupKey("azure.base-path", "azure.basePath", "azure.base_path", unicfg.KindString),
	backupKey("azure.create-container", "azure.createContainer", "azure.create_container", unicfg.KindBool),

	backupKey("filesystem.base-path", "filesystem.basePath", "filesystem.base_path", unicfg.KindString),
}
