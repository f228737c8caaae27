// FILE: lixenwraith/unicfg/camunda/assemble.go
package camunda

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/lixenwraith/unicfg"
)

// ErrStoreUnsupported is returned for a declared store this build cannot construct
var ErrStoreUnsupported = errors.New("backup store not supported")

// BackupStore is the destination selected by camunda.data.backup.store
type BackupStore interface {
	// Kind returns the store literal
	Kind() string
	// Location describes where backups are written
	Location() string
}

type noneStore struct{}

func (noneStore) Kind() string     { return StoreNone }
func (noneStore) Location() string { return "" }

// S3Store writes backups to an S3 compatible bucket
type S3Store struct {
	client      *awss3.Client
	bucket      string
	basePath    string
	compression string
	timeout     time.Duration
}

func (s *S3Store) Kind() string { return StoreS3 }

func (s *S3Store) Location() string {
	return "s3://" + strings.TrimSuffix(s.bucket+"/"+strings.Trim(s.basePath, "/"), "/")
}

// Compression returns the codec applied to backup objects ("none" when unset)
func (s *S3Store) Compression() string {
	if s.compression == "" {
		return "none"
	}
	return s.compression
}

// Client returns the underlying S3 client
func (s *S3Store) Client() *awss3.Client { return s.client }

// Ping verifies the bucket is reachable within the configured API call timeout
func (s *S3Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if _, err := s.client.HeadBucket(ctx, &awss3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return fmt.Errorf("s3 bucket %s not reachable: %w", s.bucket, err)
	}
	return nil
}

// FilesystemStore writes backups below a local directory
type FilesystemStore struct {
	basePath string
}

func (s *FilesystemStore) Kind() string     { return StoreFilesystem }
func (s *FilesystemStore) Location() string { return s.basePath }

// NewBackupStore builds the store selected by cfg.Store
func NewBackupStore(ctx context.Context, cfg BackupConfig) (BackupStore, error) {
	switch cfg.Store {
	case StoreNone, "":
		return noneStore{}, nil
	case StoreS3:
		return newS3Store(ctx, cfg.S3)
	case StoreFilesystem:
		if strings.TrimSpace(cfg.Filesystem.BasePath) == "" {
			return nil, errors.New("filesystem backup store requires a base path")
		}
		if err := os.MkdirAll(cfg.Filesystem.BasePath, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create backup directory: %w", err)
		}
		return &FilesystemStore{basePath: cfg.Filesystem.BasePath}, nil
	case StoreGCS, StoreAzure:
		return nil, fmt.Errorf("%w: %s", ErrStoreUnsupported, cfg.Store)
	default:
		return nil, fmt.Errorf("%w: unknown store %q", ErrStoreUnsupported, cfg.Store)
	}
}

func newS3Store(ctx context.Context, cfg S3BackupConfig) (*S3Store, error) {
	if strings.TrimSpace(cfg.BucketName) == "" {
		return nil, errors.New("s3 backup store requires a bucket name")
	}

	var loadOptions []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOptions = append(loadOptions, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		loadOptions = append(loadOptions, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyleAccess
	})

	timeout := cfg.APICallTimeout
	if timeout <= 0 {
		timeout = 180 * time.Second
	}
	return &S3Store{
		client:      client,
		bucket:      cfg.BucketName,
		basePath:    cfg.BasePath,
		compression: cfg.Compression,
		timeout:     timeout,
	}, nil
}

// BackupScheduler takes a checkpoint every interval until its context ends
type BackupScheduler struct {
	store    BackupStore
	interval time.Duration
	logger   *zap.Logger
}

// CheckpointFunc takes one backup identified by checkpoint
type CheckpointFunc func(ctx context.Context, store BackupStore, checkpoint int64) error

func NewBackupScheduler(store BackupStore, interval time.Duration, logger *zap.Logger) (*BackupScheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("backup checkpoint interval must be positive, got %s", interval)
	}
	if store == nil || store.Kind() == StoreNone {
		return nil, errors.New("continuous backups require a backup store")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupScheduler{store: store, interval: interval, logger: logger}, nil
}

// Interval returns the time between checkpoints
func (s *BackupScheduler) Interval() time.Duration { return s.interval }

// Run calls take on every tick. Failed checkpoints are logged and the loop continues.
func (s *BackupScheduler) Run(ctx context.Context, take CheckpointFunc) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var checkpoint int64
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			checkpoint++
			if err := take(ctx, s.store, checkpoint); err != nil {
				s.logger.Error("backup checkpoint failed",
					zap.Int64("checkpoint", checkpoint),
					zap.String("store", s.store.Kind()),
					zap.Error(err))
				continue
			}
			s.logger.Info("backup checkpoint taken",
				zap.Int64("checkpoint", checkpoint),
				zap.String("location", s.store.Location()))
		}
	}
}

// NewMetricsRegistry creates a registry with the Go and process collectors
func NewMetricsRegistry() (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, err
	}
	return reg, nil
}

// Components are the runtime pieces built from a bound Config.
// Scheduler and Registry are nil when their gate is INACTIVE.
type Components struct {
	Store     BackupStore
	Scheduler *BackupScheduler
	Registry  *prometheus.Registry
}

// Assemble builds the backup store and the gated optional components.
// Gates are evaluated through resolver so they follow the same key precedence as cfg.
func Assemble(ctx context.Context, cfg *Config, resolver *unicfg.Resolver) (*Components, error) {
	logger := resolver.Logger()

	store, err := NewBackupStore(ctx, cfg.Backup)
	if err != nil {
		return nil, fmt.Errorf("backup store: %w", err)
	}
	if s3, ok := store.(*S3Store); ok {
		logger.Info("s3 backup store configured",
			zap.String("location", s3.Location()),
			zap.String("compression", s3.Compression()))
	}

	scheduler, built, err := unicfg.BuildIf(resolver, ContinuousBackups, func() (*BackupScheduler, error) {
		return NewBackupScheduler(store, cfg.Backup.CheckpointInterval, logger.Named("backup"))
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ContinuousBackups.Name, err)
	}
	if built {
		logger.Info("continuous backups enabled", zap.Duration("interval", scheduler.Interval()))
	}

	registry, built, err := unicfg.BuildIf(resolver, MetricsExport, func() (*prometheus.Registry, error) {
		reg, err := NewMetricsRegistry()
		if err != nil {
			return nil, err
		}
		if m := resolver.Metrics(); m != nil {
			for _, c := range m.Collectors() {
				if err := reg.Register(c); err != nil {
					return nil, err
				}
			}
		}
		return reg, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MetricsExport.Name, err)
	}
	if built {
		logger.Info("metrics export enabled")
	}

	return &Components{Store: store, Scheduler: scheduler, Registry: registry}, nil
}
