// FILE: lixenwraith/unicfg/camunda/batch.go
package camunda

import (
	"time"

	"github.com/lixenwraith/unicfg"
)

// BatchOperationsConfig tunes the batch operation scheduler of the engine
type BatchOperationsConfig struct {
	SchedulerInterval       time.Duration `toml:"scheduler_interval"`
	ChunkSize               int           `toml:"chunk_size"`
	DBChunkSize             int           `toml:"db_chunk_size"`
	QueryPageSize           int           `toml:"query_page_size"`
	QueryInClauseSize       int           `toml:"query_in_clause_size"`
	QueryRetryMax           int           `toml:"query_retry_max"`
	QueryRetryInitialDelay  time.Duration `toml:"query_retry_initial_delay"`
	QueryRetryMaxDelay      time.Duration `toml:"query_retry_max_delay"`
	QueryRetryBackoffFactor int           `toml:"query_retry_backoff_factor"`
	Partitions              []int64       `toml:"partitions"`
}

const batchPrefix = "camunda.processing.engine.batch-operations."

// The experimental namespace was published in camelCase and later documented in
// kebab-case; both spellings are still read, camelCase first.
const (
	legacyBatchCamel = "zeebe.broker.experimental.engine.batchOperations."
	legacyBatchKebab = "zeebe.broker.experimental.engine.batch-operations."
)

func batchKey(leaf, camelLeaf, path string, kind unicfg.Kind) unicfg.Mapping {
	return unicfg.Mapping{
		Key:    batchPrefix + leaf,
		Legacy: []string{legacyBatchCamel + camelLeaf, legacyBatchKebab + leaf},
		Path:   path,
		Kind:   kind,
	}
}

// BatchOperationsTable maps the batch operation keys onto BatchOperationsConfig
var BatchOperationsTable = unicfg.Table{
	batchKey("scheduler-interval", "schedulerInterval", "scheduler_interval", unicfg.KindDuration),
	batchKey("chunk-size", "chunkSize", "chunk_size", unicfg.KindInt64),
	batchKey("db-chunk-size", "dbChunkSize", "db_chunk_size", unicfg.KindInt64),
	batchKey("query-page-size", "queryPageSize", "query_page_size", unicfg.KindInt64),
	batchKey("query-in-clause-size", "queryInClauseSize", "query_in_clause_size", unicfg.KindInt64),
	batchKey("query-retry-max", "queryRetryMax", "query_retry_max", unicfg.KindInt64),
	batchKey("query-retry-initial-delay", "queryRetryInitialDelay", "query_retry_initial_delay", unicfg.KindDuration),
	batchKey("query-retry-max-delay", "queryRetryMaxDelay", "query_retry_max_delay", unicfg.KindDuration),
	batchKey("query-retry-backoff-factor", "queryRetryBackoffFactor", "query_retry_backoff_factor", unicfg.KindInt64),
	batchKey("partitions", "partitions", "partitions", unicfg.KindInt64s),
}
