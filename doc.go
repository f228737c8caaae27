// File: lixenwraith/unicfg/doc.go

// Package unicfg resolves application configuration from a canonical property
// namespace and one or more deprecated (legacy) namespaces into typed Go structs.
//
// Features:
//   - Layered property sources with explicit precedence: command line, pflag
//     flags, environment, TOML/YAML/JSON files, an existing viper instance and
//     bundled defaults
//   - New-over-legacy resolution: the canonical key always wins when present,
//     otherwise the first declared legacy key, otherwise the field keeps its default
//   - Typed coercion for durations, booleans, longs, enums and delimited lists
//   - Static mapping tables checked against the destination struct
//   - All-or-nothing binding with every failure reported at once
//   - Conditional activation gates for optional components
//   - Structured logging with zap and optional Prometheus counters
//
// Quick Start:
//
//	type Backup struct {
//	    Store    string        `toml:"store"`
//	    Interval time.Duration `toml:"interval"`
//	}
//
//	var table = unicfg.Table{
//	    {Key: "app.backup.store", Legacy: []string{"old.backup.store"},
//	        Path: "store", Kind: unicfg.KindEnum, Enum: []string{"NONE", "S3"}},
//	    {Key: "app.backup.interval", Legacy: []string{"old.backup.interval"},
//	        Path: "interval", Kind: unicfg.KindDuration},
//	}
//
//	props, err := unicfg.Quick("MYAPP_", "config.toml")
//	if err != nil && !errors.Is(err, unicfg.ErrConfigNotFound) {
//	    log.Fatal(err)
//	}
//
//	backup := Backup{Store: "NONE", Interval: time.Hour}
//	if err := unicfg.Bind(props, table, &backup); err != nil {
//	    log.Fatal(err)
//	}
//
// Default Precedence (highest to lowest):
//  1. Command-line arguments (--app.backup.store=s3)
//  2. Changed pflag flags
//  3. Environment variables (MYAPP_APP_BACKUP_STORE=s3)
//  4. Configuration file (config.toml)
//  5. Viper instance
//  6. Default properties
//
// Precedence decides which source supplies a key. It never overrides the
// new-over-legacy rule: a canonical key held only by the default properties
// still beats a legacy key given on the command line.
//
// Thread Safety:
// Properties and sources are immutable after construction and may be read
// concurrently. Independent tables may be bound in parallel.
package unicfg
