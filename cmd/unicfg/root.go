// FILE: lixenwraith/unicfg/cmd/unicfg/root.go
package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/unicfg"
)

const appName = "unicfg"

type app struct {
	configFile string
	envPrefix  string
	logLevel   string
	format     string

	out    io.Writer
	logger *zap.Logger
}

func newRootCommand(out io.Writer) *cobra.Command {
	a := &app{out: out}

	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Inspect how broker properties resolve across canonical and legacy keys",
		Long: `unicfg resolves camunda.* properties and their deprecated zeebe.* aliases
from command line overrides, environment variables and a configuration file.

Property overrides follow "--":
  unicfg resolve -- --camunda.data.backup.store=s3`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch a.format {
			case "text", "json", "toml":
			default:
				return fmt.Errorf("unsupported output format %q", a.format)
			}
			logger, err := newLogger(a.logLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	rootCmd.SetOut(out)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configFile, "config-file", "c", "", "configuration file (TOML, YAML or JSON); discovered when empty")
	flags.StringVar(&a.envPrefix, "env-prefix", "", "prefix of environment variables holding properties")
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringVar(&a.format, "format", "text", "output format (text, json, toml)")

	rootCmd.AddCommand(
		newResolveCommand(a),
		newCheckCommand(a),
		newGatesCommand(a),
		newDumpCommand(a),
	)
	return rootCmd
}

// overrides returns the arguments given after "--"
func overrides(cmd *cobra.Command, args []string) []string {
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		return args[dash:]
	}
	return nil
}

// properties assembles the property view for one command invocation
func (a *app) properties(cmd *cobra.Command, args []string) (*unicfg.Properties, error) {
	b := unicfg.NewBuilder().
		WithArgs(overrides(cmd, args)).
		WithEnvPrefix(a.envPrefix).
		WithLogger(a.logger)

	if a.configFile != "" {
		b = b.WithFile(a.configFile)
	} else {
		opts := unicfg.DefaultDiscoveryOptions(appName)
		// --config-file is owned by cobra
		opts.CLIFlag = ""
		b = b.WithFileDiscovery(opts)
	}

	// Discovery only yields existing files, so ErrConfigNotFound means an explicit
	// --config-file is missing, which is a usage error here
	props, err := b.Build()
	if err != nil {
		if errors.Is(err, unicfg.ErrConfigNotFound) {
			return nil, fmt.Errorf("--config-file: %w", err)
		}
		return nil, err
	}
	return props, nil
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}
