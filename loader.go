// FILE: lixenwraith/unicfg/loader.go
package unicfg

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// SourceKind identifies a class of property source, used to define lookup precedence
type SourceKind string

const (
	// SourceDefault represents default properties bundled with the application
	SourceDefault SourceKind = "default"
	// SourceViper represents an existing viper instance
	SourceViper SourceKind = "viper"
	// SourceFile represents values loaded from a configuration file
	SourceFile SourceKind = "file"
	// SourceEnv represents values loaded from environment variables
	SourceEnv SourceKind = "env"
	// SourceFlags represents changed flags of a pflag.FlagSet
	SourceFlags SourceKind = "flags"
	// SourceCLI represents raw command-line property arguments
	SourceCLI SourceKind = "cli"
)

// EnvTransformFunc converts a property key to an environment variable name
type EnvTransformFunc func(key string) string

// LoadOptions configures how the flattened property view is assembled
type LoadOptions struct {
	// Sources defines the precedence order (first = highest priority)
	// Default: [SourceCLI, SourceFlags, SourceEnv, SourceFile, SourceViper, SourceDefault]
	Sources []SourceKind

	// EnvPrefix is prepended to environment variable names
	// Example: "MYAPP_" transforms "server.port" to "MYAPP_SERVER_PORT"
	EnvPrefix string

	// EnvTransform customizes how keys map to environment variables
	// If nil, uses RelaxedEnvTransform
	EnvTransform EnvTransformFunc

	// MaxValueSize rejects raw values larger than this many bytes (0 = MaxValueSize)
	MaxValueSize int
}

// DefaultLoadOptions returns the standard load options
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Sources:      []SourceKind{SourceCLI, SourceFlags, SourceEnv, SourceFile, SourceViper, SourceDefault},
		MaxValueSize: MaxValueSize,
	}
}

func (o LoadOptions) maxValueSize() int {
	if o.MaxValueSize <= 0 {
		return MaxValueSize
	}
	return o.MaxValueSize
}

func (o LoadOptions) envTransform() EnvTransformFunc {
	if o.EnvTransform != nil {
		return o.EnvTransform
	}
	return RelaxedEnvTransform(o.EnvPrefix)
}

// RelaxedEnvTransform maps a key to its environment variable: dots become underscores,
// dashes are dropped and the result is upper-cased.
// "camunda.data.backup.s3.bucket-name" -> "CAMUNDA_DATA_BACKUP_S3_BUCKETNAME".
// A camelCase key ("...s3.bucketName") maps to the same variable.
func RelaxedEnvTransform(prefix string) EnvTransformFunc {
	return func(key string) string {
		env := strings.ReplaceAll(key, ".", "_")
		env = strings.ReplaceAll(env, "-", "")
		env = strings.ToUpper(env)
		if prefix != "" {
			env = prefix + env
		}
		return env
	}
}

// readConfigFile reads and parses a TOML, YAML or JSON configuration file into a nested map.
// format may be empty or "auto" to detect it from the extension or content.
func readConfigFile(path, format string) (map[string]any, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat config file '%s': %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path '%s' is a directory", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file '%s': %w", path, err)
	}
	defer file.Close()

	fileData, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if format == "" || format == "auto" {
		format = detectFileFormat(path)
		if format == "" {
			format = detectFormatFromContent(fileData)
		}
	}

	fileConfig, err := parseConfigData(fileData, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}

	return fileConfig, nil
}

// parseConfigData decodes data in the given format
func parseConfigData(data []byte, format string) (map[string]any, error) {
	fileConfig := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("invalid TOML: %w", err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&fileConfig); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unable to determine config format")
	}
	return fileConfig, nil
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) string {
	// Try JSON first (strict format)
	var jsonTest map[string]any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	// TOML before YAML: most TOML documents are not YAML mappings, while key = value lines
	// would otherwise be read by YAML as plain scalars
	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	var yamlTest map[string]any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	return ""
}

// parseArgs processes command-line arguments into a flat key -> raw value map.
// Accepted forms: "--key=value", "--key value" and a bare "--flag" (read as "true").
// Non-flag arguments are skipped; a lone "--" is ignored.
func parseArgs(args []string) (map[string]string, error) {
	result := make(map[string]string)
	i := 0
	for i < len(args) {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			i++
			continue
		}

		argContent := strings.TrimPrefix(arg, "--")
		if argContent == "" {
			i++
			continue
		}

		var keyPath, valueStr string

		if k, v, found := strings.Cut(argContent, "="); found {
			keyPath, valueStr = k, v
			i++
		} else {
			keyPath = argContent
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
				valueStr = "true"
				i++
			} else {
				valueStr = args[i+1]
				i += 2
			}
		}

		if keyPath == "" {
			// Skip invalid flags like --=value
			continue
		}

		if !isValidKey(keyPath) {
			return nil, fmt.Errorf("invalid command-line key %q", keyPath)
		}

		// Always store as a string, coercion happens at binding time
		result[keyPath] = valueStr
	}

	return result, nil
}

// checkValueSizes rejects the first value longer than limit bytes
func checkValueSizes(values map[string]string, limit int) error {
	for key, value := range values {
		if len(value) > limit {
			return fmt.Errorf("%w: %s", ErrValueSize, key)
		}
	}
	return nil
}
