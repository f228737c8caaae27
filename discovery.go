// FILE: lixenwraith/unicfg/discovery.go
package unicfg

import (
	"os"
	"path/filepath"
	"strings"
)

// FileDiscoveryOptions configures automatic config file discovery
type FileDiscoveryOptions struct {
	// Base name of config file (without extension)
	Name string

	// Extensions to try (in order)
	Extensions []string

	// Custom search paths, searched before the defaults
	Paths []string

	// Environment variable holding an explicit path
	EnvVar string

	// CLI flag holding an explicit path (e.g., "--config-file")
	CLIFlag string

	// Whether to search in XDG config directories
	UseXDG bool

	// Whether to search in current directory
	UseCurrentDir bool
}

// DefaultDiscoveryOptions returns the discovery settings for appName
func DefaultDiscoveryOptions(appName string) FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Name:          appName,
		Extensions:    []string{".toml", ".yaml", ".yml", ".json"},
		EnvVar:        strings.ToUpper(strings.ReplaceAll(appName, "-", "_")) + "_CONFIG_FILE",
		CLIFlag:       "--config-file",
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// WithFileDiscovery locates the configuration file. An explicit path from the CLI flag
// or environment variable wins over searching; finding nothing is not an error.
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	if path := discoverFile(opts, b.args, b.getenv); path != "" {
		b.file = path
	}
	return b
}

func (b *Builder) getenv(name string) string {
	if b.environ == nil {
		return os.Getenv(name)
	}
	prefix := name + "="
	for _, e := range b.environ {
		if strings.HasPrefix(e, prefix) {
			return strings.TrimPrefix(e, prefix)
		}
	}
	return ""
}

func discoverFile(opts FileDiscoveryOptions, args []string, getenv func(string) string) string {
	if opts.CLIFlag != "" {
		for i, arg := range args {
			if arg == opts.CLIFlag && i+1 < len(args) {
				return args[i+1]
			}
			if strings.HasPrefix(arg, opts.CLIFlag+"=") {
				return strings.TrimPrefix(arg, opts.CLIFlag+"=")
			}
		}
	}

	if opts.EnvVar != "" {
		if path := getenv(opts.EnvVar); path != "" {
			return path
		}
	}

	searchPaths := append([]string{}, opts.Paths...)
	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}
	if opts.UseXDG {
		searchPaths = append(searchPaths, xdgConfigPaths(opts.Name, getenv)...)
	}

	for _, dir := range searchPaths {
		for _, ext := range opts.Extensions {
			path := filepath.Join(dir, opts.Name+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}
	return ""
}

// xdgConfigPaths returns XDG-compliant config search paths
func xdgConfigPaths(appName string, getenv func(string) string) []string {
	var paths []string

	if xdgHome := getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home := getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	if xdgDirs := getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", appName),
		)
	}

	return paths
}
