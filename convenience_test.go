// FILE: lixenwraith/unicfg/convenience_test.go
package unicfg

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestQuickFunctions tests the convenience functions
func TestQuickFunctions(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "quick.toml")
	require.NoError(t, os.WriteFile(configFile, []byte("[old]\ninterval = \"15s\"\n"), 0644))

	t.Run("Quick", func(t *testing.T) {
		t.Setenv("QUICKTEST_APP_STORE", "azure")

		props, err := Quick("QUICKTEST_", configFile)
		require.NoError(t, err)

		v, _ := props.Lookup("app.store")
		assert.Equal(t, "azure", v)
		v, _ = props.Lookup("old.interval")
		assert.Equal(t, "15s", v)
	})

	t.Run("QuickMissingFile", func(t *testing.T) {
		props, err := Quick("QUICKTEST_", filepath.Join(dir, "absent.toml"))
		assert.ErrorIs(t, err, ErrConfigNotFound)
		assert.NotNil(t, props)
	})

	t.Run("QuickCustom", func(t *testing.T) {
		opts := DefaultLoadOptions()
		opts.Sources = []SourceKind{SourceFile}
		props, err := QuickCustom(opts, configFile)
		require.NoError(t, err)
		assert.Equal(t, []string{"file:" + configFile}, props.Sources())
	})

	t.Run("MustQuick", func(t *testing.T) {
		assert.NotPanics(t, func() {
			MustQuick("QUICKTEST_", filepath.Join(dir, "absent.toml"))
		})

		broken := filepath.Join(dir, "broken.toml")
		require.NoError(t, os.WriteFile(broken, []byte("[[["), 0644))
		assert.Panics(t, func() {
			MustQuick("QUICKTEST_", broken)
		})
	})
}

func TestTableFlagSet(t *testing.T) {
	fs := testTable.FlagSet("store")
	require.NoError(t, fs.Parse([]string{"--app.store=azure", "--app.ids", "10,20"}))

	flag := fs.Lookup("app.store")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Usage, "AZURE")
	assert.Contains(t, fs.Lookup("app.ids").Usage, "replaces old.ids, older.ids")

	target := defaultTestStore()
	props := NewProperties(NewFlagSetSource(fs))
	require.NoError(t, Bind(props, testTable, &target))
	assert.Equal(t, "AZURE", target.Store)
	assert.Equal(t, []int64{10, 20}, target.IDs)
	assert.Equal(t, time.Hour, target.Interval, "untouched flag stays absent")
}

func TestRequire(t *testing.T) {
	props := NewProperties(NewMapSource("m", map[string]string{"a": "1"}))
	assert.NoError(t, props.Require("a"))

	err := props.Require("a", "b", "c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b, c")
}

func TestDebugAndDump(t *testing.T) {
	t.Run("Debug", func(t *testing.T) {
		props := NewProperties(
			NewMapSource("cli", map[string]string{"app.store": "s3"}),
			NewMapSource("default", map[string]string{"app.store": "none"}),
		)
		out := props.Debug("app.store", "app.missing")
		assert.Contains(t, out, "Precedence: [cli default]")
		assert.Contains(t, out, `cli: "s3" (effective)`)
		assert.Contains(t, out, `default: "none"`)
		assert.Contains(t, out, "(absent)")
	})

	t.Run("Dump", func(t *testing.T) {
		target := defaultTestStore()
		target.S3.Bucket = "backups"

		var buf bytes.Buffer
		require.NoError(t, Dump(&buf, target))
		assert.True(t, strings.Contains(buf.String(), `bucket_name = "backups"`))

		var decoded map[string]any
		_, err := toml.Decode(buf.String(), &decoded)
		require.NoError(t, err)
		assert.Equal(t, "NONE", decoded["store"])
	})
}
