// FILE: lixenwraith/unicfg/decode_test.go
package unicfg

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStore struct {
	Store    string        `toml:"store"`
	Interval time.Duration `toml:"interval"`
	Enabled  bool          `toml:"enabled"`
	Count    int           `toml:"count"`
	Files    []string      `toml:"files"`
	IDs      []int64       `toml:"ids"`
	S3       struct {
		Bucket string `toml:"bucket_name"`
		Region string `toml:"region"`
	} `toml:"s3"`
}

func defaultTestStore() testStore {
	s := testStore{
		Store:    "NONE",
		Interval: time.Hour,
		Count:    3,
		Files:    []string{"lost+found"},
		IDs:      []int64{1},
	}
	s.S3.Region = "eu-west-1"
	return s
}

var testTable = Table{
	{Key: "app.store", Legacy: []string{"old.store"}, Path: "store", Kind: KindEnum, Enum: []string{"NONE", "S3", "AZURE"}},
	{Key: "app.interval", Legacy: []string{"old.interval"}, Path: "interval", Kind: KindDuration},
	{Key: "app.enabled", Legacy: []string{"old.enabled"}, Path: "enabled", Kind: KindBool},
	{Key: "app.count", Legacy: []string{"old.count"}, Path: "count", Kind: KindInt64},
	{Key: "app.files", Legacy: []string{"old.files"}, Path: "files", Kind: KindStrings},
	{Key: "app.ids", Legacy: []string{"old.ids", "older.ids"}, Path: "ids", Kind: KindInt64s},
	{Key: "app.s3.bucket-name", Legacy: []string{"old.s3.bucketName"}, Path: "s3.bucket_name", Kind: KindString},
	{Key: "app.s3.region", Legacy: []string{"old.s3.region"}, Path: "s3.region", Kind: KindString},
}

func bindTest(t *testing.T, values map[string]string) (testStore, Report, error) {
	t.Helper()
	target := defaultTestStore()
	report, err := NewBinder(resolverFor(values)).Bind(testTable, &target)
	return target, report, err
}

func TestBind(t *testing.T) {
	t.Run("CanonicalKeys", func(t *testing.T) {
		got, report, err := bindTest(t, map[string]string{
			"app.store":          "azure",
			"app.interval":       "10m",
			"app.enabled":        "true",
			"app.count":          "7",
			"app.files":          "file1,file2,file3",
			"app.ids":            "10,20",
			"app.s3.bucket-name": "backups",
		})
		require.NoError(t, err)
		assert.Equal(t, "AZURE", got.Store)
		assert.Equal(t, 600*time.Second, got.Interval)
		assert.True(t, got.Enabled)
		assert.Equal(t, 7, got.Count)
		assert.Equal(t, []string{"file1", "file2", "file3"}, got.Files)
		assert.Equal(t, []int64{10, 20}, got.IDs)
		assert.Equal(t, "backups", got.S3.Bucket)
		assert.Equal(t, "eu-west-1", got.S3.Region, "absent key keeps default")

		require.Len(t, report, len(testTable))
		assert.Empty(t, report.Legacy())
	})

	t.Run("LegacyKeys", func(t *testing.T) {
		got, report, err := bindTest(t, map[string]string{
			"old.interval":      "15s",
			"older.ids":         "30,40",
			"old.s3.bucketName": "legacy-bucket",
		})
		require.NoError(t, err)
		assert.Equal(t, 15*time.Second, got.Interval)
		assert.Equal(t, []int64{30, 40}, got.IDs)
		assert.Equal(t, "legacy-bucket", got.S3.Bucket)

		legacy := report.Legacy()
		require.Len(t, legacy, 3)
		assert.Equal(t, "older.ids", legacy[1].Outcome.Key)
		assert.Equal(t, "app.ids", legacy[1].Mapping.Key)
	})

	t.Run("CanonicalBeatsMalformedLegacy", func(t *testing.T) {
		got, _, err := bindTest(t, map[string]string{
			"app.interval": "10m",
			"old.interval": "not-a-duration",
		})
		require.NoError(t, err)
		assert.Equal(t, 10*time.Minute, got.Interval)
	})

	t.Run("NothingSetKeepsDefaults", func(t *testing.T) {
		got, report, err := bindTest(t, map[string]string{})
		require.NoError(t, err)
		assert.Equal(t, defaultTestStore(), got)
		for _, res := range report {
			assert.Equal(t, OriginDefault, res.Outcome.Origin)
		}
	})

	t.Run("ListReplacesDefault", func(t *testing.T) {
		got, _, err := bindTest(t, map[string]string{"app.ids": "5"})
		require.NoError(t, err)
		assert.Equal(t, []int64{5}, got.IDs)
	})

	t.Run("BlankListClears", func(t *testing.T) {
		got, _, err := bindTest(t, map[string]string{"app.files": ""})
		require.NoError(t, err)
		assert.Empty(t, got.Files)
	})
}

func TestBindFailures(t *testing.T) {
	t.Run("AllErrorsReported", func(t *testing.T) {
		target := defaultTestStore()
		before := defaultTestStore()

		_, err := NewBinder(resolverFor(map[string]string{
			"app.store":    "dropbox",
			"old.interval": "-5s",
			"app.enabled":  "yes",
			"app.ids":      "1,x",
			"app.count":    "9",
		})).Bind(testTable, &target)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBindingFailed)
		assert.ErrorIs(t, err, ErrInvalidValue)
		assert.Equal(t, before, target, "target must be untouched on failure")

		failures := BindingErrors(err)
		require.Len(t, failures, 4)
		keys := make([]string, len(failures))
		for i, be := range failures {
			keys[i] = be.Key
		}
		assert.Equal(t, []string{"app.store", "old.interval", "app.enabled", "app.ids"}, keys)

		assert.Equal(t, "interval", failures[1].Path)
		assert.Equal(t, "-5s", failures[1].Raw)
		assert.Equal(t, KindDuration, failures[1].Kind)

		var be *BindingError
		require.True(t, errors.As(err, &be))
		assert.Contains(t, be.Error(), "app.store")
	})

	t.Run("InvalidTarget", func(t *testing.T) {
		binder := NewBinder(resolverFor(nil))
		var nilPtr *testStore
		for _, target := range []any{testStore{}, nilPtr, new(int), nil} {
			_, err := binder.Bind(testTable, target)
			assert.Error(t, err)
		}
	})

	t.Run("InvalidMapping", func(t *testing.T) {
		target := defaultTestStore()
		bad := Table{{Key: "app.count", Path: "count", Kind: KindDuration}}
		_, err := NewBinder(resolverFor(map[string]string{"app.count": "1s"})).Bind(bad, &target)
		assert.ErrorIs(t, err, ErrInvalidMapping)
	})
}

// TestBindIdempotent checks that repeated binding of an unchanged view is identical
func TestBindIdempotent(t *testing.T) {
	values := map[string]string{
		"app.store":    "s3",
		"old.interval": "10m",
		"app.ids":      "10,20",
		"older.ids":    "99",
		"app.files":    "a,b",
	}
	first, _, err := bindTest(t, values)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, _, err := bindTest(t, values)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	// Re-binding into an already bound target is a fixed point too
	target := first
	require.NoError(t, Bind(NewProperties(NewMapSource("test", values)), testTable, &target))
	assert.Equal(t, first, target)
}
