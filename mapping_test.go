// FILE: lixenwraith/unicfg/mapping_test.go
package unicfg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappingValidate(t *testing.T) {
	valid := Mapping{Key: "a.b", Legacy: []string{"x.b", "y.b"}, Path: "b", Kind: KindString}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mapping Mapping
		want    string
	}{
		{"EmptyKey", Mapping{Path: "b"}, "canonical key is empty"},
		{"TrailingDot", Mapping{Key: "a.b.", Path: "b"}, "ends with a separator"},
		{"TrailingDash", Mapping{Key: "a.b-", Path: "b"}, "ends with a separator"},
		{"TrailingUnderscore", Mapping{Key: "a.b_", Path: "b"}, "ends with a separator"},
		{"EmptyLegacy", Mapping{Key: "a.b", Legacy: []string{""}, Path: "b"}, "empty legacy key"},
		{"LegacyEqualsKey", Mapping{Key: "a.b", Legacy: []string{"a.b"}, Path: "b"}, "equals canonical"},
		{"DuplicateLegacy", Mapping{Key: "a.b", Legacy: []string{"x.b", "x.b"}, Path: "b"}, "duplicate legacy"},
		{"BadPath", Mapping{Key: "a.b", Path: "b..c"}, "invalid field path"},
		{"UnknownKind", Mapping{Key: "a.b", Path: "b", Kind: Kind(42)}, "unknown kind"},
		{"EnumWithoutLiterals", Mapping{Key: "a.b", Path: "b", Kind: KindEnum}, "without literals"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mapping.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidMapping)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTableValidate(t *testing.T) {
	require.NoError(t, testTable.Validate())

	dupKey := Table{
		{Key: "a.b", Path: "b"},
		{Key: "a.b", Path: "c"},
	}
	assert.ErrorContains(t, dupKey.Validate(), "declared twice")

	dupPath := Table{
		{Key: "a.b", Path: "b"},
		{Key: "a.c", Path: "b"},
	}
	assert.ErrorContains(t, dupPath.Validate(), `field path "b" declared twice`)

	assert.Equal(t, []string{"a.b", "a.c"}, dupPath.Keys())
	assert.Contains(t, testTable.Keys(), "older.ids")
}

func TestCheckTable(t *testing.T) {
	type target struct {
		Name     string        `toml:"name"`
		Flag     bool          `toml:"flag"`
		Wait     time.Duration `toml:"wait"`
		Count    int64         `toml:"count"`
		Small    int           `toml:"small"`
		Tags     []string      `toml:"tags"`
		IDs      []int64       `toml:"ids"`
		Untagged string
		Skipped  string `toml:"-"`
		Nested   struct {
			Leaf string `toml:"leaf"`
		} `toml:"nested"`
	}

	t.Run("Fits", func(t *testing.T) {
		table := Table{
			{Key: "t.name", Path: "name", Kind: KindString},
			{Key: "t.mode", Path: "nested.leaf", Kind: KindEnum, Enum: []string{"A"}},
			{Key: "t.flag", Path: "flag", Kind: KindBool},
			{Key: "t.wait", Path: "wait", Kind: KindDuration},
			{Key: "t.count", Path: "count", Kind: KindInt64},
			{Key: "t.small", Path: "small", Kind: KindInt64},
			{Key: "t.tags", Path: "tags", Kind: KindStrings},
			{Key: "t.ids", Path: "ids", Kind: KindInt64s},
			{Key: "t.untagged", Path: "Untagged", Kind: KindString},
		}
		assert.NoError(t, CheckTable(table, target{}))
		assert.NoError(t, CheckTable(table, &target{}))
	})

	t.Run("Mismatches", func(t *testing.T) {
		for _, m := range []Mapping{
			{Key: "t.wait", Path: "wait", Kind: KindInt64},
			{Key: "t.count", Path: "count", Kind: KindDuration},
			{Key: "t.flag", Path: "flag", Kind: KindString},
			{Key: "t.tags", Path: "tags", Kind: KindInt64s},
			{Key: "t.ids", Path: "ids", Kind: KindStrings},
			{Key: "t.missing", Path: "missing", Kind: KindString},
			{Key: "t.skipped", Path: "-", Kind: KindString},
			{Key: "t.skipped", Path: "Skipped", Kind: KindString},
			{Key: "t.deep", Path: "name.leaf", Kind: KindString},
		} {
			err := CheckTable(Table{m}, target{})
			assert.ErrorIs(t, err, ErrInvalidMapping, m.Path)
		}
	})

	t.Run("NonStructTarget", func(t *testing.T) {
		assert.ErrorIs(t, CheckTable(testTable, 5), ErrInvalidMapping)
		assert.ErrorIs(t, CheckTable(testTable, nil), ErrInvalidMapping)
	})
}

func TestMappingRedact(t *testing.T) {
	plain := Mapping{Key: "app.user", Path: "user", Kind: KindString}
	assert.Equal(t, "admin", plain.Redact("admin"))

	secret := Mapping{Key: "app.password", Path: "password", Kind: KindString, Secret: true}
	assert.Equal(t, RedactedValue, secret.Redact("hunter2"))
	assert.Equal(t, "", secret.Redact(""))
}
