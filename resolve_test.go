// FILE: lixenwraith/unicfg/resolve_test.go
package unicfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	newKey     = "camunda.data.backup.s3.bucket-name"
	legacyKey  = "zeebe.broker.data.backup.s3.bucketName"
	legacyKey2 = "zeebe.broker.data.backup.s3.bucket-name"
)

func resolverFor(values map[string]string, opts ...ResolverOption) *Resolver {
	return NewResolver(NewProperties(NewMapSource("test", values)), opts...)
}

// TestResolvePrecedence covers the four presence combinations of canonical and legacy keys
func TestResolvePrecedence(t *testing.T) {
	t.Run("OnlyCanonical", func(t *testing.T) {
		out := resolverFor(map[string]string{newKey: "new"}).Resolve(newKey, legacyKey)
		assert.Equal(t, Outcome{Key: newKey, Raw: "new", Origin: OriginNew, Source: "test"}, out)
		assert.True(t, out.Present())
	})

	t.Run("OnlyLegacy", func(t *testing.T) {
		out := resolverFor(map[string]string{legacyKey: "old"}).Resolve(newKey, legacyKey)
		assert.Equal(t, Outcome{Key: legacyKey, Raw: "old", Origin: OriginLegacy, Source: "test"}, out)
	})

	t.Run("BothCanonicalWins", func(t *testing.T) {
		out := resolverFor(map[string]string{newKey: "new", legacyKey: "old"}).Resolve(newKey, legacyKey)
		assert.Equal(t, OriginNew, out.Origin)
		assert.Equal(t, "new", out.Raw)
	})

	t.Run("Neither", func(t *testing.T) {
		out := resolverFor(map[string]string{"unrelated": "x"}).Resolve(newKey, legacyKey)
		assert.Equal(t, Outcome{Origin: OriginDefault}, out)
		assert.False(t, out.Present())
		assert.Empty(t, out.Key)
		assert.Empty(t, out.Raw)
	})

	t.Run("EmptyCanonicalValueStillWins", func(t *testing.T) {
		out := resolverFor(map[string]string{newKey: "", legacyKey: "old"}).Resolve(newKey, legacyKey)
		assert.Equal(t, OriginNew, out.Origin)
		assert.Equal(t, "", out.Raw)
	})

	t.Run("NoLegacyKeys", func(t *testing.T) {
		out := resolverFor(map[string]string{newKey: "new"}).Resolve(newKey)
		assert.Equal(t, OriginNew, out.Origin)
	})
}

func TestResolveMultipleLegacyKeys(t *testing.T) {
	t.Run("FirstDeclaredWins", func(t *testing.T) {
		r := resolverFor(map[string]string{legacyKey: "camel", legacyKey2: "kebab"})
		out := r.Resolve(newKey, legacyKey, legacyKey2)
		assert.Equal(t, legacyKey, out.Key)
		assert.Equal(t, "camel", out.Raw)

		out = r.Resolve(newKey, legacyKey2, legacyKey)
		assert.Equal(t, legacyKey2, out.Key)
	})

	t.Run("LaterAliasUsedWhenEarlierAbsent", func(t *testing.T) {
		out := resolverFor(map[string]string{legacyKey2: "kebab"}).Resolve(newKey, legacyKey, legacyKey2)
		assert.Equal(t, legacyKey2, out.Key)
		assert.Equal(t, OriginLegacy, out.Origin)
	})
}

// TestResolveAcrossSources checks that canonical presence is judged over the whole view
func TestResolveAcrossSources(t *testing.T) {
	cli := NewMapSource("cli", map[string]string{legacyKey: "from-cli"})
	defaults := NewMapSource("default", map[string]string{newKey: "from-default"})
	r := NewResolver(NewProperties(cli, defaults))

	out := r.Resolve(newKey, legacyKey)
	assert.Equal(t, OriginNew, out.Origin)
	assert.Equal(t, "from-default", out.Raw)
	assert.Equal(t, "default", out.Source)

	out = r.ResolveMapping(Mapping{Key: "other.key", Legacy: []string{legacyKey}})
	assert.Equal(t, "cli", out.Source)
}

func TestResolveLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	t.Run("LegacyInUse", func(t *testing.T) {
		resolverFor(map[string]string{legacyKey: "old"}, WithLogger(logger)).Resolve(newKey, legacyKey)
		entries := logs.TakeAll()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
			assert.Equal(t, "deprecated property in use", entries[0].Message)
			assert.Equal(t, legacyKey, entries[0].ContextMap()["key"])
			assert.Equal(t, newKey, entries[0].ContextMap()["replacement"])
		}
	})

	t.Run("LegacyIgnored", func(t *testing.T) {
		resolverFor(map[string]string{newKey: "new", legacyKey: "old"}, WithLogger(logger)).Resolve(newKey, legacyKey)
		entries := logs.TakeAll()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
			assert.Contains(t, entries[0].Message, "deprecated property ignored")
		}
	})

	t.Run("ShadowedAlias", func(t *testing.T) {
		resolverFor(map[string]string{legacyKey: "a", legacyKey2: "b"}, WithLogger(logger)).Resolve(newKey, legacyKey, legacyKey2)
		entries := logs.TakeAll()
		if assert.Len(t, entries, 2) {
			assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
			assert.Equal(t, legacyKey2, entries[1].ContextMap()["key"])
		}
	})

	t.Run("CanonicalOnlyIsQuiet", func(t *testing.T) {
		resolverFor(map[string]string{newKey: "new"}, WithLogger(logger)).Resolve(newKey, legacyKey)
		assert.Zero(t, logs.Len())
	})
}

func TestOriginString(t *testing.T) {
	assert.Equal(t, "new", OriginNew.String())
	assert.Equal(t, "legacy", OriginLegacy.String())
	assert.Equal(t, "default", OriginDefault.String())
}
