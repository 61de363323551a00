package tempuscache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfigValidation verifies that a non-positive capacity, TTL, or
// cleanup interval is rejected at construction with a ConfigError.
func TestConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		opts []Option[string, string]
	}{
		{
			name: "zero capacity",
			opts: []Option[string, string]{
				WithCapacity[string, string](0),
				WithTTL[string, string](time.Second),
				WithCleanupInterval[string, string](time.Second),
			},
		},
		{
			name: "negative capacity",
			opts: []Option[string, string]{
				WithCapacity[string, string](-1),
				WithTTL[string, string](time.Second),
				WithCleanupInterval[string, string](time.Second),
			},
		},
		{
			name: "zero ttl",
			opts: []Option[string, string]{
				WithCapacity[string, string](10),
				WithTTL[string, string](0),
				WithCleanupInterval[string, string](time.Second),
			},
		},
		{
			name: "zero cleanup interval",
			opts: []Option[string, string]{
				WithCapacity[string, string](10),
				WithTTL[string, string](time.Second),
				WithCleanupInterval[string, string](0),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New[string, string](tc.opts...)
			require.Error(t, err)
			var cfgErr *ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestValidConfigConstructsSuccessfully(t *testing.T) {
	c, err := New[string, string](
		WithCapacity[string, string](10),
		WithTTL[string, string](time.Minute),
		WithCleanupInterval[string, string](time.Second),
	)
	require.NoError(t, err)
	defer c.Shutdown()
	assert.Equal(t, 0, c.Size())
}

func TestRecordStatsDisabledIsNoop(t *testing.T) {
	c, err := New[string, string](
		WithCapacity[string, string](10),
		WithTTL[string, string](time.Minute),
		WithCleanupInterval[string, string](time.Hour),
		WithRecordStats[string, string](false),
	)
	require.NoError(t, err)
	defer c.Shutdown()

	c.Put("a", "1")
	c.Get("a")
	c.Get("missing")

	snap := c.Stats().Snapshot()
	assert.Zero(t, snap.Hits)
	assert.Zero(t, snap.Misses)
	assert.Zero(t, snap.Puts)
}
