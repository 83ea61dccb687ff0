package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IlikeChooros/go-minimax/pkg/bench"
	"github.com/IlikeChooros/go-minimax/pkg/minimax"
	"github.com/IlikeChooros/go-minimax/pkg/ttt"
)

func TestDefaultConfigIsValid(t *testing.T) {
	config := DefaultConfig
	require.NoError(t, config.Validate())
	assert.Equal(t, zerolog.InfoLevel, config.Level())
	assert.Equal(t, bench.FirstMoveRandom, config.FirstMovePolicy())

	engine := minimax.New(config.EngineOptions()...)
	assert.True(t, engine.Pruning())
	assert.False(t, engine.Parallel())
	assert.Equal(t, 4, engine.Limits().Depth)
	assert.Equal(t, minimax.ScoreFixed, engine.Scoring())
}

func TestLoadFileMissing(t *testing.T) {
	config, err := LoadFile(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig, *config)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("size: 5\nengine:\n  variant: parallel\n  workers: 3\n  scoring: depth-weighted\nbench:\n  first_move: alternate\nlog_level: debug\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	config, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5, config.Size)
	assert.Equal(t, 4, config.Engine.Depth)
	assert.Equal(t, uint(100), config.Bench.Games)
	assert.Equal(t, zerolog.DebugLevel, config.Level())
	assert.Equal(t, bench.FirstMoveAlternate, config.FirstMovePolicy())

	engine := minimax.New(config.EngineOptions()...)
	assert.True(t, engine.Parallel())
	assert.Equal(t, 3, engine.Limits().NThreads)
	assert.Equal(t, minimax.ScoreDepthWeighted, engine.Scoring())
}

func TestLoadFileInvalid(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		cause error
	}{
		{"size too small", "size: 2\n", ttt.ErrInvalidSize},
		{"size too big", "size: 11\n", ttt.ErrInvalidSize},
		{"negative depth", "engine:\n  depth: -1\n", nil},
		{"negative workers", "engine:\n  workers: -2\n", nil},
		{"unknown variant", "engine:\n  variant: mcts\n", minimax.ErrUnknownVariant},
		{"unknown scoring", "engine:\n  scoring: random\n", minimax.ErrUnknownScoring},
		{"unknown first move", "bench:\n  first_move: loser\n", bench.ErrUnknownFirstMove},
		{"unknown log level", "log_level: loud\n", nil},
		{"malformed", "size: [\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0o600))

			_, err := LoadFile(path)
			var invalid *InvalidConfig
			require.ErrorAs(t, err, &invalid)
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}
		})
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	config := DefaultConfig
	config.Size = 7
	config.Engine.Variant = minimax.VariantAlphaBeta.String()
	require.NoError(t, config.SaveFile(path, 0o600))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config, *loaded)
}
