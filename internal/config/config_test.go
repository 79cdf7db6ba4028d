package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultInitialDepth, cfg.Parser.InitialDepth)
	assert.Equal(t, DefaultFieldBudget, cfg.Parser.FieldBudget)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    Config
		wantErr string
	}{
		{
			name: "full",
			yaml: `
parser:
  initial_depth: 3
  field_budget: 40
logging:
  level: debug
  development: true
`,
			want: Config{
				Parser:  Parser{InitialDepth: 3, FieldBudget: 40},
				Logging: Logging{Level: "debug", Development: true},
			},
		},
		{
			name: "defaults",
			yaml: `logging: {development: true}`,
			want: Config{
				Parser:  Parser{InitialDepth: DefaultInitialDepth, FieldBudget: DefaultFieldBudget},
				Logging: Logging{Level: DefaultLogLevel, Development: true},
			},
		},
		{
			name:    "negative depth",
			yaml:    `parser: {initial_depth: -1}`,
			wantErr: "initial_depth",
		},
		{
			name:    "negative budget",
			yaml:    `parser: {field_budget: -5}`,
			wantErr: "field_budget",
		},
		{
			name:    "malformed",
			yaml:    `parser: [`,
			wantErr: "failed to parse config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, *cfg)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datamapper.yaml")
	require.NoError(t, os.WriteFile(path, []byte("parser:\n  field_budget: 7\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Parser.FieldBudget)
	assert.Equal(t, DefaultInitialDepth, cfg.Parser.InitialDepth)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "failed to read config file")
}
