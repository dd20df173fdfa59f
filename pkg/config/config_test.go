package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5.0, cfg.Tolerance)
	assert.Equal(t, 2, cfg.OpenIterations)
	assert.Equal(t, 3, cfg.CloseIterations)
	assert.Equal(t, 3, cfg.GridIterations)
	assert.Equal(t, "NFC", cfg.UnicodeForm)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte("tolerance: 3.5\nscale: 2\nworkers: 4\nunicode_form: NFKC\n"))
	require.NoError(t, err)

	assert.Equal(t, 3.5, cfg.Tolerance)
	assert.Equal(t, 2.0, cfg.Scale)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "NFKC", cfg.UnicodeForm)
	assert.Equal(t, 2, cfg.OpenIterations, "unset keys keep defaults")

	ro := cfg.RasterOptions()
	assert.Equal(t, 2.0, ro.Scale)
	assert.Equal(t, 3, ro.GridIterations)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		invalid bool
	}{
		{"unknown key", "tolerence: 3\n", false},
		{"bad syntax", "tolerance: [\n", false},
		{"zero tolerance", "tolerance: 0\n", true},
		{"negative scale", "scale: -1\n", true},
		{"no workers", "workers: 0\n", true},
		{"negative iterations", "grid_iterations: -2\n", true},
		{"unknown form", "unicode_form: NFX\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalid))
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pdftable.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\nunicode_form: \"\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "", cfg.UnicodeForm)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
