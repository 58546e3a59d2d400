package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jba.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverlaysDefinedKeys(t *testing.T) {
	path := writeConfig(t, `
format = "JSON"
wide_slots = true
max_size = "1MiB"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	want := Default()
	want.Format = "json"
	want.WideSlots = true
	want.MaxSize = 1 << 20
	require.Equal(t, want, cfg)
}

func TestLoadMaxSizeInteger(t *testing.T) {
	cfg, err := Load(writeConfig(t, "max_size = 4096\n"))
	require.NoError(t, err)
	require.Equal(t, int64(4096), cfg.MaxSize)
}

func TestLoadAllKeys(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
format = "line"
wide_slots = false
extended_tags = true
max_size = "64KiB"
name_width = 30
verbosity = 2
log_file = " jba.log "
`))
	require.NoError(t, err)
	require.Equal(t, Config{
		Format:       "line",
		ExtendedTags: true,
		MaxSize:      64 << 10,
		NameWidth:    30,
		Verbosity:    2,
		LogFile:      "jba.log",
	}, cfg)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "format = "},
		{"unknown format", `format = "xml"`},
		{"unknown key", `colour = "red"`},
		{"bad size", `max_size = "lots"`},
		{"zero size", `max_size = 0`},
		{"zero width", `name_width = 0`},
		{"negative verbosity", `verbosity = -1`},
		{"size type", `max_size = true`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestLoadDefaultFileAbsent(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadDefaultFilePresent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte(`format = "yaml"`), 0o644))
	chdir(t, dir)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "yaml", cfg.Format)
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"16MiB":  16 << 20,
		"16 MiB": 16 << 20,
		"1kB":    1000,
		"512":    512,
		" 2KiB ": 2048,
	}
	for in, want := range tests {
		got, err := ParseSize(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseSize("sixteen")
	require.Error(t, err)
}

func TestDecodeOptions(t *testing.T) {
	cfg := Default()
	require.Len(t, cfg.DecodeOptions(), 1)

	cfg.WideSlots = true
	cfg.ExtendedTags = true
	require.Len(t, cfg.DecodeOptions(), 3)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
