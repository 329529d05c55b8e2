package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Missing(t *testing.T) {
	conf, err := Load(filepath.Join(t.TempDir(), "trasm.json"))
	require.NoError(t, err)
	require.Equal(t, Default(), conf)
}

func TestLoad_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trasm.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"listingOptions": "fa", "webAddress": ":9000"}`), 0644))

	conf, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "fa", conf.ListingOptions)
	require.Equal(t, ":9000", conf.WebAddress)
	require.Equal(t, ":2035", conf.LanguageServerAddress)
	require.Equal(t, ".flst", conf.FirstPassSuffix)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trasm.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"title": `), 0644))

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing config")
}
