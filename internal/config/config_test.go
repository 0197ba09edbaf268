package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, "ipfs", cfg.TransferBackend)
	require.Equal(t, "http://127.0.0.1:5001", cfg.IPFSAPIURL)
	require.Equal(t, "socialx-avatars", cfg.MinioBucket)
	require.Equal(t, 10*time.Second, cfg.DialTimeout)
	require.Empty(t, cfg.RelayURL)
}

func TestParseEnv_Overlays(t *testing.T) {
	t.Setenv("SOCIALX_RELAY_URL", "ws://relay.example:8765/graph")
	t.Setenv("SOCIALX_TRANSFER_BACKEND", "minio")
	t.Setenv("SOCIALX_MINIO_USE_SSL", "true")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	require.Equal(t, "ws://relay.example:8765/graph", cfg.RelayURL)
	require.Equal(t, "minio", cfg.TransferBackend)
	require.True(t, cfg.MinioUseSSL)
	// untouched by env
	require.Equal(t, "http://127.0.0.1:5001", cfg.IPFSAPIURL)
}

func TestParseJson_Overlays(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "conf.json")
	data, err := json.Marshal(JsonConfig{
		RelayURL:           "ws://relay.example:8765/graph",
		Alias:              "alice",
		DialTimeoutSeconds: 3,
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	os.Args = []string{"testbin", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, "ws://relay.example:8765/graph", cfg.RelayURL)
	require.Equal(t, "alice", cfg.Alias)
	require.Equal(t, 3*time.Second, cfg.DialTimeout)
	// zero-valued JSON fields keep defaults
	require.Equal(t, "ipfs", cfg.TransferBackend)
}

func TestParseJson_NoFileFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, "ipfs", cfg.TransferBackend)
}

func TestParseFlags_Overlays(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-r", "ws://flag.example/graph", "-u", "bob", "-ignored"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	require.Equal(t, "ws://flag.example/graph", cfg.RelayURL)
	require.Equal(t, "bob", cfg.Alias)
}
