// Package config loads the client's runtime settings. Sources are
// layered: built-in defaults, then a JSON file (-c/-config), then
// environment variables, then command-line flags; later sources win.
package config

import "time"

// Config holds runtime settings for the SocialX client.
//
// An empty RelayURL selects the in-process store (offline demo mode).
// TransferBackend picks the avatar upload backend: "ipfs" or "minio".
type Config struct {
	RelayURL        string        `env:"SOCIALX_RELAY_URL"`
	TransferBackend string        `env:"SOCIALX_TRANSFER_BACKEND"`
	IPFSAPIURL      string        `env:"SOCIALX_IPFS_API_URL"`
	GatewayURL      string        `env:"SOCIALX_GATEWAY_URL"`
	SessionSecret   string        `env:"SOCIALX_SESSION_SECRET"`
	Alias           string        `env:"SOCIALX_ALIAS"`
	MinioEndpoint   string        `env:"SOCIALX_MINIO_ENDPOINT"`
	MinioAccessKey  string        `env:"SOCIALX_MINIO_ACCESS_KEY"`
	MinioSecretKey  string        `env:"SOCIALX_MINIO_SECRET_KEY"`
	MinioBucket     string        `env:"SOCIALX_MINIO_BUCKET"`
	MinioUseSSL     bool          `env:"SOCIALX_MINIO_USE_SSL"`
	DialTimeout     time.Duration `env:"SOCIALX_DIAL_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.TransferBackend = "ipfs"
	c.IPFSAPIURL = "http://127.0.0.1:5001"
	c.GatewayURL = "http://127.0.0.1:8080/ipfs/"
	c.MinioEndpoint = "localhost:9000"
	c.MinioBucket = "socialx-avatars"
	c.DialTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
