package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/socialx/socialx-go/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The dial
// timeout is given in seconds.
type JsonConfig struct {
	RelayURL           string `json:"relay_url"`
	TransferBackend    string `json:"transfer_backend"`
	IPFSAPIURL         string `json:"ipfs_api_url"`
	GatewayURL         string `json:"gateway_url"`
	SessionSecret      string `json:"session_secret"`
	Alias              string `json:"alias"`
	MinioEndpoint      string `json:"minio_endpoint"`
	MinioAccessKey     string `json:"minio_access_key"`
	MinioSecretKey     string `json:"minio_secret_key"`
	MinioBucket        string `json:"minio_bucket"`
	MinioUseSSL        bool   `json:"minio_use_ssl"`
	DialTimeoutSeconds int    `json:"dial_timeout_seconds"`
}

// parseJson overlays cfg with values loaded from a JSON file named by the
// -c or -config flag. Missing flag means no JSON layer; read or unmarshal
// errors panic. Zero-valued JSON fields leave cfg untouched.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIfNotEmpty(&cfg.RelayURL, jc.RelayURL)
	setIfNotEmpty(&cfg.TransferBackend, jc.TransferBackend)
	setIfNotEmpty(&cfg.IPFSAPIURL, jc.IPFSAPIURL)
	setIfNotEmpty(&cfg.GatewayURL, jc.GatewayURL)
	setIfNotEmpty(&cfg.SessionSecret, jc.SessionSecret)
	setIfNotEmpty(&cfg.Alias, jc.Alias)
	setIfNotEmpty(&cfg.MinioEndpoint, jc.MinioEndpoint)
	setIfNotEmpty(&cfg.MinioAccessKey, jc.MinioAccessKey)
	setIfNotEmpty(&cfg.MinioSecretKey, jc.MinioSecretKey)
	setIfNotEmpty(&cfg.MinioBucket, jc.MinioBucket)
	if jc.MinioUseSSL {
		cfg.MinioUseSSL = true
	}
	if jc.DialTimeoutSeconds > 0 {
		cfg.DialTimeout = time.Duration(jc.DialTimeoutSeconds) * time.Second
	}
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
