package config

import (
	"flag"
	"os"

	"github.com/socialx/socialx-go/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-r string   websocket URL of the graph relay
//	-t string   transfer backend: ipfs or minio
//	-g string   gateway base URL used to display avatar hashes
//	-u string   demo identity alias
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-r", "-t", "-g", "-u"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.RelayURL, "r", cfg.RelayURL, "websocket URL of the graph relay")
	fs.StringVar(&cfg.TransferBackend, "t", cfg.TransferBackend, "transfer backend: ipfs or minio")
	fs.StringVar(&cfg.GatewayURL, "g", cfg.GatewayURL, "gateway base URL for avatar hashes")
	fs.StringVar(&cfg.Alias, "u", cfg.Alias, "demo identity alias")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
