package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/socialx/socialx-go/internal/activity"
	"github.com/socialx/socialx-go/internal/config"
	"github.com/socialx/socialx-go/internal/dataapi"
	"github.com/socialx/socialx-go/internal/events"
	"github.com/socialx/socialx-go/internal/logging"
	"github.com/socialx/socialx-go/internal/models"
	"github.com/socialx/socialx-go/internal/services"
	"github.com/socialx/socialx-go/internal/session"
	"github.com/socialx/socialx-go/internal/state"
	"github.com/socialx/socialx-go/internal/store"
	"github.com/socialx/socialx-go/internal/store/memory"
	"github.com/socialx/socialx-go/internal/store/relay"
	"github.com/socialx/socialx-go/internal/transfer"
	"github.com/socialx/socialx-go/internal/transfer/ipfs"
	miniotransfer "github.com/socialx/socialx-go/internal/transfer/minio"
	"github.com/socialx/socialx-go/internal/uploads"
)

func main() {
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, slog.LevelInfo)
	ctx := context.Background()

	st, err := buildStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer st.Close()

	tr, err := buildTransfer(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	sess := buildSession(cfg)

	bus := events.NewBus()
	ledger := activity.NewLedger(bus)
	tracker := uploads.NewTracker()
	api := dataapi.NewProfilesAPI(st, sess)
	svc := services.NewProfileService(api, tr, tracker, ledger, bus, sess, logger)
	cache := state.NewCache(bus)
	defer cache.Close()

	unsub := bus.Subscribe(func(e events.Event) {
		logger.Debug(ctx, "event", "type", e.Type, "kind", e.Kind)
	})
	defer unsub()

	if cfg.RelayURL == "" {
		// offline demo: seed a profile so the fetch below has something to find
		if ident, ok := sess.Current(); ok && ident.Alias != "" {
			seed := models.Profile{Alias: ident.Alias, Pub: ident.Pub, FullName: ident.Alias}
			if err := st.Put(ctx, dataapi.ProfileByUsername(ident.Alias), seed); err != nil {
				log.Fatalf("%v", err)
			}
		}
	}

	svc.GetCurrentProfile(ctx)

	if p, ok := cache.CurrentProfile(); ok {
		fmt.Printf("%s (%s)\n", p.FullName, p.Alias)
		if url := p.AvatarURL(cfg.GatewayURL); url != "" {
			fmt.Printf("avatar: %s\n", url)
		}
		fmt.Printf("friends: %d\n", len(p.Friends))
		return
	}

	for _, e := range ledger.Snapshot() {
		if e.Status == activity.StatusFailed {
			fmt.Fprintf(os.Stderr, "%s failed: %s\n", e.Kind, e.Error)
		}
	}
}

func buildStore(ctx context.Context, cfg *config.Config, logger logging.Logger) (store.Store, error) {
	if cfg.RelayURL == "" {
		return memory.New(), nil
	}
	dialCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	return relay.Dial(dialCtx, cfg.RelayURL, logger)
}

func buildTransfer(ctx context.Context, cfg *config.Config) (transfer.Transfer, error) {
	if cfg.TransferBackend == "minio" {
		mc, err := minio.New(cfg.MinioEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
			Secure: cfg.MinioUseSSL,
		})
		if err != nil {
			return nil, err
		}
		return miniotransfer.NewClient(ctx, mc, cfg.MinioBucket)
	}
	return ipfs.NewClient(cfg.IPFSAPIURL, nil), nil
}

func buildSession(cfg *config.Config) session.Session {
	if token := os.Getenv("SOCIALX_TOKEN"); token != "" && cfg.SessionSecret != "" {
		ts := session.NewTokenSession([]byte(cfg.SessionSecret))
		ts.SetToken(token)
		return ts
	}
	return session.NewStatic(session.Identity{Alias: cfg.Alias})
}
