package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"pet-adoption/internal/adapters/auth/odin"
	"pet-adoption/internal/adapters/capabilities/plansfeatures"
	memfiles "pet-adoption/internal/adapters/filestorage/memory"
	minio "pet-adoption/internal/adapters/filestorage/minio"
	notifyadapter "pet-adoption/internal/adapters/notify"
	mem "pet-adoption/internal/adapters/storage/memory"
	pg "pet-adoption/internal/adapters/storage/postgres"
	"pet-adoption/internal/config"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/auth"
	"pet-adoption/internal/ports/capabilities"
	"pet-adoption/internal/ports/files"
	"pet-adoption/internal/ports/notify"
	"pet-adoption/internal/ports/store"
	"pet-adoption/internal/router"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, log, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Aplica el schema de Postgres antes de arrancar")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, log logger.Logger, migrate bool) error {
	st, db, err := openStore(ctx, cfg, log, migrate)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	fs, err := openFiles(ctx, cfg, log)
	if err != nil {
		return err
	}

	notifier, closeNotifier, err := openNotifier(cfg, log)
	if err != nil {
		return err
	}
	defer closeNotifier()

	verifier, caps := openAuth(cfg, log)

	h := router.NewRouter(router.Options{
		Config:       &cfg,
		Log:          log,
		Store:        st,
		Files:        fs,
		Notifier:     notifier,
		AuthVerifier: verifier,
		Capabilities: caps,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Server.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore: con DSN usa Postgres; sin DSN queda in-memory (modo dev).
func openStore(ctx context.Context, cfg config.Config, log logger.Logger, migrate bool) (store.Store, *sql.DB, error) {
	if cfg.Database.DSN == "" {
		log.Warn("DB_DSN not set, using in-memory store", nil)
		return mem.NewStore(), nil, nil
	}

	db, err := pg.Open(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if migrate {
		if err := pg.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
	}
	return pg.NewStore(db), db, nil
}

func openFiles(ctx context.Context, cfg config.Config, log logger.Logger) (files.Storage, error) {
	if cfg.Storage.Driver != "minio" {
		log.Warn("using in-memory file storage", nil)
		return memfiles.New(), nil
	}

	s, err := minio.New(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	if err := s.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}
	return s, nil
}

// openNotifier devuelve el dispatcher según el driver y la función que lo cierra en el shutdown.
func openNotifier(cfg config.Config, log logger.Logger) (notify.Dispatcher, func(), error) {
	if cfg.Notifications.Driver == "queue" {
		client := asynq.NewClient(redisOpt(cfg.Redis))
		return notifyadapter.NewQueueDispatcher(client, log), func() { _ = client.Close() }, nil
	}

	sender, err := newSender(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	d := notifyadapter.NewAsyncDispatcher(sender, log, cfg.Notifications.Timeout)
	return d, d.Wait, nil
}

// newSender: siempre loguea; si hay webhook también lo llama.
func newSender(cfg config.Config, log logger.Logger) (notify.Sender, error) {
	senders := notifyadapter.Senders{notifyadapter.NewLogSender(log)}
	if cfg.Notifications.WebhookURL != "" {
		wh, err := notifyadapter.NewWebhookSender(cfg.Notifications.WebhookURL, cfg.Notifications.Timeout)
		if err != nil {
			return nil, err
		}
		senders = append(senders, wh)
	}
	return senders, nil
}

// openAuth: sin Odin configurado el API corre en modo dev (headers X-Debug-*).
func openAuth(cfg config.Config, log logger.Logger) (auth.AuthVerifier, capabilities.CapabilitiesResolver) {
	var (
		verifier auth.AuthVerifier
		caps     capabilities.CapabilitiesResolver
	)

	if c, err := odin.NewClient(odin.Config{
		BaseURL: cfg.Auth.OdinBaseURL,
		APIKey:  cfg.Auth.OdinAPIKey,
	}); err == nil {
		verifier = c
	} else {
		log.Warn("odin not configured, dev auth headers enabled", map[string]any{"err": err.Error()})
	}

	if r, err := plansfeatures.NewResolver(plansfeatures.Config{
		BaseURL: cfg.Auth.PlansBaseURL,
		APIKey:  cfg.Auth.PlansAPIKey,
	}); err == nil {
		caps = r
	} else {
		log.Info("plans-features not configured, admin comes only from roles", nil)
	}

	return verifier, caps
}

func redisOpt(c config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	}
}
