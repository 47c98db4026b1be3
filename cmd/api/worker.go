package main

import (
	"fmt"

	notifyadapter "pet-adoption/internal/adapters/notify"
	pg "pet-adoption/internal/adapters/storage/postgres"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
)

func newWorkerCmd() *cobra.Command {
	var concurrency int
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Deliver queued notifications (notifications.driver=queue)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}

			sender, err := newSender(cfg, log)
			if err != nil {
				return err
			}

			server := asynq.NewServer(redisOpt(cfg.Redis), asynq.Config{
				Concurrency: concurrency,
			})
			processor := notifyadapter.NewProcessor(sender, log)

			go func() {
				<-cmd.Context().Done()
				server.Shutdown()
			}()

			log.Info("starting worker", map[string]any{"redis": cfg.Redis.Addr, "concurrency": concurrency})
			if err := server.Run(processor.Handler()); err != nil {
				return fmt.Errorf("worker stopped: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Notificaciones en paralelo")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the Postgres schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			if cfg.Database.DSN == "" {
				return fmt.Errorf("DB_DSN is required")
			}

			db, err := pg.Open(cmd.Context(), cfg.Database.DSN)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			if err := pg.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			log.Info("schema applied", nil)
			return nil
		},
	}
}
