package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pet-adoption/internal/config"
	"pet-adoption/internal/platform/logger"

	"github.com/spf13/cobra"
)

// @title Pet Adoption API
// @version 1.0
// @description Proceso de adopción: documentos, pedido, visita, revisión final y etapa del postulante.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "pet-adoption: %v\n", err)
		os.Exit(1)
	}
}

var configPath string

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "pet-adoption",
		Short:        "Pet adoption lifecycle service",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("ADOPTIONS_CONFIG"), "YAML config file (opcional)")
	cmd.AddCommand(
		newServeCmd(),
		newWorkerCmd(),
		newMigrateCmd(),
	)
	return cmd
}

// bootstrap carga config y arma el logger; lo comparten todos los subcomandos.
func bootstrap() (config.Config, logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})
	return cfg, log, nil
}
