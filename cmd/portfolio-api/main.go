package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fliprlabs/portfolio-api/internal/app"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:           "portfolio-api",
		Short:         "Portfolio website backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.RunServer(ctx, configPath)
		},
	}

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Migrate(cmd.Context(), configPath)
		},
	}

	root.AddCommand(serve, migrate)

	if err := root.Execute(); err != nil {
		log.WithError(err).Fatal("command failed")
	}
}
