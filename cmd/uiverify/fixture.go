package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yarrowhq/ui-verify/fixture"
)

func newFixtureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fixture",
		Short: "Serve the local portal that verification runs drive",
		Long:  "Starts a small photographer portal with a login page and a gallery dashboard on the configured address, so verification runs have a target without the real deployment.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			log := newLogger()
			fixtureCfg := fixtureConfig()

			app, err := fixture.NewApp(fixtureCfg, log)
			if err != nil {
				return fmt.Errorf("failed to create portal: %w", err)
			}

			app.Start()
			defer app.Stop()

			server := &http.Server{
				Addr:         fixtureCfg.Addr(),
				Handler:      app.Router(),
				ReadTimeout:  fixtureCfg.ReadTimeout,
				WriteTimeout: fixtureCfg.WriteTimeout,
			}

			go func() {
				log.Info(ctx, "portal listening", map[string]interface{}{
					"address": fixtureCfg.Addr(),
				})
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error(ctx, "portal error", map[string]interface{}{
						"error": err.Error(),
					})
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			log.Info(ctx, "shutting down portal", nil)

			shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("portal forced to shutdown: %w", err)
			}

			log.Info(ctx, "portal stopped", nil)

			return nil
		},
	}
}
