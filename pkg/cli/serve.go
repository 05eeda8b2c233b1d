package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/themis/pkg/cli/config"
	httpctrl "github.com/secmon-lab/themis/pkg/controller/http"
	"github.com/secmon-lab/themis/pkg/service/worker"
	"github.com/secmon-lab/themis/pkg/usecase"
	"github.com/secmon-lab/themis/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var noAuth bool
	var snapshotInterval time.Duration
	var repoCfg config.Repository
	var storageCfg config.Storage
	var catalogCfg config.Catalog
	var workflowCfg config.Workflow

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("THEMIS_ADDR"),
			Destination: &addr,
		},
		&cli.BoolFlag{
			Name:        "no-auth",
			Usage:       "Skip authentication and attribute all requests to the anonymous user (development only)",
			Category:    "Authentication",
			Sources:     cli.EnvVars("THEMIS_NO_AUTH"),
			Destination: &noAuth,
		},
		&cli.DurationFlag{
			Name:        "register-snapshot-interval",
			Usage:       "Interval between risk register snapshot recomputes (0 disables the worker)",
			Value:       10 * time.Minute,
			Sources:     cli.EnvVars("THEMIS_REGISTER_SNAPSHOT_INTERVAL"),
			Destination: &snapshotInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, workflowCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := catalogCfg.Load(); err != nil {
				return goerr.Wrap(err, "failed to load control catalog")
			}
			if err := workflowCfg.Load(); err != nil {
				return goerr.Wrap(err, "failed to load workflow configuration")
			}

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			// Initialize evidence blob storage
			store, err := storageCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize storage")
			}
			defer func() {
				if err := store.Close(); err != nil {
					logging.Default().Error("failed to close storage", "error", err.Error())
				}
			}()

			// Seed the control catalog
			if controls := catalogCfg.ToControls(); len(controls) > 0 {
				if err := repo.Control().Seed(ctx, controls); err != nil {
					return goerr.Wrap(err, "failed to seed control catalog")
				}
				logging.Default().Info("Control catalog seeded", "controls", len(controls))
			} else {
				logging.Default().Warn("No control catalog configured, catalog is empty")
			}

			// Configure authentication
			ucOpts := []usecase.Option{
				usecase.WithStorage(store),
				usecase.WithPhasePolicy(workflowCfg.PhasePolicy()),
				usecase.WithThresholds(workflowCfg.ALEThresholds()),
			}
			if noAuth {
				logging.Default().Warn("Running in no-auth mode (development only)")
			} else {
				ucOpts = append(ucOpts, usecase.WithAuth(usecase.NewAuthUseCase(repo)))
			}

			uc := usecase.New(repo, ucOpts...)

			// Start the register snapshot worker
			var snapshotWorker *worker.RegisterSnapshotWorker
			httpOpts := []httpctrl.Options{}
			if snapshotInterval > 0 {
				snapshotWorker = worker.NewRegisterSnapshotWorker(repo, uc.Register, snapshotInterval)
				if err := snapshotWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start register snapshot worker")
				}
				httpOpts = append(httpOpts, httpctrl.WithSnapshotWorker(snapshotWorker))
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if snapshotWorker != nil {
					snapshotWorker.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
