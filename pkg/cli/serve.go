package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/almalink/almalink/pkg/cli/config"
	httpctrl "github.com/almalink/almalink/pkg/controller/http"
	"github.com/almalink/almalink/pkg/service/career"
	"github.com/almalink/almalink/pkg/service/embedding"
	"github.com/almalink/almalink/pkg/usecase"
	"github.com/almalink/almalink/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var workspaceCfg config.Workspaces
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var matchingCfg config.Matching

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("ALMALINK_ADDR"),
			Destination: &addr,
		},
	}

	// Add shared config flags
	flags = append(flags, workspaceCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, matchingCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := matchingCfg.Validate(); err != nil {
				return err
			}

			registry, err := workspaceCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load workspace configuration")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			if llmClient == nil {
				return goerr.New("gemini-project is required: embedding generation needs an LLM backend")
			}

			embeddingSvc, err := embedding.New(llmClient,
				embedding.WithDimension(matchingCfg.Dimension()))
			if err != nil {
				return goerr.Wrap(err, "failed to initialize embedding service")
			}

			careerSvc, err := career.New(llmClient)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize career service")
			}

			uc := usecase.New(repo, registry, embeddingSvc, careerSvc,
				usecase.WithTopK(matchingCfg.TopK()))

			httpHandler := httpctrl.New(uc, httpctrl.WithWorkspaceRegistry(registry))
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server",
					"addr", addr,
					"backend", repoCfg.Backend(),
					"workspaces", len(registry.Workspaces()),
					"dimension", matchingCfg.Dimension(),
					"top_k", matchingCfg.TopK(),
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

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
