package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/almalink/almalink/pkg/cli/config"
	"github.com/almalink/almalink/pkg/service/career"
	"github.com/almalink/almalink/pkg/service/embedding"
	"github.com/almalink/almalink/pkg/usecase"
	"github.com/almalink/almalink/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdReindex() *cli.Command {
	var concurrency int
	var workspaceCfg config.Workspaces
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var matchingCfg config.Matching

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "concurrency",
			Usage:       "Number of concurrent embedding generations",
			Value:       4,
			Sources:     cli.EnvVars("ALMALINK_REINDEX_CONCURRENCY"),
			Destination: &concurrency,
		},
	}
	flags = append(flags, workspaceCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, matchingCfg.Flags()...)

	return &cli.Command{
		Name:  "reindex",
		Usage: "Regenerate stale embeddings for every profile in every workspace",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			if err := matchingCfg.Validate(); err != nil {
				return err
			}
			if concurrency <= 0 {
				return goerr.New("concurrency must be positive", goerr.V("concurrency", concurrency))
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
					logger.Error("failed to close repository", "error", err.Error())
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

			uc := usecase.New(repo, registry, embeddingSvc, careerSvc)

			for _, ws := range registry.Workspaces() {
				profiles, err := repo.Profile().List(ctx, ws.ID)
				if err != nil {
					return goerr.Wrap(err, "failed to list profiles", goerr.V("workspace_id", ws.ID))
				}

				logger.Info("Reindexing workspace",
					"workspace_id", ws.ID,
					"profiles", len(profiles),
					"concurrency", concurrency)

				var updated, skipped, failed int
				var grp errgroup.Group
				grp.SetLimit(concurrency)

				results := make([]*usecase.EmbedResult, len(profiles))
				errs := make([]error, len(profiles))
				for i, profile := range profiles {
					grp.Go(func() error {
						results[i], errs[i] = uc.Matching.Embed(ctx, ws.ID, profile.UserID)
						return nil
					})
				}
				grp.Wait() //nolint:errcheck // per-profile errors collected below

				for i, profile := range profiles {
					switch {
					case errs[i] != nil:
						failed++
						logger.Error("failed to reindex profile",
							"workspace_id", ws.ID,
							"user_id", profile.UserID,
							"error", errs[i].Error())
					case results[i].Updated:
						updated++
					default:
						skipped++
					}
				}

				logger.Info("Workspace reindex completed",
					"workspace_id", ws.ID,
					"updated", updated,
					"skipped", skipped,
					"failed", failed)
			}

			return nil
		},
	}
}
