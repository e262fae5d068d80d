package cli

import (
	"context"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"

	"github.com/almalink/almalink/pkg/cli/config"
	"github.com/almalink/almalink/pkg/repository/postgres"
	"github.com/almalink/almalink/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var repoCfg config.Repository
	var matchingCfg config.Matching
	var dryRun bool

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Preview changes without applying",
			Destination: &dryRun,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, matchingCfg.Flags()...)

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Apply backend schema and index migrations",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			if err := matchingCfg.Validate(); err != nil {
				return err
			}

			switch repoCfg.Backend() {
			case "firestore":
				return migrateFirestore(ctx, &repoCfg, &matchingCfg, dryRun)

			case "postgres":
				if repoCfg.DSN() == "" {
					return goerr.New("postgres-dsn is required when using postgres backend")
				}
				repo, err := postgres.New(ctx, repoCfg.DSN())
				if err != nil {
					return goerr.Wrap(err, "failed to connect to postgres")
				}
				defer func() {
					if err := repo.Close(); err != nil {
						logger.Error("failed to close postgres repository", "error", err.Error())
					}
				}()

				if dryRun {
					logger.Info("Dry run mode - postgres migrations are idempotent CREATE IF NOT EXISTS statements")
					return nil
				}
				if err := repo.Migrate(ctx); err != nil {
					return goerr.Wrap(err, "failed to apply postgres migrations")
				}
				logger.Info("Postgres migrations applied successfully")
				return nil

			case "memory":
				logger.Info("Memory backend needs no migration")
				return nil

			default:
				return goerr.New("invalid repository backend", goerr.V("backend", repoCfg.Backend()))
			}
		},
	}
}

func migrateFirestore(ctx context.Context, repoCfg *config.Repository, matchingCfg *config.Matching, dryRun bool) error {
	logger := logging.Default()

	if repoCfg.ProjectID() == "" {
		return goerr.New("firestore-project-id is required when using firestore backend")
	}

	logger.Info("Migrate configuration",
		"projectID", repoCfg.ProjectID(),
		"databaseID", repoCfg.DatabaseID(),
		"dimension", matchingCfg.Dimension(),
		"dryRun", dryRun)

	indexConfig := getIndexConfig(matchingCfg.Dimension())

	client, err := fireconf.NewClient(ctx, repoCfg.ProjectID(), repoCfg.DatabaseID())
	if err != nil {
		return goerr.Wrap(err, "failed to create fireconf client")
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close fireconf client", "error", err.Error())
		}
	}()

	if dryRun {
		logger.Info("Dry run mode - previewing changes")
		plan, err := client.GetMigrationPlan(ctx, indexConfig)
		if err != nil {
			return goerr.Wrap(err, "failed to create migration plan")
		}

		if len(plan.Steps) == 0 {
			logger.Info("No changes required")
			return nil
		}

		for _, step := range plan.Steps {
			logger.Info("Migration step",
				"collection", step.Collection,
				"operation", step.Operation,
				"description", step.Description,
				"destructive", step.Destructive)
		}
		return nil
	}

	logger.Info("Applying migrations")
	if err := client.Migrate(ctx, indexConfig); err != nil {
		return goerr.Wrap(err, "failed to apply migrations")
	}
	logger.Info("Migrations applied successfully")
	return nil
}

// getIndexConfig returns the Firestore index configuration
func getIndexConfig(dimension int) *fireconf.Config {
	return &fireconf.Config{
		Collections: []fireconf.Collection{
			{
				Name: "profiles",
				Indexes: []fireconf.Index{
					// ListMoreExperienced: experience_years ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "experience_years", Order: fireconf.OrderAscending},
							{Path: "user_id", Order: fireconf.OrderAscending},
						},
					},
				},
			},
			{
				Name: "embeddings",
				Indexes: []fireconf.Index{
					// Vector search index
					{
						Fields: []fireconf.IndexField{
							{
								Path: "vector",
								Vector: &fireconf.VectorConfig{
									Dimension: dimension,
								},
							},
						},
					},
				},
			},
		},
	}
}
