package cli

import (
	"context"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/almalink/almalink/pkg/cli/config"
	"github.com/almalink/almalink/pkg/domain/model"
	"github.com/almalink/almalink/pkg/domain/types"
	"github.com/almalink/almalink/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// seedProfiles are demo profiles for local development. User IDs get a
// fresh UUID suffix on every run so repeated seeding does not overwrite
// earlier records.
var seedProfiles = []model.Profile{
	{
		Name:            "Asha Rao",
		Skills:          []string{"Go", "PostgreSQL", "Kubernetes"},
		Interests:       []string{"distributed systems", "mentoring"},
		Industry:        "Technology",
		Company:         "Cloudline",
		Designation:     "Staff Engineer",
		ExperienceYears: 12,
		Department:      "Platform",
		IsMentor:        true,
	},
	{
		Name:            "Diego Fernandez",
		Skills:          []string{"Python", "Machine Learning"},
		Interests:       []string{"recommender systems"},
		Industry:        "Technology",
		Company:         "Searchly",
		Designation:     "ML Engineer",
		ExperienceYears: 5,
		Department:      "Search",
	},
	{
		Name:            "Mei Tanaka",
		Skills:          []string{"Product Strategy", "SQL"},
		Interests:       []string{"fintech", "hiring"},
		Industry:        "Finance",
		Company:         "Ledgerworks",
		Designation:     "Product Manager",
		ExperienceYears: 8,
		IsHiring:        true,
	},
	{
		Name:            "Sam Okafor",
		Skills:          []string{"Go", "Terraform"},
		Interests:       []string{"infrastructure", "career growth"},
		Industry:        "Technology",
		Company:         "Gridbase",
		Designation:     "Site Reliability Engineer",
		ExperienceYears: 3,
		Department:      "Infrastructure",
	},
}

func cmdSeed() *cli.Command {
	var workspaceID string
	var workspaceCfg config.Workspaces
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "workspace-id",
			Usage:       "Workspace to seed",
			Value:       "default",
			Sources:     cli.EnvVars("ALMALINK_SEED_WORKSPACE_ID"),
			Destination: &workspaceID,
		},
	}
	flags = append(flags, workspaceCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Insert demo profiles for local development",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			registry, err := workspaceCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load workspace configuration")
			}
			if _, err := registry.Get(workspaceID); err != nil {
				return goerr.Wrap(err, "seed target workspace is not configured")
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

			for _, seed := range seedProfiles {
				profile := seed
				profile.UserID = types.UserID("demo-" + uuid.NewString())

				if err := repo.Profile().Put(ctx, workspaceID, &profile); err != nil {
					return goerr.Wrap(err, "failed to store seed profile",
						goerr.V("user_id", profile.UserID))
				}
				logger.Info("Seeded profile",
					"workspace_id", workspaceID,
					"user_id", profile.UserID,
					"name", profile.Name)
			}

			logger.Info("Seeding completed",
				"workspace_id", workspaceID,
				"profiles", len(seedProfiles))
			return nil
		},
	}
}
