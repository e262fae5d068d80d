package config

import (
	"os"

	"github.com/almalink/almalink/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// WorkspaceConfig represents the workspace (tenant) configuration
type WorkspaceConfig struct {
	Workspaces []WorkspaceEntry `toml:"workspace"`
}

// WorkspaceEntry represents a single workspace configuration
type WorkspaceEntry struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// Validate checks if the WorkspaceEntry is valid
func (w *WorkspaceEntry) Validate() error {
	if w.ID == "" {
		return goerr.Wrap(ErrMissingWorkspaceID, "workspace entry has no ID")
	}
	if w.Name == "" {
		return goerr.Wrap(ErrMissingName, "workspace name is required",
			goerr.V(WorkspaceIDKey, w.ID))
	}
	return nil
}

// Validate checks if the WorkspaceConfig is valid
func (c *WorkspaceConfig) Validate() error {
	seen := make(map[string]bool)
	for _, ws := range c.Workspaces {
		if err := ws.Validate(); err != nil {
			return goerr.Wrap(err, "invalid workspace entry")
		}
		if seen[ws.ID] {
			return goerr.Wrap(ErrDuplicateWorkspaceID, "workspace IDs must be unique",
				goerr.V(WorkspaceIDKey, ws.ID))
		}
		seen[ws.ID] = true
	}
	return nil
}

// LoadWorkspaceConfiguration loads the workspace configuration from a TOML file
func LoadWorkspaceConfiguration(path string) (*WorkspaceConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "workspace config file not found",
				goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config WorkspaceConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V(ConfigPathKey, path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}

// Workspaces holds CLI flags for workspace configuration
type Workspaces struct {
	configPath string
}

// Flags returns CLI flags for workspace configuration
func (w *Workspaces) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "workspace-config",
			Usage:       "Path to the workspace configuration TOML file",
			Sources:     cli.EnvVars("ALMALINK_WORKSPACE_CONFIG"),
			Destination: &w.configPath,
		},
	}
}

// Configure loads the workspace configuration and builds a registry.
// Without a config file a single default workspace is registered, which
// keeps single-tenant deployments free of any TOML.
func (w *Workspaces) Configure() (*model.WorkspaceRegistry, error) {
	registry := model.NewWorkspaceRegistry()

	if w.configPath == "" {
		registry.Register(&model.Workspace{ID: "default", Name: "Default"})
		return registry, nil
	}

	config, err := LoadWorkspaceConfiguration(w.configPath)
	if err != nil {
		return nil, err
	}

	for _, entry := range config.Workspaces {
		registry.Register(&model.Workspace{
			ID:   entry.ID,
			Name: entry.Name,
		})
	}

	return registry, nil
}
