package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/almalink/almalink/pkg/cli/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workspaces.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestLoadWorkspaceConfiguration(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		path := writeConfig(t, `
[[workspace]]
id = "acme-alumni"
name = "ACME Alumni Network"

[[workspace]]
id = "globex-alumni"
name = "Globex Alumni"
`)

		cfg, err := config.LoadWorkspaceConfiguration(path)
		gt.NoError(t, err).Required()
		gt.Array(t, cfg.Workspaces).Length(2)
		gt.Value(t, cfg.Workspaces[0].ID).Equal("acme-alumni")
		gt.Value(t, cfg.Workspaces[1].Name).Equal("Globex Alumni")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadWorkspaceConfiguration(filepath.Join(t.TempDir(), "missing.toml"))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, config.ErrConfigNotFound)).True()
	})

	t.Run("duplicate workspace ID", func(t *testing.T) {
		path := writeConfig(t, `
[[workspace]]
id = "acme"
name = "One"

[[workspace]]
id = "acme"
name = "Two"
`)

		_, err := config.LoadWorkspaceConfiguration(path)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, config.ErrDuplicateWorkspaceID)).True()
	})

	t.Run("missing workspace ID", func(t *testing.T) {
		path := writeConfig(t, `
[[workspace]]
name = "No ID"
`)

		_, err := config.LoadWorkspaceConfiguration(path)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, config.ErrMissingWorkspaceID)).True()
	})

	t.Run("missing workspace name", func(t *testing.T) {
		path := writeConfig(t, `
[[workspace]]
id = "acme"
`)

		_, err := config.LoadWorkspaceConfiguration(path)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, config.ErrMissingName)).True()
	})

	t.Run("invalid TOML", func(t *testing.T) {
		path := writeConfig(t, `[[workspace] broken`)

		_, err := config.LoadWorkspaceConfiguration(path)
		gt.Error(t, err)
	})
}
