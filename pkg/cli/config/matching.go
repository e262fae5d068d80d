package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Matching holds CLI flags tuning the matching pipeline
type Matching struct {
	dimension int
	topK      int
}

// Flags returns CLI flags for matching configuration
func (m *Matching) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "matching-dimension",
			Usage:       "Embedding vector dimension",
			Value:       64,
			Sources:     cli.EnvVars("ALMALINK_MATCHING_DIMENSION"),
			Destination: &m.dimension,
		},
		&cli.IntFlag{
			Name:        "matching-top-k",
			Usage:       "Number of candidates returned by match",
			Value:       10,
			Sources:     cli.EnvVars("ALMALINK_MATCHING_TOP_K"),
			Destination: &m.topK,
		},
	}
}

// Validate checks if the matching configuration is valid
func (m *Matching) Validate() error {
	if m.dimension <= 0 {
		return goerr.Wrap(ErrInvalidConfig, "matching-dimension must be positive",
			goerr.V("dimension", m.dimension))
	}
	if m.topK <= 0 {
		return goerr.Wrap(ErrInvalidConfig, "matching-top-k must be positive",
			goerr.V("top_k", m.topK))
	}
	return nil
}

// Dimension returns the configured embedding dimension
func (m *Matching) Dimension() int {
	return m.dimension
}

// TopK returns the configured candidate count
func (m *Matching) TopK() int {
	return m.topK
}
