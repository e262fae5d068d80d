package usecase

import (
	"github.com/almalink/almalink/pkg/domain/interfaces"
	"github.com/almalink/almalink/pkg/domain/model"
	"github.com/almalink/almalink/pkg/service/career"
	"github.com/almalink/almalink/pkg/service/embedding"
)

const (
	// defaultTopK is the number of ranked candidates returned by match
	defaultTopK = 10

	// careerCohortLimit caps the number of senior profiles fed to inference
	careerCohortLimit = 20

	// careerExperienceGap is the margin (in years) a cohort member must
	// exceed the subject's experience by. Strictly greater than.
	careerExperienceGap = 2
)

// UseCases bundles the matching operations behind a single entry point
type UseCases struct {
	repo     interfaces.Repository
	registry *model.WorkspaceRegistry
	embedder embedding.Service
	career   career.Service
	topK     int

	Matching *MatchingUseCase
}

type Option func(*UseCases)

// WithTopK overrides the number of candidates returned by match
func WithTopK(topK int) Option {
	return func(uc *UseCases) {
		uc.topK = topK
	}
}

func New(repo interfaces.Repository, registry *model.WorkspaceRegistry, embedder embedding.Service, careerSvc career.Service, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:     repo,
		registry: registry,
		embedder: embedder,
		career:   careerSvc,
		topK:     defaultTopK,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Matching = NewMatchingUseCase(repo, registry, embedder, careerSvc, uc.topK)

	return uc
}

// Repository exposes the backing repository for controllers that manage
// raw profile records
func (uc *UseCases) Repository() interfaces.Repository {
	return uc.repo
}

// MatchingUseCase implements embed, match, and career-path operations
type MatchingUseCase struct {
	repo     interfaces.Repository
	registry *model.WorkspaceRegistry
	embedder embedding.Service
	career   career.Service
	topK     int
}

func NewMatchingUseCase(repo interfaces.Repository, registry *model.WorkspaceRegistry, embedder embedding.Service, careerSvc career.Service, topK int) *MatchingUseCase {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &MatchingUseCase{
		repo:     repo,
		registry: registry,
		embedder: embedder,
		career:   careerSvc,
		topK:     topK,
	}
}

// resolveWorkspace validates that the workspace exists when a registry is
// configured. A nil registry disables the check (used by tests and by the
// reindex command which already iterated configured workspaces).
func (uc *MatchingUseCase) resolveWorkspace(workspaceID string) error {
	if uc.registry == nil {
		return nil
	}
	if _, err := uc.registry.Get(workspaceID); err != nil {
		return err
	}
	return nil
}
