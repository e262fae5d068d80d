package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/almalink/almalink/pkg/domain/model"
	"github.com/almalink/almalink/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type profileRepository struct {
	mu       sync.RWMutex
	profiles map[string]map[types.UserID]*model.Profile
}

func newProfileRepository() *profileRepository {
	return &profileRepository{
		profiles: make(map[string]map[types.UserID]*model.Profile),
	}
}

func copyProfile(p *model.Profile) *model.Profile {
	copied := *p
	if p.Skills != nil {
		copied.Skills = make([]string, len(p.Skills))
		copy(copied.Skills, p.Skills)
	}
	if p.Interests != nil {
		copied.Interests = make([]string, len(p.Interests))
		copy(copied.Interests, p.Interests)
	}
	return &copied
}

func (r *profileRepository) Put(ctx context.Context, workspaceID string, profile *model.Profile) error {
	if err := profile.Validate(); err != nil {
		return goerr.Wrap(err, "invalid profile")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[workspaceID]; !exists {
		r.profiles[workspaceID] = make(map[types.UserID]*model.Profile)
	}

	stored := copyProfile(profile)
	stored.UpdatedAt = time.Now().UTC()
	r.profiles[workspaceID][profile.UserID] = stored
	return nil
}

func (r *profileRepository) Get(ctx context.Context, workspaceID string, userID types.UserID) (*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.profiles[workspaceID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("user_id", userID))
	}

	profile, exists := bucket[userID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("user_id", userID))
	}

	return copyProfile(profile), nil
}

func (r *profileRepository) GetMany(ctx context.Context, workspaceID string, userIDs []types.UserID) ([]*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.profiles[workspaceID]
	if !exists {
		return []*model.Profile{}, nil
	}

	result := make([]*model.Profile, 0, len(userIDs))
	for _, id := range userIDs {
		if profile, ok := bucket[id]; ok {
			result = append(result, copyProfile(profile))
		}
	}
	return result, nil
}

func (r *profileRepository) List(ctx context.Context, workspaceID string) ([]*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.profiles[workspaceID]
	if !exists {
		return []*model.Profile{}, nil
	}

	result := make([]*model.Profile, 0, len(bucket))
	for _, profile := range bucket {
		result = append(result, copyProfile(profile))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].UserID < result[j].UserID
	})

	return result, nil
}

func (r *profileRepository) ListMoreExperienced(ctx context.Context, workspaceID string, moreThanYears int, limit int) ([]*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.profiles[workspaceID]
	if !exists {
		return []*model.Profile{}, nil
	}

	result := make([]*model.Profile, 0)
	for _, profile := range bucket {
		if profile.ExperienceYears > moreThanYears {
			result = append(result, copyProfile(profile))
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ExperienceYears < result[j].ExperienceYears
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}
