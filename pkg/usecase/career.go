package usecase

import (
	"context"
	"errors"

	"github.com/almalink/almalink/pkg/domain/interfaces"
	"github.com/almalink/almalink/pkg/domain/model"
	"github.com/almalink/almalink/pkg/domain/types"
	"github.com/almalink/almalink/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// PredictCareerPath infers a likely career trajectory for the subject from
// a cohort of workspace members with meaningfully more experience. An empty
// cohort is fine; the model then generalizes from the subject alone.
func (uc *MatchingUseCase) PredictCareerPath(ctx context.Context, workspaceID string, userID types.UserID) (*model.CareerPrediction, error) {
	if err := uc.resolveWorkspace(workspaceID); err != nil {
		return nil, err
	}
	if err := userID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidRequest, "user_id is required")
	}

	subject, err := uc.repo.Profile().Get(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrProfileNotFound, "profile not found",
				goerr.V(UserIDKey, userID),
				goerr.V(WorkspaceIDKey, workspaceID))
		}
		return nil, goerr.Wrap(err, "failed to load profile", goerr.V(UserIDKey, userID))
	}

	cohort, err := uc.repo.Profile().ListMoreExperienced(ctx, workspaceID,
		subject.ExperienceYears+careerExperienceGap, careerCohortLimit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load senior cohort", goerr.V(UserIDKey, userID))
	}

	logging.From(ctx).Debug("career cohort selected",
		"user_id", userID,
		"subject_experience_years", subject.ExperienceYears,
		"cohort_size", len(cohort),
	)

	prediction, err := uc.career.Predict(ctx, subject, cohort)
	if err != nil {
		return nil, classifyLLMError(err)
	}

	return prediction, nil
}
