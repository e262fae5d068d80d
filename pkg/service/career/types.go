package career

import (
	"context"

	"github.com/almalink/almalink/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// Service defines the interface for career-path inference
type Service interface {
	// Predict infers a career trajectory for the subject profile from a
	// cohort of more-experienced profiles. The result is returned
	// verbatim and never persisted.
	Predict(ctx context.Context, subject *model.Profile, cohort []*model.Profile) (*model.CareerPrediction, error)
}

// ErrInferenceFailed is returned when the upstream completion call does not
// return a usable structured prediction
var ErrInferenceFailed = goerr.New("career path inference failed")
