package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/almalink/almalink/pkg/domain/model"
	"github.com/almalink/almalink/pkg/domain/types"
	"github.com/almalink/almalink/pkg/usecase"
	"github.com/almalink/almalink/pkg/utils/errutil"
	"github.com/go-chi/chi/v5"
)

type matchingRequest struct {
	Action     string `json:"action"`
	UserID     string `json:"user_id"`
	TargetRole string `json:"target_role,omitempty"`
}

type embedResponse struct {
	Message    string `json:"message"`
	Dimensions int    `json:"dimensions,omitempty"`
	Hash       string `json:"hash"`
}

type matchCandidate struct {
	UserID     string       `json:"user_id"`
	Similarity float64      `json:"similarity"`
	Profile    *profileBody `json:"profile"`
}

type matchResponse struct {
	Matches []matchCandidate `json:"matches"`
}

type careerPathResponse struct {
	Prediction *model.CareerPrediction `json:"prediction"`
}

func (s *Server) handleMatching(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	workspaceID := chi.URLParam(r, "workspaceID")

	var req matchingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := types.UserID(req.UserID)

	switch req.Action {
	case "embed":
		result, err := s.uc.Matching.Embed(ctx, workspaceID, userID)
		if err != nil {
			handleUseCaseError(ctx, w, err)
			return
		}
		resp := &embedResponse{
			Message:    "embedding generated",
			Dimensions: result.Dimensions,
			Hash:       result.Hash,
		}
		if !result.Updated {
			resp.Message = "already up to date"
			resp.Dimensions = 0
		}
		writeJSON(ctx, w, resp)

	case "match":
		roleFilter, err := types.ParseRoleFilter(req.TargetRole)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid target_role: "+req.TargetRole)
			return
		}
		matches, err := s.uc.Matching.Match(ctx, workspaceID, userID, roleFilter)
		if err != nil {
			handleUseCaseError(ctx, w, err)
			return
		}
		resp := &matchResponse{Matches: make([]matchCandidate, len(matches))}
		for i, m := range matches {
			resp.Matches[i] = matchCandidate{
				UserID:     m.UserID.String(),
				Similarity: m.Similarity,
				Profile:    profileToBody(m.Profile),
			}
		}
		writeJSON(ctx, w, resp)

	case "career_path":
		prediction, err := s.uc.Matching.PredictCareerPath(ctx, workspaceID, userID)
		if err != nil {
			handleUseCaseError(ctx, w, err)
			return
		}
		writeJSON(ctx, w, &careerPathResponse{Prediction: prediction})

	default:
		writeError(w, http.StatusBadRequest, "unknown action: "+req.Action)
	}
}

// handleUseCaseError maps use case sentinel errors onto HTTP status codes
// and logs server-side failures with their stack context.
func handleUseCaseError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		errutil.HandleHTTP(ctx, w, err, status)
		return
	}
	writeError(w, status, err.Error())
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrProfileNotFound),
		errors.Is(err, usecase.ErrNoEmbedding),
		errors.Is(err, model.ErrWorkspaceNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, usecase.ErrQuotaExhausted):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
