package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/almalink/almalink/pkg/domain/interfaces"
	"github.com/almalink/almalink/pkg/domain/model"
	"github.com/almalink/almalink/pkg/domain/types"
	"github.com/almalink/almalink/pkg/utils/errutil"
	"github.com/almalink/almalink/pkg/utils/logging"
	"github.com/almalink/almalink/pkg/utils/safe"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

// profileBody is the wire representation of a profile, shared by the
// profile endpoints and match results.
type profileBody struct {
	UserID          string    `json:"user_id"`
	Name            string    `json:"name,omitempty"`
	Skills          []string  `json:"skills,omitempty"`
	Interests       []string  `json:"interests,omitempty"`
	Industry        string    `json:"industry,omitempty"`
	Company         string    `json:"company,omitempty"`
	Designation     string    `json:"designation,omitempty"`
	ExperienceYears int       `json:"experience_years"`
	Department      string    `json:"department,omitempty"`
	IsMentor        bool      `json:"is_mentor"`
	IsHiring        bool      `json:"is_hiring"`
	Location        string    `json:"location,omitempty"`
	AvatarURL       string    `json:"avatar_url,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitzero"`
}

func profileToBody(p *model.Profile) *profileBody {
	if p == nil {
		return nil
	}
	return &profileBody{
		UserID:          p.UserID.String(),
		Name:            p.Name,
		Skills:          p.Skills,
		Interests:       p.Interests,
		Industry:        p.Industry,
		Company:         p.Company,
		Designation:     p.Designation,
		ExperienceYears: p.ExperienceYears,
		Department:      p.Department,
		IsMentor:        p.IsMentor,
		IsHiring:        p.IsHiring,
		Location:        p.Location,
		AvatarURL:       p.AvatarURL,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (b *profileBody) toModel(userID types.UserID) *model.Profile {
	return &model.Profile{
		UserID:          userID,
		Name:            b.Name,
		Skills:          b.Skills,
		Interests:       b.Interests,
		Industry:        b.Industry,
		Company:         b.Company,
		Designation:     b.Designation,
		ExperienceYears: b.ExperienceYears,
		Department:      b.Department,
		IsMentor:        b.IsMentor,
		IsHiring:        b.IsHiring,
		Location:        b.Location,
		AvatarURL:       b.AvatarURL,
		UpdatedAt:       time.Now().UTC(),
	}
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	workspaceID := chi.URLParam(r, "workspaceID")
	userID := types.UserID(chi.URLParam(r, "userID"))

	if s.workspaceRegistry != nil {
		if _, err := s.workspaceRegistry.Get(workspaceID); err != nil {
			handleUseCaseError(ctx, w, err)
			return
		}
	}

	var body profileBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile := body.toModel(userID)
	if err := profile.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.uc.Repository().Profile().Put(ctx, workspaceID, profile); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to store profile"), http.StatusInternalServerError)
		return
	}

	logging.From(ctx).Info("profile stored",
		"workspace_id", workspaceID, "user_id", userID)

	writeJSON(ctx, w, profileToBody(profile))
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	workspaceID := chi.URLParam(r, "workspaceID")
	userID := types.UserID(chi.URLParam(r, "userID"))

	if s.workspaceRegistry != nil {
		if _, err := s.workspaceRegistry.Get(workspaceID); err != nil {
			handleUseCaseError(ctx, w, err)
			return
		}
	}

	profile, err := s.uc.Repository().Profile().Get(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to load profile"), http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, profileToBody(profile))
}

func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	safe.Write(ctx, w, data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg}) //nolint:errcheck
}
