package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/almalink/almalink/pkg/domain/model"
	"github.com/almalink/almalink/pkg/domain/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
)

type profileRepository struct {
	pool *pgxpool.Pool
}

const profileColumns = `user_id, name, skills, interests, industry, company, designation,
	experience_years, department, is_mentor, is_hiring, location, avatar_url, updated_at`

func scanProfile(row pgx.Row) (*model.Profile, error) {
	var p model.Profile
	var userID string
	if err := row.Scan(&userID, &p.Name, &p.Skills, &p.Interests, &p.Industry,
		&p.Company, &p.Designation, &p.ExperienceYears, &p.Department,
		&p.IsMentor, &p.IsHiring, &p.Location, &p.AvatarURL, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.UserID = types.UserID(userID)
	return &p, nil
}

func (r *profileRepository) Put(ctx context.Context, workspaceID string, profile *model.Profile) error {
	if err := profile.Validate(); err != nil {
		return goerr.Wrap(err, "invalid profile")
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO profiles (workspace_id, user_id, name, skills, interests, industry,
			company, designation, experience_years, department, is_mentor, is_hiring,
			location, avatar_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (workspace_id, user_id) DO UPDATE SET
			name = EXCLUDED.name,
			skills = EXCLUDED.skills,
			interests = EXCLUDED.interests,
			industry = EXCLUDED.industry,
			company = EXCLUDED.company,
			designation = EXCLUDED.designation,
			experience_years = EXCLUDED.experience_years,
			department = EXCLUDED.department,
			is_mentor = EXCLUDED.is_mentor,
			is_hiring = EXCLUDED.is_hiring,
			location = EXCLUDED.location,
			avatar_url = EXCLUDED.avatar_url,
			updated_at = EXCLUDED.updated_at`,
		workspaceID, string(profile.UserID), profile.Name,
		emptySliceIfNil(profile.Skills), emptySliceIfNil(profile.Interests),
		profile.Industry, profile.Company, profile.Designation,
		profile.ExperienceYears, profile.Department, profile.IsMentor,
		profile.IsHiring, profile.Location, profile.AvatarURL, time.Now().UTC())
	if err != nil {
		return goerr.Wrap(err, "failed to put profile", goerr.V("user_id", profile.UserID))
	}

	return nil
}

func (r *profileRepository) Get(ctx context.Context, workspaceID string, userID types.UserID) (*model.Profile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE workspace_id = $1 AND user_id = $2`,
		workspaceID, string(userID))

	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("user_id", userID))
		}
		return nil, goerr.Wrap(err, "failed to get profile", goerr.V("user_id", userID))
	}

	return profile, nil
}

func (r *profileRepository) GetMany(ctx context.Context, workspaceID string, userIDs []types.UserID) ([]*model.Profile, error) {
	if len(userIDs) == 0 {
		return []*model.Profile{}, nil
	}

	ids := make([]string, len(userIDs))
	for i, id := range userIDs {
		ids[i] = string(id)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE workspace_id = $1 AND user_id = ANY($2)`,
		workspaceID, ids)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to batch get profiles")
	}
	defer rows.Close()

	return collectProfiles(rows)
}

func (r *profileRepository) List(ctx context.Context, workspaceID string) ([]*model.Profile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE workspace_id = $1
		ORDER BY user_id`,
		workspaceID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list profiles")
	}
	defer rows.Close()

	return collectProfiles(rows)
}

func (r *profileRepository) ListMoreExperienced(ctx context.Context, workspaceID string, moreThanYears int, limit int) ([]*model.Profile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE workspace_id = $1 AND experience_years > $2
		ORDER BY experience_years ASC
		LIMIT $3`,
		workspaceID, moreThanYears, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list experienced profiles")
	}
	defer rows.Close()

	return collectProfiles(rows)
}

func collectProfiles(rows pgx.Rows) ([]*model.Profile, error) {
	profiles := make([]*model.Profile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan profile")
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate profiles")
	}
	return profiles, nil
}

func emptySliceIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
