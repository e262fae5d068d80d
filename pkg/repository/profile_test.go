package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/almalink/almalink/pkg/domain/interfaces"
	"github.com/almalink/almalink/pkg/domain/model"
	"github.com/almalink/almalink/pkg/domain/types"
)

func runProfileRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put and Get round-trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		wsID := testWSID()

		profile := &model.Profile{
			UserID:          "alice",
			Name:            "Alice",
			Skills:          []string{"Go", "SQL"},
			Interests:       []string{"mentoring"},
			Industry:        "Technology",
			Company:         "Cloudline",
			Designation:     "Engineer",
			ExperienceYears: 6,
			Department:      "Platform",
			IsMentor:        true,
			Location:        "Tokyo",
		}
		gt.NoError(t, repo.Profile().Put(ctx, wsID, profile)).Required()

		retrieved, err := repo.Profile().Get(ctx, wsID, "alice")
		gt.NoError(t, err).Required()

		gt.Value(t, retrieved.UserID).Equal(profile.UserID)
		gt.Value(t, retrieved.Name).Equal(profile.Name)
		gt.Array(t, retrieved.Skills).Length(2)
		gt.Value(t, retrieved.ExperienceYears).Equal(6)
		gt.Bool(t, retrieved.IsMentor).True()
	})

	t.Run("Put replaces existing profile", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		wsID := testWSID()

		gt.NoError(t, repo.Profile().Put(ctx, wsID, &model.Profile{
			UserID: "alice",
			Skills: []string{"Go"},
		})).Required()
		gt.NoError(t, repo.Profile().Put(ctx, wsID, &model.Profile{
			UserID: "alice",
			Skills: []string{"Rust"},
		})).Required()

		retrieved, err := repo.Profile().Get(ctx, wsID, "alice")
		gt.NoError(t, err).Required()
		gt.Array(t, retrieved.Skills).Length(1)
		gt.Value(t, retrieved.Skills[0]).Equal("Rust")
	})

	t.Run("Get returns ErrNotFound for missing user", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		wsID := testWSID()

		_, err := repo.Profile().Get(ctx, wsID, "nobody")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("GetMany omits missing users", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		wsID := testWSID()

		gt.NoError(t, repo.Profile().Put(ctx, wsID, &model.Profile{UserID: "alice"})).Required()
		gt.NoError(t, repo.Profile().Put(ctx, wsID, &model.Profile{UserID: "bob"})).Required()

		profiles, err := repo.Profile().GetMany(ctx, wsID, []types.UserID{"alice", "ghost", "bob"})
		gt.NoError(t, err).Required()
		gt.Array(t, profiles).Length(2)
	})

	t.Run("List returns all profiles in workspace", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		wsID := testWSID()

		for _, id := range []types.UserID{"a", "b", "c"} {
			gt.NoError(t, repo.Profile().Put(ctx, wsID, &model.Profile{UserID: id})).Required()
		}

		profiles, err := repo.Profile().List(ctx, wsID)
		gt.NoError(t, err).Required()
		gt.Array(t, profiles).Length(3)
	})

	t.Run("workspaces are isolated", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		wsID := testWSID()

		gt.NoError(t, repo.Profile().Put(ctx, wsID, &model.Profile{UserID: "alice"})).Required()

		_, err := repo.Profile().Get(ctx, testWSID(), "alice")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("ListMoreExperienced is strictly greater and ordered", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		wsID := testWSID()

		years := map[types.UserID]int{
			"junior":    2,
			"boundary":  5,
			"senior":    6,
			"staff":     9,
			"principal": 14,
		}
		for id, y := range years {
			gt.NoError(t, repo.Profile().Put(ctx, wsID, &model.Profile{
				UserID:          id,
				ExperienceYears: y,
			})).Required()
		}

		profiles, err := repo.Profile().ListMoreExperienced(ctx, wsID, 5, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, profiles).Length(3)
		gt.Value(t, profiles[0].UserID).Equal(types.UserID("senior"))
		gt.Value(t, profiles[1].UserID).Equal(types.UserID("staff"))
		gt.Value(t, profiles[2].UserID).Equal(types.UserID("principal"))
	})

	t.Run("ListMoreExperienced honors limit", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		wsID := testWSID()

		for i, id := range []types.UserID{"a", "b", "c", "d"} {
			gt.NoError(t, repo.Profile().Put(ctx, wsID, &model.Profile{
				UserID:          id,
				ExperienceYears: 10 + i,
			})).Required()
		}

		profiles, err := repo.Profile().ListMoreExperienced(ctx, wsID, 0, 2)
		gt.NoError(t, err).Required()
		gt.Array(t, profiles).Length(2)
		gt.Value(t, profiles[0].ExperienceYears).Equal(10)
		gt.Value(t, profiles[1].ExperienceYears).Equal(11)
	})
}

func TestProfileRepository_Memory(t *testing.T) {
	runProfileRepositoryTest(t, newMemoryRepo)
}

func TestProfileRepository_Firestore(t *testing.T) {
	runProfileRepositoryTest(t, newFirestoreRepo)
}

func TestProfileRepository_Postgres(t *testing.T) {
	runProfileRepositoryTest(t, newPostgresRepo)
}
