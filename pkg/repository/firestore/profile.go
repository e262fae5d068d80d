package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/almalink/almalink/pkg/domain/model"
	"github.com/almalink/almalink/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// profileDoc is the Firestore document representation of model.Profile
type profileDoc struct {
	UserID          string    `firestore:"user_id"`
	Name            string    `firestore:"name"`
	Skills          []string  `firestore:"skills"`
	Interests       []string  `firestore:"interests"`
	Industry        string    `firestore:"industry"`
	Company         string    `firestore:"company"`
	Designation     string    `firestore:"designation"`
	ExperienceYears int       `firestore:"experience_years"`
	Department      string    `firestore:"department"`
	IsMentor        bool      `firestore:"is_mentor"`
	IsHiring        bool      `firestore:"is_hiring"`
	Location        string    `firestore:"location"`
	AvatarURL       string    `firestore:"avatar_url"`
	UpdatedAt       time.Time `firestore:"updated_at"`
}

func toProfileDoc(p *model.Profile) *profileDoc {
	return &profileDoc{
		UserID:          string(p.UserID),
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

func fromProfileDoc(d *profileDoc) *model.Profile {
	return &model.Profile{
		UserID:          types.UserID(d.UserID),
		Name:            d.Name,
		Skills:          d.Skills,
		Interests:       d.Interests,
		Industry:        d.Industry,
		Company:         d.Company,
		Designation:     d.Designation,
		ExperienceYears: d.ExperienceYears,
		Department:      d.Department,
		IsMentor:        d.IsMentor,
		IsHiring:        d.IsHiring,
		Location:        d.Location,
		AvatarURL:       d.AvatarURL,
		UpdatedAt:       d.UpdatedAt,
	}
}

type profileRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newProfileRepository(client *firestore.Client) *profileRepository {
	return &profileRepository{client: client}
}

// profilesCollection returns the subcollection path:
// workspaces/{workspaceID}/profiles
func (r *profileRepository) profilesCollection(workspaceID string) *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix+"workspaces").Doc(workspaceID).
		Collection("profiles")
}

func (r *profileRepository) Put(ctx context.Context, workspaceID string, profile *model.Profile) error {
	if err := profile.Validate(); err != nil {
		return goerr.Wrap(err, "invalid profile")
	}

	stored := *profile
	stored.UpdatedAt = time.Now().UTC()

	docRef := r.profilesCollection(workspaceID).Doc(string(profile.UserID))
	if _, err := docRef.Set(ctx, toProfileDoc(&stored)); err != nil {
		return goerr.Wrap(err, "failed to put profile", goerr.V("user_id", profile.UserID))
	}

	return nil
}

func (r *profileRepository) Get(ctx context.Context, workspaceID string, userID types.UserID) (*model.Profile, error) {
	doc, err := r.profilesCollection(workspaceID).Doc(string(userID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("user_id", userID))
		}
		return nil, goerr.Wrap(err, "failed to get profile", goerr.V("user_id", userID))
	}

	var d profileDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal profile", goerr.V("user_id", userID))
	}

	return fromProfileDoc(&d), nil
}

func (r *profileRepository) GetMany(ctx context.Context, workspaceID string, userIDs []types.UserID) ([]*model.Profile, error) {
	if len(userIDs) == 0 {
		return []*model.Profile{}, nil
	}

	// Batch read to avoid one round trip per candidate
	refs := make([]*firestore.DocumentRef, len(userIDs))
	for i, id := range userIDs {
		refs[i] = r.profilesCollection(workspaceID).Doc(string(id))
	}

	docs, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to batch get profiles")
	}

	result := make([]*model.Profile, 0, len(docs))
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		var d profileDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal profile")
		}
		result = append(result, fromProfileDoc(&d))
	}

	return result, nil
}

func (r *profileRepository) List(ctx context.Context, workspaceID string) ([]*model.Profile, error) {
	iter := r.profilesCollection(workspaceID).Documents(ctx)
	defer iter.Stop()

	profiles := make([]*model.Profile, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate profiles")
		}

		var d profileDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal profile")
		}

		profiles = append(profiles, fromProfileDoc(&d))
	}

	return profiles, nil
}

func (r *profileRepository) ListMoreExperienced(ctx context.Context, workspaceID string, moreThanYears int, limit int) ([]*model.Profile, error) {
	q := r.profilesCollection(workspaceID).
		Where("experience_years", ">", moreThanYears).
		OrderBy("experience_years", firestore.Asc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	profiles := make([]*model.Profile, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate experienced profiles")
		}

		var d profileDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal profile")
		}

		profiles = append(profiles, fromProfileDoc(&d))
	}

	return profiles, nil
}
