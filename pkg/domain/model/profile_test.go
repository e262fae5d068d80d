package model_test

import (
	"testing"

	"github.com/almalink/almalink/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestFingerprint(t *testing.T) {
	base := func() *model.Profile {
		return &model.Profile{
			UserID:          "u1",
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
	}

	t.Run("deterministic", func(t *testing.T) {
		gt.Value(t, base().Fingerprint()).Equal(base().Fingerprint())
	})

	t.Run("cosmetic fields are excluded", func(t *testing.T) {
		a := base()
		b := base()
		b.Name = "Alicia"
		b.Location = "Osaka"
		b.AvatarURL = "https://example.com/new.png"
		gt.Value(t, a.Fingerprint()).Equal(b.Fingerprint())
	})

	t.Run("semantic fields change the hash", func(t *testing.T) {
		a := base()

		b := base()
		b.Skills = []string{"Go", "Rust"}
		gt.Value(t, a.Fingerprint()).NotEqual(b.Fingerprint())

		c := base()
		c.ExperienceYears = 7
		gt.Value(t, a.Fingerprint()).NotEqual(c.Fingerprint())

		d := base()
		d.IsMentor = false
		gt.Value(t, a.Fingerprint()).NotEqual(d.Fingerprint())
	})

	t.Run("list order is significant", func(t *testing.T) {
		a := base()
		b := base()
		b.Skills = []string{"SQL", "Go"}
		gt.Value(t, a.Fingerprint()).NotEqual(b.Fingerprint())
	})

	t.Run("nil and empty slices are equivalent", func(t *testing.T) {
		a := base()
		a.Skills = nil
		b := base()
		b.Skills = []string{}
		gt.Value(t, a.Fingerprint()).Equal(b.Fingerprint())
	})

	t.Run("non-ASCII content hashes stably", func(t *testing.T) {
		a := base()
		a.Company = "日本電気"
		gt.Value(t, a.Fingerprint()).Equal(a.Fingerprint())
		gt.Value(t, a.Fingerprint()).NotEqual(base().Fingerprint())
	})

	t.Run("HTML-sensitive characters hash as literals", func(t *testing.T) {
		// Golden hash over the canonical serialization
		// {"skills":["Go","R&D"],"industry":"Tech <Hardware>",...} with
		// `&`, `<`, and `>` unescaped. HTML-escaping them to & etc.
		// would yield -4radyt instead and break compatibility with hashes
		// stored by the source system.
		p := &model.Profile{
			UserID:   "u1",
			Skills:   []string{"Go", "R&D"},
			Industry: "Tech <Hardware>",
		}
		gt.Value(t, p.Fingerprint()).Equal("-4qvy7g")
	})
}

func TestSummaryText(t *testing.T) {
	t.Run("renders all fields", func(t *testing.T) {
		p := &model.Profile{
			UserID:          "u1",
			Skills:          []string{"Go", "SQL"},
			Interests:       []string{"fintech"},
			Industry:        "Finance",
			Company:         "Ledgerworks",
			Designation:     "Product Manager",
			ExperienceYears: 8,
			Department:      "Payments",
			IsMentor:        true,
			Location:        "London",
		}

		text := p.SummaryText()
		gt.String(t, text).Contains("Skills: Go, SQL")
		gt.String(t, text).Contains("Industry: Finance")
		gt.String(t, text).Contains("Role: Product Manager")
		gt.String(t, text).Contains("Company: Ledgerworks")
		gt.String(t, text).Contains("Experience: 8 years")
		gt.String(t, text).Contains("Department: Payments")
		gt.String(t, text).Contains("Interests: fintech")
		gt.String(t, text).Contains("Mentor: yes")
		gt.String(t, text).Contains("Hiring: no")
		gt.String(t, text).Contains("Location: London")
	})

	t.Run("missing fields render as unknown", func(t *testing.T) {
		p := &model.Profile{UserID: "u1"}
		text := p.SummaryText()
		gt.String(t, text).Contains("Industry: unknown")
		gt.String(t, text).Contains("Role: unknown")
		gt.String(t, text).Contains("Location: unknown")
		gt.String(t, text).Contains("Experience: 0 years")
	})
}

func TestProfileValidate(t *testing.T) {
	t.Run("valid profile", func(t *testing.T) {
		p := &model.Profile{UserID: "u1", ExperienceYears: 3}
		gt.NoError(t, p.Validate())
	})

	t.Run("missing user ID", func(t *testing.T) {
		p := &model.Profile{}
		gt.Error(t, p.Validate())
	})

	t.Run("negative experience", func(t *testing.T) {
		p := &model.Profile{UserID: "u1", ExperienceYears: -1}
		gt.Error(t, p.Validate())
	})
}
