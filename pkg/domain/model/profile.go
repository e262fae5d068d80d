package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/almalink/almalink/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Profile represents the semantic attributes of an alumni profile. The
// surrounding platform owns the full profile record; this service only
// carries the fields that feed embedding generation and match results.
// All fields except UserID are optional.
type Profile struct {
	UserID          types.UserID
	Name            string
	Skills          []string
	Interests       []string
	Industry        string
	Company         string
	Designation     string
	ExperienceYears int
	Department      string
	IsMentor        bool
	IsHiring        bool
	Location        string
	AvatarURL       string
	UpdatedAt       time.Time
}

// Validate checks if the Profile is valid
func (p *Profile) Validate() error {
	if err := p.UserID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid profile user ID")
	}
	if p.ExperienceYears < 0 {
		return goerr.New("experience years must not be negative",
			goerr.V("user_id", p.UserID),
			goerr.V("experience_years", p.ExperienceYears))
	}
	return nil
}

// fingerprintPayload is the canonical subset of profile fields that affect
// embedding content. Field order is part of the on-disk fingerprint format:
// reordering fields (or list elements) changes stored hashes and invalidates
// every cached embedding.
type fingerprintPayload struct {
	Skills          []string `json:"skills"`
	Industry        string   `json:"industry"`
	Designation     string   `json:"designation"`
	Company         string   `json:"company"`
	ExperienceYears int      `json:"experience_years"`
	Interests       []string `json:"interests"`
	Department      string   `json:"department"`
	IsMentor        bool     `json:"is_mentor"`
	IsHiring        bool     `json:"is_hiring"`
}

// Fingerprint derives a short change-detection hash over the semantic subset
// of profile fields. Identical serialized content always yields the same
// hash. Name, location, and avatar are deliberately excluded: changing them
// does not require regenerating the embedding.
func (p *Profile) Fingerprint() string {
	payload := fingerprintPayload{
		Skills:          emptyIfNil(p.Skills),
		Industry:        p.Industry,
		Designation:     p.Designation,
		Company:         p.Company,
		ExperienceYears: p.ExperienceYears,
		Interests:       emptyIfNil(p.Interests),
		Department:      p.Department,
		IsMentor:        p.IsMentor,
		IsHiring:        p.IsHiring,
	}

	// Struct fields marshal in declaration order with no whitespace, so
	// the serialization is deterministic. HTML escaping is disabled because
	// the source system hashed `<`, `>`, and `&` as literal characters.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		// Encode of a plain struct of strings/ints/bools cannot fail
		panic(fmt.Sprintf("fingerprint serialization failed: %v", err))
	}

	return rollingHash(strings.TrimSuffix(buf.String(), "\n"))
}

// rollingHash is a base-31 multiplicative hash with 32-bit signed wraparound
// over UTF-16 code units, rendered in base-36. This is a change detector,
// not a security primitive; it must stay bit-compatible with previously
// stored fingerprints.
func rollingHash(s string) string {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(u)
	}
	return strconv.FormatInt(int64(h), 36)
}

// SummaryText renders the profile as a single text block for embedding
// generation. Every field is present even when empty so the downstream
// model always sees the same structure.
func (p *Profile) SummaryText() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Skills: %s", strings.Join(p.Skills, ", "))
	fmt.Fprintf(&sb, " | Industry: %s", orUnknown(p.Industry))
	fmt.Fprintf(&sb, " | Role: %s", orUnknown(p.Designation))
	fmt.Fprintf(&sb, " | Company: %s", orUnknown(p.Company))
	fmt.Fprintf(&sb, " | Experience: %d years", p.ExperienceYears)
	fmt.Fprintf(&sb, " | Department: %s", orUnknown(p.Department))
	fmt.Fprintf(&sb, " | Interests: %s", strings.Join(p.Interests, ", "))
	fmt.Fprintf(&sb, " | Mentor: %s", yesNo(p.IsMentor))
	fmt.Fprintf(&sb, " | Hiring: %s", yesNo(p.IsHiring))
	fmt.Fprintf(&sb, " | Location: %s", orUnknown(p.Location))

	return sb.String()
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
