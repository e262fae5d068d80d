package career

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/almalink/almalink/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

// client implements Service interface
type client struct {
	llmClient gollem.LLMClient
}

// New creates a new career-path inference service with the provided LLM client
func New(llmClient gollem.LLMClient) (Service, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	return &client{llmClient: llmClient}, nil
}

// Predict issues one constrained completion call with the subject profile
// and the senior cohort as context
func (c *client) Predict(ctx context.Context, subject *model.Profile, cohort []*model.Profile) (*model.CareerPrediction, error) {
	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(buildResponseSchema()),
		gollem.WithSessionSystemPrompt(buildSystemPrompt()),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buildUserPrompt(subject, cohort)))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate career prediction")
	}

	if resp == nil || len(resp.Texts) == 0 {
		return nil, goerr.Wrap(ErrInferenceFailed, "no structured output in response")
	}

	var prediction model.CareerPrediction
	if err := json.Unmarshal([]byte(resp.Texts[0]), &prediction); err != nil {
		return nil, goerr.Wrap(ErrInferenceFailed, "response is not a structured prediction",
			goerr.V("response", resp.Texts[0]))
	}

	return &prediction, nil
}

func buildSystemPrompt() string {
	var sb strings.Builder

	sb.WriteString("You are a career-path prediction assistant for an alumni network.\n\n")
	sb.WriteString("You are given a subject profile and a cohort of alumni with materially more experience. Infer the subject's likely career trajectory from the patterns in the cohort.\n\n")
	sb.WriteString("## Instructions:\n\n")
	sb.WriteString("1. Base the prediction on the roles, industries, and skill progressions observed in the cohort.\n")
	sb.WriteString("2. Provide the subject's current role, the most likely next role, and a realistic timeline for the transition.\n")
	sb.WriteString("3. List the concrete skills the subject should acquire for the next step.\n")
	sb.WriteString("4. Lay out the career trajectory as ordered steps with role, duration, and company type where relevant.\n")

	return sb.String()
}

func buildUserPrompt(subject *model.Profile, cohort []*model.Profile) string {
	var sb strings.Builder

	sb.WriteString("## Subject profile:\n\n")
	sb.WriteString(subject.SummaryText())
	sb.WriteString("\n\n")

	sb.WriteString("## Senior alumni cohort (ascending experience):\n\n")
	for _, p := range cohort {
		fmt.Fprintf(&sb, "- %s: %s at %s, %s industry, %d years, skills: %s\n",
			orUnnamed(p.Name), orUnknown(p.Designation), orUnknown(p.Company),
			orUnknown(p.Industry), p.ExperienceYears, strings.Join(p.Skills, ", "))
	}

	return sb.String()
}

// buildResponseSchema creates the JSON schema for structured output
func buildResponseSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "CareerPrediction",
		Description: "Predicted career trajectory for the subject profile",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"current_role": {
				Type:        gollem.TypeString,
				Description: "The subject's current role",
			},
			"next_role": {
				Type:        gollem.TypeString,
				Description: "The most likely next role",
			},
			"timeline": {
				Type:        gollem.TypeString,
				Description: "Realistic timeline for reaching the next role",
			},
			"skills_needed": {
				Type:        gollem.TypeArray,
				Description: "Skills the subject should acquire for the next step",
				Items: &gollem.Parameter{
					Type: gollem.TypeString,
				},
			},
			"career_trajectory": {
				Type:        gollem.TypeArray,
				Description: "Ordered career steps",
				Items: &gollem.Parameter{
					Type: gollem.TypeObject,
					Properties: map[string]*gollem.Parameter{
						"role": {
							Type:        gollem.TypeString,
							Description: "Role at this step",
						},
						"years": {
							Type:        gollem.TypeString,
							Description: "Expected duration in this role",
						},
						"company_type": {
							Type:        gollem.TypeString,
							Description: "Type of company for this step",
						},
					},
					Required: []string{"role", "years"},
				},
			},
			"suggested_mentors": {
				Type:        gollem.TypeArray,
				Description: "Names of cohort members who would make good mentors",
				Items: &gollem.Parameter{
					Type: gollem.TypeString,
				},
			},
		},
		Required: []string{"current_role", "next_role", "timeline", "skills_needed", "career_trajectory"},
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func orUnnamed(s string) string {
	if s == "" {
		return "(unnamed)"
	}
	return s
}
