package model

// CareerStep is one stage in a predicted career trajectory
type CareerStep struct {
	Role        string `json:"role"`
	Years       string `json:"years"`
	CompanyType string `json:"company_type,omitempty"`
}

// CareerPrediction is the structured output of career-path inference.
// It is returned to the caller verbatim and never persisted.
type CareerPrediction struct {
	CurrentRole      string       `json:"current_role"`
	NextRole         string       `json:"next_role"`
	Timeline         string       `json:"timeline"`
	SkillsNeeded     []string     `json:"skills_needed"`
	CareerTrajectory []CareerStep `json:"career_trajectory"`
	SuggestedMentors []string     `json:"suggested_mentors,omitempty"`
}
