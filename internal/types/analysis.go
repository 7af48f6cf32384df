// Package types provides type definitions for structured data used throughout the ATS scorer.
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// AnalysisRequest carries one resume/job-description pair to be scored.
// Request objects live for a single call chain and are never persisted.
type AnalysisRequest struct {
	ResumeText     string `json:"resume_text" validate:"required,min=1"`
	JobDescription string `json:"job_description" validate:"required,min=1"`
	Model          string `json:"model,omitempty"`
	Credential     string `json:"-"`
}

// Validate validates the AnalysisRequest using the validator.
func (r *AnalysisRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// FeedbackItem is one titled entry of user-facing feedback derived from an
// analysis result.
type FeedbackItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AnalysisResult is the scored outcome of comparing a resume against a job
// description. Score and MatchPercentage are always within [0,100]; a
// provider response outside that range is rejected upstream, never clamped.
type AnalysisResult struct {
	Score            float64        `json:"score"`
	MatchPercentage  float64        `json:"matchPercentage"`
	KeywordMatches   []string       `json:"keywordMatches"`
	MissingKeywords  []string       `json:"missingKeywords"`
	Suggestions      []string       `json:"suggestions"`
	DetailedAnalysis string         `json:"detailedAnalysis"`
	Feedback         []FeedbackItem `json:"feedback"`
}

// Feedback section titles.
const (
	FeedbackMatchingSkills   = "Matching Skills"
	FeedbackMissingSkills    = "Missing Skills"
	FeedbackSuggestions      = "Suggestions"
	FeedbackDetailedAnalysis = "Detailed Analysis"
)

// DeriveFeedback computes the Feedback entries from the result's own fields.
// Empty sections are omitted.
func (r *AnalysisResult) DeriveFeedback() {
	var items []FeedbackItem
	if len(r.KeywordMatches) > 0 {
		items = append(items, FeedbackItem{
			Title:       FeedbackMatchingSkills,
			Description: strings.Join(r.KeywordMatches, ", "),
		})
	}
	if len(r.MissingKeywords) > 0 {
		items = append(items, FeedbackItem{
			Title:       FeedbackMissingSkills,
			Description: strings.Join(r.MissingKeywords, ", "),
		})
	}
	if len(r.Suggestions) > 0 {
		items = append(items, FeedbackItem{
			Title:       FeedbackSuggestions,
			Description: strings.Join(r.Suggestions, "; "),
		})
	}
	if strings.TrimSpace(r.DetailedAnalysis) != "" {
		items = append(items, FeedbackItem{
			Title:       FeedbackDetailedAnalysis,
			Description: r.DetailedAnalysis,
		})
	}
	r.Feedback = items
}
