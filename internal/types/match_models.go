package types

import "time"

type MatchType string

const (
	MatchExactTitle MatchType = "exact_title"
	MatchNone       MatchType = "no_match"
	MatchFuzzy      MatchType = "fuzzy"
)

// Candidate is a recording a scorecard spreadsheet can be linked to.
type Candidate struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type TitleMatchResult struct {
	RecordingID        string    `json:"recordingId"`
	RecordingTitle     string    `json:"recordingTitle"`
	MatchConfidence    float64   `json:"matchConfidence"`
	MatchType          MatchType `json:"matchType"`
	NormalizedFilename string    `json:"normalizedFilename"`
}

// FuzzyReference is the record being linked. Duration and date are optional
// secondary signals.
type FuzzyReference struct {
	Identifier      string     `json:"identifier"`
	DurationSeconds *int       `json:"durationSeconds,omitempty"`
	Date            *time.Time `json:"date,omitempty"`
}

type FuzzyCandidate struct {
	ID              string     `json:"id"`
	Identifier      string     `json:"identifier"`
	DurationSeconds *int       `json:"durationSeconds,omitempty"`
	Date            *time.Time `json:"date,omitempty"`
}

// FuzzyMatchResult is never applied automatically; RequiresReview is always true.
type FuzzyMatchResult struct {
	CandidateID    string    `json:"candidateId"`
	Identifier     string    `json:"identifier"`
	Similarity     float64   `json:"similarity"`
	Score          float64   `json:"score"`
	DurationMatch  bool      `json:"durationMatch"`
	DateMatch      bool      `json:"dateMatch"`
	MatchType      MatchType `json:"matchType"`
	RequiresReview bool      `json:"requiresReview"`
}

// CallRecord is one row of a recordings spreadsheet.
type CallRecord struct {
	RecordingID     string     `json:"recording_id"`
	Title           string     `json:"title,omitempty"`
	Transcript      string     `json:"transcript,omitempty"`
	DurationSeconds int        `json:"duration_seconds,omitempty"`
	Date            *time.Time `json:"date,omitempty"`
}
