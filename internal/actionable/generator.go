package actionable

import (
	"sort"

	"call-coaching-go/internal/types"
)

// MaxRecommendations caps the list returned by Recommend.
const MaxRecommendations = 8

// Dimension names used as categories and lookup keys.
const (
	DimCustomerSatisfaction = "Customer Satisfaction"
	DimTangibles            = "Tangibles"
	DimReliability          = "Reliability"
	DimResponsiveness       = "Responsiveness"
	DimAssurance            = "Assurance"
	DimEmpathy              = "Empathy"
	DimCommunication        = "Communication Skills"
	DimProblemSolving       = "Problem Solving"
	DimDeEscalation         = "De-escalation"
	DimKnowledgeBase        = "Knowledge Base Usage"
	DimCompliance           = "Compliance"
	DimCustomerEffort       = "Customer Effort"
	DimFirstContact         = "First Contact Resolution"
	DimSolutionClarity      = "Solution Clarity"
)

var recommendationText = map[string]string{
	DimCustomerSatisfaction: "Focus on confirming the customer's needs are met before closing and check satisfaction explicitly.",
	DimTangibles:            "Send written follow-ups such as confirmation emails, reference numbers or links to documentation.",
	DimReliability:          "Deliver on commitments made during the call and confirm the fix actually works before ending.",
	DimResponsiveness:       "Reduce hold time and acknowledge requests promptly; tell the customer what you are doing while they wait.",
	DimAssurance:            "Project confidence: explain what will happen next and reassure the customer the issue will be handled.",
	DimEmpathy:              "Acknowledge the customer's feelings and use empathetic statements before moving to the solution.",
	DimCommunication:        "Use clear, courteous language and summarise key points so the customer can follow along.",
	DimProblemSolving:       "Explore alternative solutions and verify the root cause before proposing a fix.",
	DimDeEscalation:         "Apply de-escalation techniques: stay calm, apologise sincerely and offer concrete next steps.",
	DimKnowledgeBase:        "Reference policies, procedures and knowledge base articles to support your answers.",
	DimCompliance:           "Follow verification and disclosure steps on every call, including identity checks and recording notices.",
	DimCustomerEffort:       "Minimise customer effort: avoid asking for information twice and limit transfers.",
	DimFirstContact:         "Aim to resolve the issue on the first contact instead of scheduling callbacks or escalating.",
	DimSolutionClarity:      "Walk through the solution step by step and confirm the customer understands each step.",
}

// Text returns the lookup text for a dimension.
func Text(dimension string) string {
	return recommendationText[dimension]
}

// Recommend produces coaching recommendations for one analysis, sorted by
// priority (high, medium, low) then ascending score, at most
// MaxRecommendations entries.
func Recommend(a types.SignalAnalysis) []types.Recommendation {
	out := []types.Recommendation{}
	add := func(dim string, p types.Priority, score int) {
		out = append(out, types.Recommendation{
			Category:           dim,
			Priority:           p,
			RecommendationText: recommendationText[dim],
			Score:              score,
		})
	}

	if a.CustomerSatisfaction < 70 {
		add(DimCustomerSatisfaction, types.PriorityHigh, a.CustomerSatisfaction)
	}

	sq := a.ServqualMetrics
	for _, d := range []struct {
		dim   string
		score int
	}{
		{DimTangibles, sq.Tangibles},
		{DimReliability, sq.Reliability},
		{DimResponsiveness, sq.Responsiveness},
		{DimAssurance, sq.Assurance},
		{DimEmpathy, sq.Empathy},
	} {
		if d.score < 75 {
			add(d.dim, tiered(d.score, 60), d.score)
		}
	}

	q := a.QualityMetrics
	for _, d := range []struct {
		dim   string
		score int
	}{
		{DimCommunication, q.CommunicationSkills},
		{DimProblemSolving, q.ProblemSolvingEffectiveness},
		{DimDeEscalation, q.DeEscalationTechniques},
		{DimKnowledgeBase, q.KnowledgeBaseUsage},
		{DimCompliance, q.ComplianceAdherence},
	} {
		if d.score < 70 {
			add(d.dim, tiered(d.score, 50), d.score)
		}
	}

	if v := a.PerformanceMetrics.CustomerEffortScore; v < 70 {
		add(DimCustomerEffort, types.PriorityLow, v)
	}
	if v := a.PerformanceMetrics.FirstContactResolution; v < 70 {
		add(DimFirstContact, types.PriorityLow, v)
	}
	if v := a.JourneyAnalysis.SolutionClarityScore; v < 70 {
		add(DimSolutionClarity, types.PriorityLow, v)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Priority.Rank(), out[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return out[i].Score < out[j].Score
	})
	if len(out) > MaxRecommendations {
		out = out[:MaxRecommendations]
	}
	return out
}

// tiered returns high below cutoff, medium otherwise.
func tiered(score, cutoff int) types.Priority {
	if score < cutoff {
		return types.PriorityHigh
	}
	return types.PriorityMedium
}
