// internal/types/analysis_models.go
package types

// --------------------------------------------
// Enumerations
// --------------------------------------------
type EscalationRisk string

const (
	RiskLow    EscalationRisk = "low"
	RiskMedium EscalationRisk = "medium"
	RiskHigh   EscalationRisk = "high"
)

type ResolutionStatus string

const (
	StatusResolved  ResolutionStatus = "resolved"
	StatusPending   ResolutionStatus = "pending"
	StatusEscalated ResolutionStatus = "escalated"
	StatusFollowUp  ResolutionStatus = "follow-up"
)

type IssueComplexity string

const (
	ComplexitySimple  IssueComplexity = "simple"
	ComplexityMedium  IssueComplexity = "medium"
	ComplexityComplex IssueComplexity = "complex"
)

// --------------------------------------------
// Scorer input
// --------------------------------------------
type TranscriptInput struct {
	RecordingID     string `json:"recordingId,omitempty"`
	Transcript      string `json:"transcript"`
	DurationSeconds int    `json:"durationSeconds"`
}

// --------------------------------------------
// Scorer output
// --------------------------------------------

// SignalAnalysis is the full score record for one transcript. Every int
// field is bounded to [0,100].
type SignalAnalysis struct {
	EscalationRisk          EscalationRisk     `json:"escalationRisk"`
	CustomerSatisfaction    int                `json:"customerSatisfaction"`
	ResolutionEffectiveness int                `json:"resolutionEffectiveness"`
	EmpathyScore            int                `json:"empathyScore"`
	ProfessionalismScore    int                `json:"professionalismScore"`
	ResponsivenessScore     int                `json:"responsivenessScore"`
	EscalationIndicators    []string           `json:"escalationIndicators"`
	SatisfactionSignals     []string           `json:"satisfactionSignals"`
	ServqualMetrics         ServqualMetrics    `json:"servqualMetrics"`
	PerformanceMetrics      PerformanceMetrics `json:"performanceMetrics"`
	QualityMetrics          QualityMetrics     `json:"qualityMetrics"`
	JourneyAnalysis         JourneyAnalysis    `json:"journeyAnalysis"`
}

type ServqualMetrics struct {
	Tangibles      int `json:"tangibles"`
	Reliability    int `json:"reliability"`
	Responsiveness int `json:"responsiveness"`
	Assurance      int `json:"assurance"`
	Empathy        int `json:"empathy"`
}

type PerformanceMetrics struct {
	FirstContactResolution int              `json:"firstContactResolution"`
	AverageHandleTime      int              `json:"averageHandleTime"`
	CustomerEffortScore    int              `json:"customerEffortScore"`
	CallResolutionStatus   ResolutionStatus `json:"callResolutionStatus"`
	ResponseTimeQuality    int              `json:"responseTimeQuality"`
	IssueComplexity        IssueComplexity  `json:"issueComplexity"`
}

type QualityMetrics struct {
	CommunicationSkills         int `json:"communicationSkills"`
	ProblemSolvingEffectiveness int `json:"problemSolvingEffectiveness"`
	DeEscalationTechniques      int `json:"deEscalationTechniques"`
	KnowledgeBaseUsage          int `json:"knowledgeBaseUsage"`
	ComplianceAdherence         int `json:"complianceAdherence"`
}

type JourneyAnalysis struct {
	IssueIdentificationSpeed  int  `json:"issueIdentificationSpeed"`
	RootCauseAnalysisDepth    int  `json:"rootCauseAnalysisDepth"`
	SolutionClarityScore      int  `json:"solutionClarityScore"`
	CustomerEducationProvided bool `json:"customerEducationProvided"`
	FollowUpPlanning          bool `json:"followUpPlanning"`
}

// --------------------------------------------
// Aggregate over many recordings
// --------------------------------------------
type AggregateReport struct {
	TotalAnalyses           int                    `json:"totalAnalyses"`
	CustomerSatisfaction    int                    `json:"customerSatisfaction"`
	ResolutionEffectiveness int                    `json:"resolutionEffectiveness"`
	EmpathyScore            int                    `json:"empathyScore"`
	ProfessionalismScore    int                    `json:"professionalismScore"`
	ResponsivenessScore     int                    `json:"responsivenessScore"`
	ServqualMetrics         ServqualMetrics        `json:"servqualMetrics"`
	Performance             PerformanceAverages    `json:"performanceMetrics"`
	QualityMetrics          QualityMetrics         `json:"qualityMetrics"`
	Journey                 JourneyAverages        `json:"journeyAnalysis"`
	EscalationDistribution  EscalationDistribution `json:"escalationDistribution"`
	ResolutionDistribution  ResolutionDistribution `json:"resolutionDistribution"`
}

type PerformanceAverages struct {
	FirstContactResolution int `json:"firstContactResolution"`
	AverageHandleTime      int `json:"averageHandleTime"`
	CustomerEffortScore    int `json:"customerEffortScore"`
	ResponseTimeQuality    int `json:"responseTimeQuality"`
}

type JourneyAverages struct {
	IssueIdentificationSpeed int `json:"issueIdentificationSpeed"`
	RootCauseAnalysisDepth   int `json:"rootCauseAnalysisDepth"`
	SolutionClarityScore     int `json:"solutionClarityScore"`
	EducationRate            int `json:"educationRate"` // percent of calls
	FollowUpRate             int `json:"followUpRate"`  // percent of calls
}

type EscalationDistribution struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

type ResolutionDistribution struct {
	Resolved  int `json:"resolved"`
	Pending   int `json:"pending"`
	Escalated int `json:"escalated"`
	FollowUp  int `json:"followUp"`
}

// --------------------------------------------
// Coaching recommendations
// --------------------------------------------
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities for sorting; lower ranks sort first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

type Recommendation struct {
	Category           string   `json:"category"`
	Priority           Priority `json:"priority"`
	RecommendationText string   `json:"recommendationText"`
	Score              int      `json:"score"`
}
