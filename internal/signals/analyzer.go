package signals

import (
	"io"
	"strings"

	"call-coaching-go/internal/types"
	"github.com/sirupsen/logrus"
)

const (
	highRiskRatio   = 3.0
	mediumRiskRatio = 1.5
	maxSignalList   = 3
)

// Analyzer scores transcripts against a keyword table. It holds no mutable
// state and is safe for concurrent use.
type Analyzer struct {
	table KeywordTable
	log   logrus.FieldLogger
}

// NewAnalyzer builds an analyzer. A nil log discards output.
func NewAnalyzer(table KeywordTable, log logrus.FieldLogger) *Analyzer {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	if table.Categories == nil {
		table = DefaultKeywords()
	}
	return &Analyzer{table: table, log: log}
}

// Analyze scores with the default keyword table.
func Analyze(transcript string, durationSeconds int) types.SignalAnalysis {
	return NewAnalyzer(DefaultKeywords(), nil).Analyze(transcript, durationSeconds)
}

// TableVersion reports which keyword table version produced the scores.
func (a *Analyzer) TableVersion() string {
	return a.table.Version
}

// DefaultAnalysis is the baseline returned for an empty transcript.
func DefaultAnalysis() types.SignalAnalysis {
	return types.SignalAnalysis{
		EscalationRisk:          types.RiskLow,
		CustomerSatisfaction:    75,
		ResolutionEffectiveness: 70,
		EmpathyScore:            70,
		ProfessionalismScore:    75,
		ResponsivenessScore:     70,
		EscalationIndicators:    []string{},
		SatisfactionSignals:     []string{},
		ServqualMetrics: types.ServqualMetrics{
			Tangibles:      70,
			Reliability:    70,
			Responsiveness: 70,
			Assurance:      70,
			Empathy:        70,
		},
		PerformanceMetrics: types.PerformanceMetrics{
			FirstContactResolution: 50,
			AverageHandleTime:      70,
			CustomerEffortScore:    70,
			CallResolutionStatus:   types.StatusPending,
			ResponseTimeQuality:    70,
			IssueComplexity:        types.ComplexitySimple,
		},
		QualityMetrics: types.QualityMetrics{
			CommunicationSkills:         70,
			ProblemSolvingEffectiveness: 70,
			DeEscalationTechniques:      70,
			KnowledgeBaseUsage:          70,
			ComplianceAdherence:         70,
		},
		JourneyAnalysis: types.JourneyAnalysis{
			IssueIdentificationSpeed:  60,
			RootCauseAnalysisDepth:    50,
			SolutionClarityScore:      60,
			CustomerEducationProvided: false,
			FollowUpPlanning:          false,
		},
	}
}

// counts holds per-category keyword counts for one transcript.
type counts struct {
	text      string
	wordCount int
	per100    float64
	n         map[string]int
}

func (c counts) ratio(category string) float64 {
	return float64(c.n[category]) / c.per100
}

func (a *Analyzer) count(text string) counts {
	wc := len(strings.Fields(text))
	per100 := float64(wc) / 100
	if per100 < 1 {
		per100 = 1
	}
	c := counts{text: text, wordCount: wc, per100: per100, n: make(map[string]int, len(a.table.Categories))}
	for cat, kws := range a.table.Categories {
		c.n[cat] = countAll(text, kws)
	}
	return c
}

// Analyze scores a single transcript. It never fails; an empty or
// whitespace-only transcript yields DefaultAnalysis.
func (a *Analyzer) Analyze(transcript string, durationSeconds int) types.SignalAnalysis {
	if strings.TrimSpace(transcript) == "" {
		a.log.Debug("empty transcript, returning default analysis")
		return DefaultAnalysis()
	}

	c := a.count(strings.ToLower(transcript))
	esc := c.ratio(CatEscalation)
	sat := c.ratio(CatSatisfaction)
	emp := c.ratio(CatEmpathy)
	prof := c.ratio(CatProfessionalism)

	risk := riskFor(esc)
	empathy := score(40 + emp*15)
	professionalism := score(50 + prof*12 - esc*5)
	aht := handleTimeScore(durationSeconds)
	responsiveness := score(30 + float64(aht)*0.5 + float64(c.n[CatResponsiveness])*5 - float64(c.n[CatWaiting])*3)

	status := resolutionStatus(risk, c)

	out := types.SignalAnalysis{
		EscalationRisk:          risk,
		CustomerSatisfaction:    score(50 + sat*10 - esc*15),
		ResolutionEffectiveness: score(60 + float64(c.n[CatResolution])*8 - esc*10),
		EmpathyScore:            empathy,
		ProfessionalismScore:    professionalism,
		ResponsivenessScore:     responsiveness,
		EscalationIndicators:    escalationIndicators(c.text),
		SatisfactionSignals:     satisfactionSignals(c.text),
		ServqualMetrics: types.ServqualMetrics{
			Tangibles:      score(60 + float64(c.n[CatTangibles])*8),
			Reliability:    score(55 + float64(c.n[CatResolution])*10 - esc*8),
			Responsiveness: responsiveness,
			Assurance:      score(50 + prof*10 + float64(c.n[CatAssurance])*8),
			Empathy:        empathy,
		},
		PerformanceMetrics: types.PerformanceMetrics{
			FirstContactResolution: score(float64(fcrBase(status) + c.n[CatSatisfaction]*2)),
			AverageHandleTime:      aht,
			CustomerEffortScore:    score(80 - esc*10 - float64(c.n[CatEffort])*5),
			CallResolutionStatus:   status,
			ResponseTimeQuality:    score(70 + float64(c.n[CatResponsiveness])*6 - float64(c.n[CatWaiting])*5),
			IssueComplexity:        complexity(c),
		},
		QualityMetrics: types.QualityMetrics{
			CommunicationSkills:         score(float64(professionalism)*0.6 + float64(empathy)*0.4),
			ProblemSolvingEffectiveness: score(50 + float64(c.n[CatResolution])*10 + float64(c.n[CatSolution])*5),
			DeEscalationTechniques:      deEscalation(c, esc),
			KnowledgeBaseUsage:          score(50 + float64(c.n[CatKnowledge])*10),
			ComplianceAdherence:         score(70 + float64(c.n[CatCompliance])*10),
		},
		JourneyAnalysis: types.JourneyAnalysis{
			IssueIdentificationSpeed:  a.identificationSpeed(c.text),
			RootCauseAnalysisDepth:    score(40 + float64(c.n[CatRootCause])*12),
			SolutionClarityScore:      score(50 + float64(c.n[CatSolution])*6 + float64(c.n[CatClarity])*6),
			CustomerEducationProvided: c.n[CatEducation] > 0,
			FollowUpPlanning:          c.n[CatFollowUp] > 0,
		},
	}

	a.log.WithFields(logrus.Fields{
		"word_count":        c.wordCount,
		"escalation_count":  c.n[CatEscalation],
		"escalation_ratio":  esc,
		"escalation_risk":   out.EscalationRisk,
		"satisfaction":      out.CustomerSatisfaction,
		"resolution_status": status,
		"keyword_version":   a.table.Version,
	}).Debug("transcript analyzed")
	return out
}

func riskFor(escalationRatio float64) types.EscalationRisk {
	switch {
	case escalationRatio > highRiskRatio:
		return types.RiskHigh
	case escalationRatio > mediumRiskRatio:
		return types.RiskMedium
	default:
		return types.RiskLow
	}
}

func handleTimeScore(durationSeconds int) int {
	switch {
	case durationSeconds <= 300:
		return 90
	case durationSeconds <= 480:
		return 80
	case durationSeconds <= 600:
		return 70
	case durationSeconds <= 900:
		return 60
	default:
		return 40
	}
}

func resolutionStatus(risk types.EscalationRisk, c counts) types.ResolutionStatus {
	switch {
	case risk == types.RiskHigh || c.n[CatTransfer] > 0:
		return types.StatusEscalated
	case c.n[CatResolution] > 0:
		return types.StatusResolved
	case c.n[CatFollowUp] > 0:
		return types.StatusFollowUp
	default:
		return types.StatusPending
	}
}

func fcrBase(status types.ResolutionStatus) int {
	switch status {
	case types.StatusResolved:
		return 85
	case types.StatusFollowUp:
		return 50
	case types.StatusEscalated:
		return 20
	default:
		return 40
	}
}

func complexity(c counts) types.IssueComplexity {
	tech := c.n[CatTechnical]
	switch {
	case c.wordCount > 1500 || tech > 5:
		return types.ComplexityComplex
	case c.wordCount > 600 || tech > 2:
		return types.ComplexityMedium
	default:
		return types.ComplexitySimple
	}
}

func deEscalation(c counts, esc float64) int {
	if c.n[CatEscalation] == 0 {
		return 80
	}
	return score(50 + float64(c.n[CatEmpathy])*8 - esc*5)
}

func (a *Analyzer) identificationSpeed(text string) int {
	first := -1
	for _, kw := range a.table.Keywords(CatIdentification) {
		off := firstWordOffset(text, strings.ToLower(kw))
		if off >= 0 && (first < 0 || off < first) {
			first = off
		}
	}
	if first < 0 {
		return 50
	}
	return score(100 - 100*float64(first)/float64(len(text)))
}

type phraseCheck struct {
	needles []string
	message string
}

var escalationChecks = []phraseCheck{
	{[]string{"supervisor", "manager"}, "Customer requested a supervisor or manager"},
	{[]string{"cancel"}, "Customer mentioned cancelling the service"},
	{[]string{"refund"}, "Customer requested a refund"},
	{[]string{"angry", "frustrated", "upset"}, "Customer expressed frustration"},
	{[]string{"lawyer", "legal"}, "Customer mentioned legal action"},
	{[]string{"complaint"}, "Customer threatened to file a complaint"},
}

var satisfactionChecks = []phraseCheck{
	{[]string{"thank"}, "Customer expressed gratitude"},
	{[]string{"great", "excellent", "perfect"}, "Customer gave positive feedback"},
	{[]string{"resolved", "fixed", "solved"}, "Issue confirmed as resolved"},
	{[]string{"appreciate"}, "Customer showed appreciation"},
	{[]string{"helpful"}, "Customer found the agent helpful"},
}

func escalationIndicators(text string) []string {
	return collect(text, escalationChecks)
}

func satisfactionSignals(text string) []string {
	return collect(text, satisfactionChecks)
}

// collect runs checks in order and keeps at most maxSignalList hits.
func collect(text string, checks []phraseCheck) []string {
	out := []string{}
	for _, chk := range checks {
		if len(out) == maxSignalList {
			break
		}
		if containsAny(text, chk.needles...) {
			out = append(out, chk.message)
		}
	}
	return out
}
