package signals

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"call-coaching-go/internal/types"
)

func boundedFields(a types.SignalAnalysis) map[string]int {
	return map[string]int{
		"customerSatisfaction":        a.CustomerSatisfaction,
		"resolutionEffectiveness":     a.ResolutionEffectiveness,
		"empathyScore":                a.EmpathyScore,
		"professionalismScore":        a.ProfessionalismScore,
		"responsivenessScore":         a.ResponsivenessScore,
		"servqual.tangibles":          a.ServqualMetrics.Tangibles,
		"servqual.reliability":        a.ServqualMetrics.Reliability,
		"servqual.responsiveness":     a.ServqualMetrics.Responsiveness,
		"servqual.assurance":          a.ServqualMetrics.Assurance,
		"servqual.empathy":            a.ServqualMetrics.Empathy,
		"perf.firstContactResolution": a.PerformanceMetrics.FirstContactResolution,
		"perf.averageHandleTime":      a.PerformanceMetrics.AverageHandleTime,
		"perf.customerEffortScore":    a.PerformanceMetrics.CustomerEffortScore,
		"perf.responseTimeQuality":    a.PerformanceMetrics.ResponseTimeQuality,
		"quality.communication":       a.QualityMetrics.CommunicationSkills,
		"quality.problemSolving":      a.QualityMetrics.ProblemSolvingEffectiveness,
		"quality.deEscalation":        a.QualityMetrics.DeEscalationTechniques,
		"quality.knowledgeBase":       a.QualityMetrics.KnowledgeBaseUsage,
		"quality.compliance":          a.QualityMetrics.ComplianceAdherence,
		"journey.identification":      a.JourneyAnalysis.IssueIdentificationSpeed,
		"journey.rootCause":           a.JourneyAnalysis.RootCauseAnalysisDepth,
		"journey.solutionClarity":     a.JourneyAnalysis.SolutionClarityScore,
	}
}

func TestAnalyze_EmptyTranscriptReturnsDefault(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t "} {
		got := Analyze(in, 120)
		if !reflect.DeepEqual(got, DefaultAnalysis()) {
			t.Fatalf("Analyze(%q) got %+v want default analysis", in, got)
		}
	}
	def := DefaultAnalysis()
	if def.CustomerSatisfaction != 75 || def.EscalationRisk != types.RiskLow {
		t.Fatalf("default analysis baseline changed: %+v", def)
	}
}

func TestAnalyze_WorkedExample(t *testing.T) {
	transcript := "Thank you for calling, how can I help? I am so frustrated, my login keeps failing. " +
		"I understand, I am sorry. Let me check right away. It is fixed now. Thanks, that was helpful!"

	got := Analyze(transcript, 240)

	want := types.SignalAnalysis{
		EscalationRisk:          types.RiskLow,
		CustomerSatisfaction:    65,
		ResolutionEffectiveness: 58,
		EmpathyScore:            70,
		ProfessionalismScore:    45,
		ResponsivenessScore:     85,
		EscalationIndicators:    []string{"Customer expressed frustration"},
		SatisfactionSignals: []string{
			"Customer expressed gratitude",
			"Issue confirmed as resolved",
			"Customer found the agent helpful",
		},
		ServqualMetrics: types.ServqualMetrics{
			Tangibles:      60,
			Reliability:    57,
			Responsiveness: 85,
			Assurance:      50,
			Empathy:        70,
		},
		PerformanceMetrics: types.PerformanceMetrics{
			FirstContactResolution: 91,
			AverageHandleTime:      90,
			CustomerEffortScore:    70,
			CallResolutionStatus:   types.StatusResolved,
			ResponseTimeQuality:    82,
			IssueComplexity:        types.ComplexitySimple,
		},
		QualityMetrics: types.QualityMetrics{
			CommunicationSkills:         55,
			ProblemSolvingEffectiveness: 60,
			DeEscalationTechniques:      61,
			KnowledgeBaseUsage:          50,
			ComplianceAdherence:         70,
		},
		JourneyAnalysis: types.JourneyAnalysis{
			IssueIdentificationSpeed: 87,
			RootCauseAnalysisDepth:   40,
			SolutionClarityScore:     50,
		},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("worked example mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestAnalyze_CaseInsensitive(t *testing.T) {
	upper := Analyze("ANGRY customer", 60)
	lower := Analyze("angry customer", 60)
	if !reflect.DeepEqual(upper, lower) {
		t.Fatalf("case changed the analysis:\n%+v\n%+v", upper, lower)
	}
	if lower.CustomerSatisfaction != 35 {
		t.Fatalf("CustomerSatisfaction got %d want 35", lower.CustomerSatisfaction)
	}
}

func TestAnalyze_WholeWordOnly(t *testing.T) {
	got := Analyze("angrier customer", 60)
	if got.CustomerSatisfaction != 50 {
		t.Fatalf("angrier counted as escalation: satisfaction=%d want 50", got.CustomerSatisfaction)
	}
	if got.QualityMetrics.DeEscalationTechniques != 80 {
		t.Fatalf("DeEscalationTechniques got %d want 80", got.QualityMetrics.DeEscalationTechniques)
	}
}

func TestAnalyze_EscalationThresholds(t *testing.T) {
	filler := strings.Repeat("okay ", 196)
	tests := []struct {
		name       string
		transcript string
		want       types.EscalationRisk
	}{
		{"ratio exactly 3 is medium", "angry upset awful", types.RiskMedium},
		{"ratio above 3 is high", "angry upset awful terrible", types.RiskHigh},
		{"ratio exactly 1.5 is low", filler + "okay angry upset awful", types.RiskLow},
		{"ratio above 1.5 is medium", filler + "angry upset awful terrible", types.RiskMedium},
		{"no escalation", "thanks so much", types.RiskLow},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Analyze(tc.transcript, 0).EscalationRisk; got != tc.want {
				t.Fatalf("risk got %s want %s", got, tc.want)
			}
		})
	}
}

func TestAnalyze_HighRiskIsEscalated(t *testing.T) {
	got := Analyze("angry upset awful terrible, it is fixed", 0)
	if got.PerformanceMetrics.CallResolutionStatus != types.StatusEscalated {
		t.Fatalf("status got %s want escalated", got.PerformanceMetrics.CallResolutionStatus)
	}
}

func TestAnalyze_ResolutionStatus(t *testing.T) {
	tests := []struct {
		transcript string
		want       types.ResolutionStatus
	}{
		{"let me transfer you", types.StatusEscalated},
		{"that is resolved", types.StatusResolved},
		{"i will call you back tomorrow", types.StatusFollowUp},
		{"hello there", types.StatusPending},
	}
	for _, tc := range tests {
		if got := Analyze(tc.transcript, 0).PerformanceMetrics.CallResolutionStatus; got != tc.want {
			t.Fatalf("%q: status got %s want %s", tc.transcript, got, tc.want)
		}
	}
}

func TestAnalyze_BoundedFields(t *testing.T) {
	inputs := []string{
		"",
		"x",
		strings.Repeat("angry terrible awful cancel supervisor ", 400),
		strings.Repeat("thanks great perfect resolved let me check right away verify policy ", 400),
		strings.Repeat("because step first next then solution try ", 100),
		"ÄÖÜ ß – 🙂 sorry",
	}
	for _, in := range inputs {
		for _, dur := range []int{-5, 0, 301, 10000} {
			a := Analyze(in, dur)
			for field, v := range boundedFields(a) {
				if v < 0 || v > 100 {
					t.Fatalf("%s=%d out of range for input len %d", field, v, len(in))
				}
			}
			if len(a.EscalationIndicators) > 3 || len(a.SatisfactionSignals) > 3 {
				t.Fatalf("signal lists exceed cap: %v %v", a.EscalationIndicators, a.SatisfactionSignals)
			}
		}
	}
}

func TestAnalyze_IndicatorPriorityOrder(t *testing.T) {
	got := Analyze("I want a refund, get me your manager or I will cancel and call my lawyer", 0)
	want := []string{
		"Customer requested a supervisor or manager",
		"Customer mentioned cancelling the service",
		"Customer requested a refund",
	}
	if !reflect.DeepEqual(got.EscalationIndicators, want) {
		t.Fatalf("indicators got %v want %v", got.EscalationIndicators, want)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	in := "Please hold, I understand. Let me verify your account, the error is due to a setting."
	first := Analyze(in, 500)
	for i := 0; i < 5; i++ {
		if !reflect.DeepEqual(first, Analyze(in, 500)) {
			t.Fatalf("analysis changed between runs")
		}
	}
}

func TestHandleTimeScore_Brackets(t *testing.T) {
	tests := []struct {
		dur  int
		want int
	}{
		{0, 90}, {300, 90}, {301, 80}, {480, 80}, {481, 70},
		{600, 70}, {601, 60}, {900, 60}, {901, 40}, {3600, 40},
	}
	for _, tc := range tests {
		if got := handleTimeScore(tc.dur); got != tc.want {
			t.Fatalf("handleTimeScore(%d) got %d want %d", tc.dur, got, tc.want)
		}
	}
}

func TestLoadKeywordTable_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	body := "version: v2\ncategories:\n  escalation:\n    - furious\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	table, err := LoadKeywordTable(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.Version != "v2" {
		t.Fatalf("version got %q want v2", table.Version)
	}
	if !reflect.DeepEqual(table.Keywords(CatSatisfaction), DefaultKeywords().Keywords(CatSatisfaction)) {
		t.Fatalf("satisfaction keywords should fall back to defaults")
	}

	a := NewAnalyzer(table, nil)
	if got := a.Analyze("furious caller", 0).CustomerSatisfaction; got != 35 {
		t.Fatalf("custom keyword not applied: satisfaction=%d want 35", got)
	}
	if got := a.Analyze("angry caller", 0).CustomerSatisfaction; got != 50 {
		t.Fatalf("replaced keyword still counted: satisfaction=%d want 50", got)
	}
}

func TestLoadKeywordTable_MissingFile(t *testing.T) {
	if _, err := LoadKeywordTable(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
