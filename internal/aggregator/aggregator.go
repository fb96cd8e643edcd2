package aggregator

import (
	"math"

	"call-coaching-go/internal/types"
)

// Aggregate folds per-recording analyses into unweighted means. An empty
// slice yields a zero report of the same shape.
func Aggregate(analyses []types.SignalAnalysis) types.AggregateReport {
	var (
		sat, res, emp, prof, resp          float64
		svTan, svRel, svResp, svAss, svEmp float64
		fcr, aht, ces, rtq                 float64
		qCom, qPS, qDe, qKB, qComp         float64
		jID, jRC, jSC                      float64
		educated, followUps                int
	)
	report := types.AggregateReport{TotalAnalyses: len(analyses)}
	for _, a := range analyses {
		sat += float64(a.CustomerSatisfaction)
		res += float64(a.ResolutionEffectiveness)
		emp += float64(a.EmpathyScore)
		prof += float64(a.ProfessionalismScore)
		resp += float64(a.ResponsivenessScore)

		svTan += float64(a.ServqualMetrics.Tangibles)
		svRel += float64(a.ServqualMetrics.Reliability)
		svResp += float64(a.ServqualMetrics.Responsiveness)
		svAss += float64(a.ServqualMetrics.Assurance)
		svEmp += float64(a.ServqualMetrics.Empathy)

		fcr += float64(a.PerformanceMetrics.FirstContactResolution)
		aht += float64(a.PerformanceMetrics.AverageHandleTime)
		ces += float64(a.PerformanceMetrics.CustomerEffortScore)
		rtq += float64(a.PerformanceMetrics.ResponseTimeQuality)

		qCom += float64(a.QualityMetrics.CommunicationSkills)
		qPS += float64(a.QualityMetrics.ProblemSolvingEffectiveness)
		qDe += float64(a.QualityMetrics.DeEscalationTechniques)
		qKB += float64(a.QualityMetrics.KnowledgeBaseUsage)
		qComp += float64(a.QualityMetrics.ComplianceAdherence)

		jID += float64(a.JourneyAnalysis.IssueIdentificationSpeed)
		jRC += float64(a.JourneyAnalysis.RootCauseAnalysisDepth)
		jSC += float64(a.JourneyAnalysis.SolutionClarityScore)
		if a.JourneyAnalysis.CustomerEducationProvided {
			educated++
		}
		if a.JourneyAnalysis.FollowUpPlanning {
			followUps++
		}

		switch a.EscalationRisk {
		case types.RiskHigh:
			report.EscalationDistribution.High++
		case types.RiskMedium:
			report.EscalationDistribution.Medium++
		default:
			report.EscalationDistribution.Low++
		}

		switch a.PerformanceMetrics.CallResolutionStatus {
		case types.StatusResolved:
			report.ResolutionDistribution.Resolved++
		case types.StatusEscalated:
			report.ResolutionDistribution.Escalated++
		case types.StatusFollowUp:
			report.ResolutionDistribution.FollowUp++
		default:
			report.ResolutionDistribution.Pending++
		}
	}

	n := len(analyses)
	report.CustomerSatisfaction = mean(sat, n)
	report.ResolutionEffectiveness = mean(res, n)
	report.EmpathyScore = mean(emp, n)
	report.ProfessionalismScore = mean(prof, n)
	report.ResponsivenessScore = mean(resp, n)
	report.ServqualMetrics = types.ServqualMetrics{
		Tangibles:      mean(svTan, n),
		Reliability:    mean(svRel, n),
		Responsiveness: mean(svResp, n),
		Assurance:      mean(svAss, n),
		Empathy:        mean(svEmp, n),
	}
	report.Performance = types.PerformanceAverages{
		FirstContactResolution: mean(fcr, n),
		AverageHandleTime:      mean(aht, n),
		CustomerEffortScore:    mean(ces, n),
		ResponseTimeQuality:    mean(rtq, n),
	}
	report.QualityMetrics = types.QualityMetrics{
		CommunicationSkills:         mean(qCom, n),
		ProblemSolvingEffectiveness: mean(qPS, n),
		DeEscalationTechniques:      mean(qDe, n),
		KnowledgeBaseUsage:          mean(qKB, n),
		ComplianceAdherence:         mean(qComp, n),
	}
	report.Journey = types.JourneyAverages{
		IssueIdentificationSpeed: mean(jID, n),
		RootCauseAnalysisDepth:   mean(jRC, n),
		SolutionClarityScore:     mean(jSC, n),
		EducationRate:            mean(float64(educated)*100, n),
		FollowUpRate:             mean(float64(followUps)*100, n),
	}
	return report
}

// mean rounds half up; it is 0 for an empty set.
func mean(sum float64, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Floor(sum/float64(n) + 0.5))
}
