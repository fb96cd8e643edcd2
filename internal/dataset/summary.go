package dataset

import (
	"fmt"

	"call-coaching-go/internal/logger"
	"call-coaching-go/internal/types"
	"github.com/xuri/excelize/v2"
)

type DatasetSummary struct {
	TotalRecords         int `json:"total_records"`
	WithTranscript       int `json:"with_transcript"`
	WithTitle            int `json:"with_title"`
	TotalDurationSeconds int `json:"total_duration_seconds"`
}

// Summarize counts what a loaded dataset can feed: the scorer needs
// transcripts, the title matcher needs titles.
func Summarize(records []types.CallRecord) DatasetSummary {
	var s DatasetSummary
	s.TotalRecords = len(records)
	for _, r := range records {
		if r.Transcript != "" {
			s.WithTranscript++
		}
		if r.Title != "" {
			s.WithTitle++
		}
		s.TotalDurationSeconds += r.DurationSeconds
	}
	return s
}

// LoadAndSummarize reads the dataset and logs a compact summary.
func LoadAndSummarize(path string, log *logger.Logger) ([]types.CallRecord, DatasetSummary, error) {
	entry := log.WithField("component", "dataset.summary").WithField("path", path)
	entry.Info("opening dataset")
	records, err := Load(path)
	if err != nil {
		entry.WithField("error", err.Error()).Error("dataset load failed")
		return nil, DatasetSummary{}, err
	}
	s := Summarize(records)
	entry.WithFields(map[string]interface{}{
		"total_records":   s.TotalRecords,
		"with_transcript": s.WithTranscript,
		"with_title":      s.WithTitle,
	}).Info("dataset summarization complete")
	return records, s, nil
}

// ScoredRow is one output line of a batch scoring run.
type ScoredRow struct {
	RecordingID string
	Title       string
	Analysis    types.SignalAnalysis
}

var scoreHeader = []interface{}{
	"Recording ID", "Title", "Escalation Risk", "Customer Satisfaction", "Resolution Effectiveness",
	"Empathy", "Professionalism", "Responsiveness", "First Contact Resolution", "Customer Effort",
	"Resolution Status", "Issue Complexity",
}

// WriteScores writes batch results to a new workbook.
func WriteScores(path string, rows []ScoredRow) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	if err := f.SetSheetRow(sheet, "A1", &scoreHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range rows {
		a := r.Analysis
		line := []interface{}{
			r.RecordingID, r.Title, string(a.EscalationRisk), a.CustomerSatisfaction, a.ResolutionEffectiveness,
			a.EmpathyScore, a.ProfessionalismScore, a.ResponsivenessScore,
			a.PerformanceMetrics.FirstContactResolution, a.PerformanceMetrics.CustomerEffortScore,
			string(a.PerformanceMetrics.CallResolutionStatus), string(a.PerformanceMetrics.IssueComplexity),
		}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell address: %w", err)
		}
		if err := f.SetSheetRow(sheet, addr, &line); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
