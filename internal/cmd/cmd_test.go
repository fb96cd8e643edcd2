package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"call-coaching-go/internal/dataset"
	"call-coaching-go/internal/processor"
	"call-coaching-go/internal/types"
	"github.com/xuri/excelize/v2"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	// flag values persist across Execute calls
	logLevel, keywordsFile = "warn", ""
	analyzeFile, analyzeText, analyzeDuration, analyzeRecordingID, analyzeDB = "", "", 0, "", ""
	matchDataset, matchFuzzy, matchDuration, matchDate = "", false, 0, ""
	batchDataset, batchOut, batchDB, batchWebhook = "", "", "", ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calls.xlsx")
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{
		{"Recording ID", "Title", "Duration", "Transcript"},
		{"rec-1", "Q3 Call Review", "240", "thanks so much, that was helpful and it is resolved"},
		{"rec-2", "Billing Dispute", "700", "I am angry and frustrated, this is unacceptable, I will cancel"},
		{"rec-3", "No Transcript", "60", ""},
	}
	for i, row := range rows {
		addr, _ := excelize.CoordinatesToCellName(1, i+1)
		r := row
		if err := f.SetSheetRow("Sheet1", addr, &r); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	return path
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := run(t, "", "analyze", "--text", "thank you, that is resolved", "--duration", "200", "--recording-id", "rec-9")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var res processor.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if res.RecordingID != "rec-9" || res.Analysis.PerformanceMetrics.CallResolutionStatus != types.StatusResolved {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestAnalyzeCommand_StdinAndStore(t *testing.T) {
	db := filepath.Join(t.TempDir(), "scores.db")
	out, err := run(t, "I am so angry\n", "analyze", "--file", "-", "--db", db)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var res processor.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.AnalysisID == "" {
		t.Fatalf("expected persisted analysis id")
	}
	if _, err := os.Stat(db); err != nil {
		t.Fatalf("database not created: %v", err)
	}
}

func TestAnalyzeCommand_RequiresTranscript(t *testing.T) {
	if _, err := run(t, "", "analyze"); err == nil {
		t.Fatalf("expected error without transcript")
	}
	if _, err := run(t, "", "analyze", "--text", "x", "--file", "y"); err == nil {
		t.Fatalf("expected error with both --text and --file")
	}
}

func TestMatchCommand(t *testing.T) {
	ds := writeDataset(t)
	out, err := run(t, "", "match", "--dataset", ds, "q3 call review.xlsx", "missing.csv")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	var results []types.TitleMatchResult
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(results) != 2 || results[0].RecordingID != "rec-1" || results[1].MatchType != types.MatchNone {
		t.Fatalf("unexpected results: %+v", results)
	}

	out, err = run(t, "", "match", "--dataset", ds, "--fuzzy", "--duration", "250", "Q3 Call Reviw.xlsx")
	if err != nil {
		t.Fatalf("fuzzy match: %v", err)
	}
	var fuzzy []fuzzyFileMatches
	if err := json.Unmarshal([]byte(out), &fuzzy); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(fuzzy) != 1 || fuzzy[0].Filename != "Q3 Call Reviw.xlsx" {
		t.Fatalf("unexpected fuzzy output: %+v", fuzzy)
	}
	got := fuzzy[0].Matches
	if len(got) != 1 || got[0].CandidateID != "rec-1" || !got[0].DurationMatch {
		t.Fatalf("unexpected fuzzy results: %+v", fuzzy)
	}
}

func TestMatchCommand_FuzzyKeepsArgumentOrder(t *testing.T) {
	ds := writeDataset(t)
	args := []string{"match", "--dataset", ds, "--fuzzy", "zzz.xlsx", "Billing Dispute.csv", "aaa.xlsx", "Q3 Call Review.xlsx"}
	out, err := run(t, "", args...)
	if err != nil {
		t.Fatalf("fuzzy match: %v", err)
	}
	var fuzzy []fuzzyFileMatches
	if err := json.Unmarshal([]byte(out), &fuzzy); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := args[4:]
	if len(fuzzy) != len(want) {
		t.Fatalf("entries got %d want %d", len(fuzzy), len(want))
	}
	for i, name := range want {
		if fuzzy[i].Filename != name {
			t.Fatalf("entry %d got %q want %q", i, fuzzy[i].Filename, name)
		}
	}
	if fuzzy[0].Matches == nil || len(fuzzy[0].Matches) != 0 {
		t.Fatalf("expected empty match list for zzz.xlsx, got %+v", fuzzy[0].Matches)
	}
	if len(fuzzy[1].Matches) != 1 || fuzzy[1].Matches[0].CandidateID != "rec-2" {
		t.Fatalf("unexpected matches for Billing Dispute: %+v", fuzzy[1].Matches)
	}
}

func TestBatchCommand(t *testing.T) {
	ds := writeDataset(t)
	outPath := filepath.Join(t.TempDir(), "scores.xlsx")
	out, err := run(t, "", "batch", "--dataset", ds, "--out", outPath)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	var report types.AggregateReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.TotalAnalyses != 2 || report.EscalationDistribution.High != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}

	written, err := dataset.Load(outPath)
	if err != nil {
		t.Fatalf("reload scores: %v", err)
	}
	if len(written) != 2 || written[1].Title != "Billing Dispute" {
		t.Fatalf("unexpected score rows: %+v", written)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "coachctl version dev") || !strings.Contains(out, "Keywords:   v1") {
		t.Fatalf("unexpected version output: %q", out)
	}
}
