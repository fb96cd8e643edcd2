package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"call-coaching-go/internal/types"
	"github.com/xuri/excelize/v2"
)

// columns holds detected header indices; -1 means absent.
type columns struct {
	id, title, transcript, duration, date int
}

func detectColumns(header []string) columns {
	c := columns{id: -1, title: -1, transcript: -1, duration: -1, date: -1}
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(l, "transcript") || l == "text":
			if c.transcript == -1 {
				c.transcript = i
			}
		case strings.Contains(l, "title") || strings.Contains(l, "name"):
			if c.title == -1 {
				c.title = i
			}
		case strings.Contains(l, "duration") || strings.Contains(l, "length") || strings.Contains(l, "seconds"):
			if c.duration == -1 {
				c.duration = i
			}
		case strings.Contains(l, "date") || strings.Contains(l, "created"):
			if c.date == -1 {
				c.date = i
			}
		case strings.Contains(l, "recording id") || strings.Contains(l, "call id") || l == "id" || strings.HasSuffix(l, "_id"):
			if c.id == -1 {
				c.id = i
			}
		}
	}
	return c
}

// Load reads call records from the first sheet of a workbook, detecting
// columns by header names. Rows without an id or title are skipped.
func Load(path string) ([]types.CallRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	cols := detectColumns(rows[0])
	if cols.id == -1 && cols.title == -1 {
		return nil, fmt.Errorf("no id or title column in header %v", rows[0])
	}

	var out []types.CallRecord
	for i, r := range rows {
		if i == 0 {
			continue
		}
		rec := types.CallRecord{
			RecordingID: cell(r, cols.id),
			Title:       cell(r, cols.title),
			Transcript:  cell(r, cols.transcript),
		}
		if rec.RecordingID == "" {
			rec.RecordingID = rec.Title
		}
		if rec.RecordingID == "" {
			continue
		}
		if d, ok := ParseDuration(cell(r, cols.duration)); ok {
			rec.DurationSeconds = d
		}
		if t, ok := ParseDate(cell(r, cols.date)); ok {
			rec.Date = &t
		}
		out = append(out, rec)
	}
	return out, nil
}

// Candidates converts records into title-match candidates.
func Candidates(records []types.CallRecord) []types.Candidate {
	out := make([]types.Candidate, 0, len(records))
	for _, r := range records {
		if r.Title == "" {
			continue
		}
		out = append(out, types.Candidate{ID: r.RecordingID, Title: r.Title})
	}
	return out
}

// FuzzyCandidates converts records into fuzzy-match candidates keyed by title.
func FuzzyCandidates(records []types.CallRecord) []types.FuzzyCandidate {
	out := make([]types.FuzzyCandidate, 0, len(records))
	for _, r := range records {
		c := types.FuzzyCandidate{ID: r.RecordingID, Identifier: r.Title, Date: r.Date}
		if c.Identifier == "" {
			c.Identifier = r.RecordingID
		}
		if r.DurationSeconds > 0 {
			d := r.DurationSeconds
			c.DurationSeconds = &d
		}
		out = append(out, c)
	}
	return out
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ParseDuration accepts plain seconds, mm:ss or hh:mm:ss.
func ParseDuration(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		if n < 0 {
			return 0, false
		}
		return int(n), true
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return 0, false
		}
		total = total*60 + n
	}
	return total, true
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"01-02-06",
}

// ParseDate tries the layouts spreadsheets commonly produce.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
