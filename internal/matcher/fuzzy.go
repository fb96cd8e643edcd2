package matcher

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"call-coaching-go/internal/types"
	"github.com/agnivade/levenshtein"
)

const (
	minIdentifierSimilarity = 0.7
	minFuzzyScore           = 0.6
	durationTolerance       = 0.10
	dateTolerance           = 24 * time.Hour
	proximityBonus          = 0.2
)

// Similarity is the normalized Levenshtein similarity of a and b in [0,1].
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}
	d := levenshtein.ComputeDistance(a, b)
	return float64(maxLen-d) / float64(maxLen)
}

// FuzzyMatch ranks candidates whose identifier is close to the reference.
// Every result is flagged for manual review.
func FuzzyMatch(ref types.FuzzyReference, candidates []types.FuzzyCandidate) []types.FuzzyMatchResult {
	out := []types.FuzzyMatchResult{}
	want := strings.ToLower(strings.TrimSpace(ref.Identifier))
	for _, c := range candidates {
		sim := Similarity(want, strings.ToLower(strings.TrimSpace(c.Identifier)))
		if sim < minIdentifierSimilarity {
			continue
		}
		res := types.FuzzyMatchResult{
			CandidateID:    c.ID,
			Identifier:     c.Identifier,
			Similarity:     sim,
			Score:          sim,
			MatchType:      types.MatchFuzzy,
			RequiresReview: true,
		}
		if durationClose(ref.DurationSeconds, c.DurationSeconds) {
			res.DurationMatch = true
			res.Score += proximityBonus
		}
		if dateClose(ref.Date, c.Date) {
			res.DateMatch = true
			res.Score += proximityBonus
		}
		if res.Score >= minFuzzyScore {
			out = append(out, res)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func durationClose(a, b *int) bool {
	if a == nil || b == nil || *a <= 0 || *b <= 0 {
		return false
	}
	diff := math.Abs(float64(*a - *b))
	return diff/math.Max(float64(*a), float64(*b)) <= durationTolerance
}

func dateClose(a, b *time.Time) bool {
	if a == nil || b == nil {
		return false
	}
	d := a.Sub(*b)
	if d < 0 {
		d = -d
	}
	return d <= dateTolerance
}
