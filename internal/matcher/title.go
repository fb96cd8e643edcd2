package matcher

import (
	"regexp"
	"strings"

	"call-coaching-go/internal/types"
)

var (
	extensionRe  = regexp.MustCompile(`(?i)\.(xlsx|xls|csv)$`)
	whitespaceRe = regexp.MustCompile(`[\s\p{Z}]+`)
	nonWordRe    = regexp.MustCompile(`[^\w\s]`)
)

// StripExtension removes a trailing spreadsheet extension.
func StripExtension(filename string) string {
	return extensionRe.ReplaceAllString(filename, "")
}

// Normalize trims, lower-cases, collapses whitespace runs (Unicode spaces such
// as NBSP included) and then strips every character that is neither a word
// character nor whitespace.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespaceRe.ReplaceAllString(s, " ")
	return nonWordRe.ReplaceAllString(s, "")
}

// FindBestMatch links a scorecard filename to a recording by exact
// normalized title. It returns nil when nothing matches.
func FindBestMatch(filename string, candidates []types.Candidate) *types.TitleMatchResult {
	if len(candidates) == 0 {
		return nil
	}
	want := Normalize(StripExtension(filename))
	for _, c := range candidates {
		if Normalize(c.Title) == want {
			return &types.TitleMatchResult{
				RecordingID:        c.ID,
				RecordingTitle:     c.Title,
				MatchConfidence:    1.0,
				MatchType:          types.MatchExactTitle,
				NormalizedFilename: want,
			}
		}
	}
	return nil
}

// MatchAll runs FindBestMatch for each filename. Output order follows input
// order; unmatched files get a no_match entry with zero confidence.
func MatchAll(filenames []string, candidates []types.Candidate) []types.TitleMatchResult {
	out := make([]types.TitleMatchResult, 0, len(filenames))
	for _, f := range filenames {
		if m := FindBestMatch(f, candidates); m != nil {
			out = append(out, *m)
			continue
		}
		out = append(out, types.TitleMatchResult{
			MatchType:          types.MatchNone,
			NormalizedFilename: Normalize(StripExtension(f)),
		})
	}
	return out
}
