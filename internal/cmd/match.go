package cmd

import (
	"fmt"

	"call-coaching-go/internal/dataset"
	"call-coaching-go/internal/matcher"
	"call-coaching-go/internal/types"
	"github.com/spf13/cobra"
)

var (
	matchDataset  string
	matchFuzzy    bool
	matchDuration int
	matchDate     string
)

var matchCmd = &cobra.Command{
	Use:   "match [filename...]",
	Short: "Match scorecard filenames to recordings",
	Long: `Match scorecard spreadsheet filenames against the recordings listed in a
dataset workbook. Exact matching compares normalized titles; --fuzzy ranks
candidates by edit distance and flags every result for review.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringVar(&matchDataset, "dataset", "", "Workbook listing recordings (required)")
	matchCmd.Flags().BoolVar(&matchFuzzy, "fuzzy", false, "Rank candidates by similarity instead of exact title")
	matchCmd.Flags().IntVar(&matchDuration, "duration", 0, "Reference duration in seconds for --fuzzy")
	matchCmd.Flags().StringVar(&matchDate, "date", "", "Reference date for --fuzzy (YYYY-MM-DD or RFC3339)")
	_ = matchCmd.MarkFlagRequired("dataset")
}

func runMatch(cmd *cobra.Command, args []string) error {
	log := cliLogger(cmd)
	records, _, err := dataset.LoadAndSummarize(matchDataset, log)
	if err != nil {
		return err
	}

	if !matchFuzzy {
		return printJSON(cmd.OutOrStdout(), matcher.MatchAll(args, dataset.Candidates(records)))
	}

	ref := types.FuzzyReference{}
	if matchDuration > 0 {
		d := matchDuration
		ref.DurationSeconds = &d
	}
	if matchDate != "" {
		t, ok := dataset.ParseDate(matchDate)
		if !ok {
			return fmt.Errorf("unrecognized --date %q", matchDate)
		}
		ref.Date = &t
	}

	cands := dataset.FuzzyCandidates(records)
	out := make([]fuzzyFileMatches, 0, len(args))
	for _, name := range args {
		ref.Identifier = matcher.StripExtension(name)
		out = append(out, fuzzyFileMatches{Filename: name, Matches: matcher.FuzzyMatch(ref, cands)})
	}
	return printJSON(cmd.OutOrStdout(), out)
}

// fuzzyFileMatches keeps fuzzy output in argument order.
type fuzzyFileMatches struct {
	Filename string                   `json:"filename"`
	Matches  []types.FuzzyMatchResult `json:"matches"`
}
