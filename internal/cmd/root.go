package cmd

import (
	"encoding/json"
	"io"
	"os"

	"call-coaching-go/internal/logger"
	"call-coaching-go/internal/signals"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	logLevel     string
	keywordsFile string
)

var rootCmd = &cobra.Command{
	Use:   "coachctl",
	Short: "Score call transcripts and link scorecards to recordings",
	Long: `coachctl scores customer-service call transcripts with the keyword signal
scorer, produces coaching recommendations, and matches scorecard spreadsheets
to recordings by title.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = false
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&keywordsFile, "keywords", "", "YAML keyword table merged over the built-in one")
}

// cliLogger logs to stderr so stdout stays machine readable.
func cliLogger(cmd *cobra.Command) *logger.Logger {
	return logger.NewWith("cli", logLevel, cmd.ErrOrStderr())
}

func loadAnalyzer(log *logger.Logger) (*signals.Analyzer, error) {
	table := signals.DefaultKeywords()
	if keywordsFile != "" {
		t, err := signals.LoadKeywordTable(keywordsFile)
		if err != nil {
			return nil, err
		}
		table = t
	}
	return signals.NewAnalyzer(table, log.WithField("component", "signals")), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
