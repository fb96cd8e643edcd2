package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"call-coaching-go/internal/processor"
	"call-coaching-go/internal/store"
	"call-coaching-go/internal/types"
	"github.com/spf13/cobra"
)

var (
	analyzeFile        string
	analyzeText        string
	analyzeDuration    int
	analyzeRecordingID string
	analyzeDB          string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a single call transcript",
	Long: `Score one transcript and print the signal analysis with its coaching
recommendations as JSON. The transcript comes from --text, --file, or stdin
when --file is "-".`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", `Transcript file ("-" reads stdin)`)
	analyzeCmd.Flags().StringVarP(&analyzeText, "text", "t", "", "Transcript text")
	analyzeCmd.Flags().IntVarP(&analyzeDuration, "duration", "d", 0, "Call duration in seconds")
	analyzeCmd.Flags().StringVar(&analyzeRecordingID, "recording-id", "", "Recording id stored with the result")
	analyzeCmd.Flags().StringVar(&analyzeDB, "db", "", "SQLite database to persist the result into")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	transcript, err := readTranscript(cmd.InOrStdin())
	if err != nil {
		return err
	}
	if analyzeDuration < 0 {
		return fmt.Errorf("--duration must not be negative")
	}

	log := cliLogger(cmd)
	analyzer, err := loadAnalyzer(log)
	if err != nil {
		return err
	}

	var opts []processor.Option
	if analyzeDB != "" {
		st, err := store.Open(analyzeDB)
		if err != nil {
			return err
		}
		defer st.Close()
		opts = append(opts, processor.WithSaver(st))
	}

	proc := processor.New(analyzer, log, opts...)
	res := proc.ScoreRecording(cmd.Context(), types.TranscriptInput{
		RecordingID:     analyzeRecordingID,
		Transcript:      transcript,
		DurationSeconds: analyzeDuration,
	})
	if res.StoreError != "" {
		return fmt.Errorf("persist analysis: %s", res.StoreError)
	}
	return printJSON(cmd.OutOrStdout(), res)
}

func readTranscript(stdin io.Reader) (string, error) {
	switch {
	case analyzeText != "" && analyzeFile != "":
		return "", fmt.Errorf("use either --text or --file, not both")
	case analyzeText != "":
		return analyzeText, nil
	case analyzeFile == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	case analyzeFile != "":
		b, err := os.ReadFile(analyzeFile)
		if err != nil {
			return "", fmt.Errorf("read transcript: %w", err)
		}
		return strings.TrimSuffix(string(b), "\n"), nil
	default:
		return "", fmt.Errorf("a transcript is required: pass --text or --file")
	}
}
