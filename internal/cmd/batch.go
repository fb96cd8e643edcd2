package cmd

import (
	"fmt"

	"call-coaching-go/internal/config"
	"call-coaching-go/internal/dataset"
	"call-coaching-go/internal/processor"
	"call-coaching-go/internal/store"
	"call-coaching-go/internal/types"
	"call-coaching-go/internal/webhook"
	"github.com/spf13/cobra"
)

var (
	batchDataset string
	batchOut     string
	batchDB      string
	batchWebhook string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score every transcript in a dataset workbook",
	Long: `Score every row of a dataset workbook that carries a transcript, print the
aggregate report as JSON, and optionally write per-recording scores to a new
workbook, persist them to SQLite, or post them to a webhook.`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchDataset, "dataset", "", "Workbook with recording transcripts (required)")
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "Write per-recording scores to this .xlsx file")
	batchCmd.Flags().StringVar(&batchDB, "db", "", "SQLite database to persist results into")
	batchCmd.Flags().StringVar(&batchWebhook, "webhook", "", "URL notified for every scored recording")
	_ = batchCmd.MarkFlagRequired("dataset")
}

func runBatch(cmd *cobra.Command, args []string) error {
	log := cliLogger(cmd)
	records, summary, err := dataset.LoadAndSummarize(batchDataset, log)
	if err != nil {
		return err
	}
	if summary.WithTranscript == 0 {
		return fmt.Errorf("no transcripts found in %s", batchDataset)
	}

	analyzer, err := loadAnalyzer(log)
	if err != nil {
		return err
	}
	var opts []processor.Option
	if batchDB != "" {
		st, err := store.Open(batchDB)
		if err != nil {
			return err
		}
		defer st.Close()
		opts = append(opts, processor.WithSaver(st))
	}
	if batchWebhook != "" {
		cfg := config.FromEnv()
		opts = append(opts, processor.WithNotifier(webhook.New(batchWebhook, cfg.WebhookTimeout, cfg.WebhookMaxRetry, log)))
	}
	proc := processor.New(analyzer, log, opts...)

	inputs := make([]types.TranscriptInput, 0, summary.WithTranscript)
	titles := make(map[string]string, len(records))
	for _, r := range records {
		if r.Transcript == "" {
			continue
		}
		inputs = append(inputs, types.TranscriptInput{
			RecordingID:     r.RecordingID,
			Transcript:      r.Transcript,
			DurationSeconds: r.DurationSeconds,
		})
		titles[r.RecordingID] = r.Title
	}

	res, err := proc.ScoreBatch(cmd.Context(), inputs)
	if err != nil {
		return err
	}

	if batchOut != "" {
		rows := make([]dataset.ScoredRow, 0, len(res.Results))
		for _, r := range res.Results {
			rows = append(rows, dataset.ScoredRow{RecordingID: r.RecordingID, Title: titles[r.RecordingID], Analysis: r.Analysis})
		}
		if err := dataset.WriteScores(batchOut, rows); err != nil {
			return err
		}
		log.WithField("path", batchOut).Info("scores written")
	}
	return printJSON(cmd.OutOrStdout(), res.Report)
}
