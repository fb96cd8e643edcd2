package processor

import (
	"context"
	"io"
	"time"

	"call-coaching-go/internal/actionable"
	"call-coaching-go/internal/aggregator"
	"call-coaching-go/internal/signals"
	"call-coaching-go/internal/types"
	"call-coaching-go/internal/webhook"
	"github.com/sirupsen/logrus"
)

// Saver persists a score record and returns its id.
type Saver interface {
	Save(ctx context.Context, recordingID, keywordVersion string, a types.SignalAnalysis) (string, error)
}

// Notifier delivers a score record downstream.
type Notifier interface {
	Notify(ctx context.Context, ev webhook.Event) error
}

type Processor struct {
	analyzer *signals.Analyzer
	saver    Saver
	notifier Notifier
	log      logrus.FieldLogger
}

type Option func(*Processor)

func WithSaver(s Saver) Option { return func(p *Processor) { p.saver = s } }

func WithNotifier(n Notifier) Option { return func(p *Processor) { p.notifier = n } }

func New(analyzer *signals.Analyzer, log logrus.FieldLogger, opts ...Option) *Processor {
	if analyzer == nil {
		analyzer = signals.NewAnalyzer(signals.DefaultKeywords(), log)
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	p := &Processor{analyzer: analyzer, log: log.WithField("component", "processor")}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is returned for every scored recording. Persistence and
// notification failures are reported here and never drop the analysis.
type Result struct {
	RecordingID     string                 `json:"recordingId,omitempty"`
	AnalysisID      string                 `json:"analysisId,omitempty"`
	KeywordVersion  string                 `json:"keywordVersion"`
	Analysis        types.SignalAnalysis   `json:"analysis"`
	Recommendations []types.Recommendation `json:"recommendations"`
	DurationMs      int64                  `json:"durationMs"`
	StoreError      string                 `json:"storeError,omitempty"`
	NotifyError     string                 `json:"notifyError,omitempty"`
}

func (p *Processor) KeywordVersion() string {
	return p.analyzer.TableVersion()
}

// ScoreRecording analyzes one transcript, then optionally persists and
// notifies.
func (p *Processor) ScoreRecording(ctx context.Context, in types.TranscriptInput) Result {
	start := time.Now()
	log := p.log.WithField("recording_id", in.RecordingID)

	a := p.analyzer.Analyze(in.Transcript, in.DurationSeconds)
	res := Result{
		RecordingID:     in.RecordingID,
		KeywordVersion:  p.analyzer.TableVersion(),
		Analysis:        a,
		Recommendations: actionable.Recommend(a),
	}

	if p.saver != nil {
		id, err := p.saver.Save(ctx, in.RecordingID, res.KeywordVersion, a)
		if err != nil {
			log.WithField("error", err.Error()).Error("persist analysis failed")
			res.StoreError = err.Error()
		} else {
			res.AnalysisID = id
		}
	}

	if p.notifier != nil {
		ev := webhook.Event{
			RecordingID:     in.RecordingID,
			AnalysisID:      res.AnalysisID,
			KeywordVersion:  res.KeywordVersion,
			Analysis:        a,
			Recommendations: res.Recommendations,
		}
		if err := p.notifier.Notify(ctx, ev); err != nil {
			log.WithField("error", err.Error()).Warn("notify failed")
			res.NotifyError = err.Error()
		}
	}

	res.DurationMs = time.Since(start).Milliseconds()
	log.WithFields(logrus.Fields{
		"escalation_risk": a.EscalationRisk,
		"satisfaction":    a.CustomerSatisfaction,
		"recommendations": len(res.Recommendations),
		"duration_ms":     res.DurationMs,
	}).Info("recording scored")
	return res
}

type BatchResult struct {
	Results []Result              `json:"results"`
	Report  types.AggregateReport `json:"report"`
}

// ScoreBatch scores inputs in order and aggregates the analyses. A cancelled
// context stops the batch; what was scored so far is returned with the error.
func (p *Processor) ScoreBatch(ctx context.Context, inputs []types.TranscriptInput) (BatchResult, error) {
	out := BatchResult{Results: make([]Result, 0, len(inputs))}
	analyses := make([]types.SignalAnalysis, 0, len(inputs))
	var err error
	for _, in := range inputs {
		if err = ctx.Err(); err != nil {
			p.log.WithField("scored", len(out.Results)).Warn("batch cancelled")
			break
		}
		r := p.ScoreRecording(ctx, in)
		out.Results = append(out.Results, r)
		analyses = append(analyses, r.Analysis)
	}
	out.Report = aggregator.Aggregate(analyses)
	return out, err
}
