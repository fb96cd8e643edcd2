package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"call-coaching-go/internal/types"
	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// Event is the body posted for every scored recording.
type Event struct {
	Event           string                 `json:"event"`
	RecordingID     string                 `json:"recording_id"`
	AnalysisID      string                 `json:"analysis_id,omitempty"`
	KeywordVersion  string                 `json:"keyword_version"`
	Analysis        types.SignalAnalysis   `json:"analysis"`
	Recommendations []types.Recommendation `json:"recommendations"`
	SentAt          time.Time              `json:"sent_at"`
}

const EventAnalysisScored = "analysis.scored"

type Notifier struct {
	url        string
	client     *http.Client
	maxElapsed time.Duration
	log        logrus.FieldLogger
}

// New returns a notifier posting to url. maxElapsed bounds the total retry time.
func New(url string, timeout, maxElapsed time.Duration, log logrus.FieldLogger) *Notifier {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Notifier{
		url:        url,
		client:     &http.Client{Timeout: timeout},
		maxElapsed: maxElapsed,
		log:        log.WithField("component", "webhook"),
	}
}

// Notify posts ev, retrying transport errors and 5xx responses with
// exponential backoff. 4xx responses fail immediately.
func (n *Notifier) Notify(ctx context.Context, ev Event) error {
	if ev.Event == "" {
		ev.Event = EventAnalysisScored
	}
	if ev.SentAt.IsZero() {
		ev.SentAt = time.Now().UTC()
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode webhook event: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxElapsedTime = n.maxElapsed

	attempt := 0
	op := func() error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("build webhook request: %w", err))
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			n.log.WithField("attempt", attempt).WithField("error", err.Error()).Warn("webhook delivery failed")
			return err
		}
		defer resp.Body.Close()
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		switch {
		case resp.StatusCode >= 500:
			n.log.WithField("attempt", attempt).WithField("status", resp.StatusCode).Warn("webhook server error")
			return fmt.Errorf("server error: %d %s", resp.StatusCode, string(respBody))
		case resp.StatusCode >= 400:
			return backoff.Permanent(fmt.Errorf("webhook rejected: %d %s", resp.StatusCode, string(respBody)))
		}
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			err = perm.Err
		}
		return fmt.Errorf("notify %s after %d attempts: %w", ev.RecordingID, attempt, err)
	}
	n.log.WithFields(logrus.Fields{
		"recording_id": ev.RecordingID,
		"attempts":     attempt,
	}).Debug("webhook delivered")
	return nil
}
