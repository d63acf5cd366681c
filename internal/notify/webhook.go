package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"psytech/internal/domain/models"
	"psytech/internal/lib/logger/sl"
	"psytech/internal/metrics"

	"github.com/cenkalti/backoff/v4"
)

var ErrWebhookStatus = errors.New("webhook returned non-2xx status")

type WebhookConfig struct {
	URL         string
	MaxAttempts int
	BaseDelay   time.Duration
	Timeout     time.Duration
}

// WebhookClient posts publish notifications to an automation endpoint.
type WebhookClient struct {
	log    *slog.Logger
	client *http.Client
	cfg    WebhookConfig
}

func NewWebhookClient(log *slog.Logger, cfg WebhookConfig) *WebhookClient {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	return &WebhookClient{
		log:    log,
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
	}
}

func (w *WebhookClient) Enabled() bool {
	return w.cfg.URL != ""
}

// Send delivers payload with up to MaxAttempts tries. The delay starts at
// BaseDelay and doubles after every failed try.
func (w *WebhookClient) Send(ctx context.Context, payload models.WebhookPayload) error {
	const op = "notify.WebhookClient.Send"
	log := w.log.With(
		slog.String("op", op),
		slog.String("url", payload.URL),
	)

	if !w.Enabled() {
		metrics.WebhookDeliveriesTotal.WithLabelValues(metrics.ResultSkipped).Inc()
		log.Debug("webhook url not configured, skipping")
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	attempt := 0
	deliver := func() error {
		attempt++
		metrics.WebhookAttemptsTotal.Inc()
		return w.post(ctx, body)
	}

	notify := func(err error, next time.Duration) {
		log.Warn("webhook attempt failed",
			slog.Int("attempt", attempt),
			slog.Duration("retry_in", next),
			sl.Err(err),
		)
	}

	if err := backoff.RetryNotify(deliver, w.policy(ctx), notify); err != nil {
		metrics.WebhookDeliveriesTotal.WithLabelValues(metrics.ResultFailed).Inc()
		log.Error("webhook delivery failed", slog.Int("attempts", attempt), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	metrics.WebhookDeliveriesTotal.WithLabelValues(metrics.ResultDelivered).Inc()
	log.Info("webhook delivered", slog.Int("attempts", attempt))

	return nil
}

func (w *WebhookClient) policy(ctx context.Context) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = w.cfg.BaseDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = w.cfg.BaseDelay << uint(w.cfg.MaxAttempts)
	b.MaxElapsedTime = 0

	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(w.cfg.MaxAttempts-1)), ctx)
}

func (w *WebhookClient) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrWebhookStatus, resp.StatusCode)
	}

	return nil
}
