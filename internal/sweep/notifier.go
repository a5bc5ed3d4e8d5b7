package sweep

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Notifier forwards release alerts to the external mail/push gateway.
// Delivery is best-effort: failures are logged, never propagated, so a
// dead gateway cannot stall a sweep.
type Notifier struct {
	gatewayURL string
	httpClient *http.Client
	log        *slog.Logger
	wg         sync.WaitGroup
}

// NewNotifier creates a new notifier instance. An empty gatewayURL
// disables delivery entirely.
func NewNotifier(gatewayURL string, log *slog.Logger) *Notifier {
	if log == nil {
		log = slog.Default()
	}
	return &Notifier{
		gatewayURL: gatewayURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		log: log,
	}
}

// NotifyRelease sends a release alert for one editor (async, non-blocking)
func (n *Notifier) NotifyRelease(editorID string, releaseID int64, title, message string) {
	if n.gatewayURL == "" {
		return
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		payload := map[string]interface{}{
			"editor_id":  editorID,
			"release_id": releaseID,
			"title":      title,
			"message":    message,
		}

		if err := n.send(ctx, "/notify/release", payload); err != nil {
			n.log.Error("release notification delivery failed", "title", title, "error", err)
		}
	}()
}

// Flush blocks until every in-flight delivery has finished, so a
// single-shot sweep does not exit with POSTs still on the wire.
func (n *Notifier) Flush() {
	n.wg.Wait()
}

func (n *Notifier) send(ctx context.Context, endpoint string, payload map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := n.gatewayURL + endpoint
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}
