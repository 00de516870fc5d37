package engagement

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HTTPSink posts events to the engagement endpoint. Only the status code of
// the response is inspected.
type HTTPSink struct {
	url  string
	http *http.Client
}

func NewHTTPSink(url string, httpClient *http.Client) *HTTPSink {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPSink{url: url, http: httpClient}
}

func (s *HTTPSink) Send(ctx context.Context, ev Event, who Identity) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if who.Token != "" {
		req.Header.Set("Authorization", "Bearer "+who.Token)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("engagement endpoint returned %d", resp.StatusCode)
	}
	return nil
}
