// ABOUTME: Shared HTTP fetch helpers for cards that poll external JSON and text endpoints.
// ABOUTME: Requests carry the caller's context; non-2xx responses become errors at the card boundary.
package cards

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// fetchTimeout bounds a single outbound request. The next scheduled tick is
// the only retry, so a hung fetch must not outlive its slot.
const fetchTimeout = 10 * time.Second

// newHTTPClient builds the client cards use for polling. Redirects are
// followed (iCal feeds in particular redirect) and the client-level timeout
// backstops callers that pass an unbounded context.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: fetchTimeout}
}

// getJSON fetches url and decodes the response body into out.
func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	body, err := get(ctx, client, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}

// get fetches url and returns the raw response body.
func get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
