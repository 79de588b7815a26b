package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// FetchJSON runs an authorized GET against the given URL and decodes the
// JSON body into T. Non-2xx statuses are errors carrying the venue's status
// line, not decode attempts.
func FetchJSON[T any](ctx context.Context, client *http.Client, url string, bearerToken string) (*T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("FetchJSON: failed to create request: %w", err)
	}

	req.Header.Add("Accept", "application/json")
	if bearerToken != "" {
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", bearerToken))
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("FetchJSON: failed to fetch %s: %w", url, err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("FetchJSON: %s returned %s", url, res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("FetchJSON: failed to read response body: %w", err)
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("FetchJSON: failed to unmarshal response: %w", err)
	}

	return &out, nil
}
