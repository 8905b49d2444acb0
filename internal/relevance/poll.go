// ABOUTME: Job status polling loop with bounded attempts and fixed delay
// ABOUTME: Blocks the calling request until the job completes or the budget runs out

package relevance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PollUntilDone polls the job identified by (studioID, jobID) until its
// status reports complete with a chain-success update, returning that
// update's answer text. The loop runs at most MaxPollAttempts iterations
// with PollDelay between them, so a slow job blocks the caller for up to
// attempts x delay.
//
// A "complete" status whose update list has no chain-success entry yet
// counts as not finished and the loop keeps polling. A transport or HTTP
// failure aborts the whole poll immediately with *UpstreamError rather
// than consuming the remaining budget.
func (c *Client) PollUntilDone(ctx context.Context, studioID, jobID string) (string, error) {
	url := fmt.Sprintf("%s/studios/%s/async_poll/%s", c.baseURL, studioID, jobID)

	for attempt := 1; attempt <= c.maxPollAttempts; attempt++ {
		status, err := c.pollOnce(ctx, url)
		if err != nil {
			return "", err
		}

		if status.Type == statusComplete {
			for _, update := range status.Updates {
				if update.Type == updateChainSuccess {
					c.logger.Debug("job complete",
						"studio_id", studioID,
						"job_id", jobID,
						"attempts", attempt)
					return update.Output.Output.Answer, nil
				}
			}
		}

		if attempt < c.maxPollAttempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.pollDelay):
			}
		}
	}

	c.logger.Warn("poll budget exhausted",
		"studio_id", studioID,
		"job_id", jobID,
		"attempts", c.maxPollAttempts)
	return "", ErrPollTimeout
}

// pollOnce issues a single status request.
func (c *Client) pollOnce(ctx context.Context, url string) (*jobStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating poll request: %w", err)
	}
	req.Header.Set("Authorization", c.authorization)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Op: "poll", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Op: "poll", Status: resp.StatusCode}
	}

	var status jobStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, &UpstreamError{Op: "poll", Err: fmt.Errorf("decoding status: %w", err)}
	}

	return &status, nil
}
