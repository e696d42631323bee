package distance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"dvrp-solver-service/internal/platform/obs"
	"dvrp-solver-service/internal/ports"
)

// HTTPDistanceSource fetches the pre-computed pairwise distance table from
// an external matrix service. Transient failures (network errors, 429, 5xx)
// are retried with exponential backoff while respecting context
// cancellation. The source is safe for concurrent use.
type HTTPDistanceSource struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewHTTPDistanceSource(baseURL, apiKey string) (*HTTPDistanceSource, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("http distance source: base URL is empty")
	}

	return &HTTPDistanceSource{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}, nil
}

type pairPayload struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Meters float64 `json:"distance_meters"`
}

func (h *HTTPDistanceSource) LoadDistances(ctx context.Context) (_ ports.DistanceLookup, err error) {
	defer obs.Time(ctx, "distance.http.LoadDistances")(&err)

	endpoint := h.baseURL + "/v1/distances"

	resp, err := h.doWithRetry(ctx, func() (*http.Request, error) {
		return h.newRequest(ctx, http.MethodGet, endpoint)
	})
	if err != nil {
		return nil, fmt.Errorf("load distances: fetch %q: %w", endpoint, err)
	}
	defer resp.Body.Close()

	var payload []pairPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("load distances: decode response: %w", err)
	}

	pairs := make([]Pair, 0, len(payload))
	for i, p := range payload {
		if p.From == "" || p.To == "" {
			return nil, fmt.Errorf("load distances: entry %d has empty identifiers", i)
		}
		if p.Meters < 0 {
			return nil, fmt.Errorf("load distances: negative distance %v for %q -> %q", p.Meters, p.From, p.To)
		}
		pairs = append(pairs, Pair{From: p.From, To: p.To, Meters: p.Meters})
	}

	return NewMatrix(pairs), nil
}

func (h *HTTPDistanceSource) newRequest(ctx context.Context, method, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if h.apiKey != "" {
		req.Header.Set("Authorization", h.apiKey)
	}

	return req, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (h *HTTPDistanceSource) do(req *http.Request) (*http.Response, error) {
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429, 5xx)
// using exponential backoff while respecting context cancellation.
func (h *HTTPDistanceSource) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := h.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
