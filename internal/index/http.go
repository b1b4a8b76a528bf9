// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package index

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// maxPayload caps the response body read from a remote index.
const maxPayload = 4 << 20

// HTTPIndex reads records from a JSON endpoint.
//
// The endpoint may answer with a bare array of {id, title} objects or an
// object wrapping that array under "records".
type HTTPIndex struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTTPIndex creates a client for url. perSecond throttles requests so a
// failing endpoint is not hammered by retries.
func NewHTTPIndex(url string, timeout time.Duration, perSecond float64) *HTTPIndex {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if perSecond <= 0 {
		perSecond = 1
	}
	return &HTTPIndex{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// Fetch performs one GET against the endpoint.
func (h *HTTPIndex) Fetch(ctx context.Context) ([]Record, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return decodeRecords(body)
}

func decodeRecords(body []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(body, &records); err != nil {
		var wrapped struct {
			Records []Record `json:"records"`
		}
		if err2 := json.Unmarshal(body, &wrapped); err2 != nil || wrapped.Records == nil {
			return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
		}
		records = wrapped.Records
	}
	if err := validate(records); err != nil {
		return nil, err
	}
	return records, nil
}
