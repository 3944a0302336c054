// Package statsclient talks to the statistics service. Recording hits is
// fire-and-forget and fetching views is best-effort: the stats service being
// down must never fail an event read.
package statsclient

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	zlog "github.com/rs/zerolog/log"

	"github.com/gorden73/Explore-with-me-sub000/internal/pkg/wiretime"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Hit struct {
	App       string        `json:"app"`
	URI       string        `json:"uri"`
	IP        string        `json:"ip"`
	Timestamp wiretime.Time `json:"timestamp"`
}

type ViewStats struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}

type Client struct {
	baseURL string
	app     string
	http    *http.Client
}

func New(baseURL, app string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		app:     app,
		http:    &http.Client{Timeout: timeout},
	}
}

// RecordHit posts an endpoint hit. Failures are logged and swallowed.
func (c *Client) RecordHit(ctx context.Context, uri, ip string) {
	body, err := json.Marshal(Hit{
		App:       c.app,
		URI:       uri,
		IP:        ip,
		Timestamp: wiretime.New(time.Now()),
	})
	if err != nil {
		zlog.Warn().Err(err).Str("uri", uri).Msg("stats hit encode failed")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/hit", bytes.NewReader(body))
	if err != nil {
		zlog.Warn().Err(err).Str("uri", uri).Msg("stats hit request failed")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		zlog.Warn().Err(err).Str("uri", uri).Msg("stats hit send failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		zlog.Warn().Int("status", resp.StatusCode).Str("uri", uri).Msg("stats hit rejected")
	}
}

// FetchViews returns hit counts per uri since the beginning of time.
func (c *Client) FetchViews(ctx context.Context, uris []string) (map[string]int64, error) {
	q := url.Values{}
	q.Set("start", wiretime.New(time.Unix(0, 0)).UTC().Format(wiretime.Layout))
	q.Set("end", wiretime.New(time.Now()).UTC().Format(wiretime.Layout))
	for _, u := range uris {
		q.Add("uris", u)
	}
	q.Set("unique", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats service returned %d", resp.StatusCode)
	}

	var envelope struct {
		Data []ViewStats `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(envelope.Data))
	for _, vs := range envelope.Data {
		out[vs.URI] = vs.Hits
	}
	return out, nil
}
