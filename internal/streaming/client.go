package streaming

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jason-czar/Sportstreams/internal/config"
)

// Client wraps the streaming provider's live API. The coordinator treats
// everything returned here as opaque: ids, keys, and URLs are stored and
// forwarded, never interpreted.
type Client struct {
	baseURL         string
	playbackBaseURL string
	ingestURL       string
	tokenID         string
	tokenSecret     string
	http            *http.Client
}

const defaultIngestURL = "rtmps://global-live.mux.com:443/app"

// LiveStream is the provider-side handle for one ingest endpoint.
type LiveStream struct {
	ID         string
	StreamKey  string
	PlaybackID string
}

// SimulcastTarget is the provider-side handle for one restream destination.
type SimulcastTarget struct {
	ID     string
	URL    string
	Status string
}

func NewClient(cfg config.StreamingConfig) *Client {
	return &Client{
		baseURL:         strings.TrimSuffix(cfg.BaseURL, "/"),
		playbackBaseURL: strings.TrimSuffix(cfg.PlaybackBaseURL, "/"),
		ingestURL:       defaultIngestURL,
		tokenID:         cfg.TokenID,
		tokenSecret:     cfg.TokenSecret,
		http:            &http.Client{Timeout: 15 * time.Second},
	}
}

// PlaybackURL formats the externally resolvable address for a playback ID.
// Pure string formatting; no request is made.
func (c *Client) PlaybackURL(playbackID string) string {
	return fmt.Sprintf("%s/%s.m3u8", c.playbackBaseURL, playbackID)
}

// IngestURL returns the RTMP endpoint operators stream to.
func (c *Client) IngestURL() string {
	return c.ingestURL
}

// CreateLiveStream provisions a new ingest endpoint with a public playback ID.
func (c *Client) CreateLiveStream(ctx context.Context) (*LiveStream, error) {
	body := map[string]interface{}{
		"playback_policy":    []string{"public"},
		"new_asset_settings": map[string]interface{}{"playback_policy": []string{"public"}},
		"latency_mode":       "low",
		"reconnect_window":   60,
	}

	var resp struct {
		Data struct {
			ID          string `json:"id"`
			StreamKey   string `json:"stream_key"`
			PlaybackIDs []struct {
				ID string `json:"id"`
			} `json:"playback_ids"`
		} `json:"data"`
	}

	if err := c.do(ctx, http.MethodPost, "/video/v1/live-streams", body, &resp); err != nil {
		return nil, err
	}

	stream := &LiveStream{
		ID:        resp.Data.ID,
		StreamKey: resp.Data.StreamKey,
	}
	if len(resp.Data.PlaybackIDs) > 0 {
		stream.PlaybackID = resp.Data.PlaybackIDs[0].ID
	}
	return stream, nil
}

// CompleteLiveStream signals the provider that the broadcast is over.
func (c *Client) CompleteLiveStream(ctx context.Context, streamID string) error {
	path := fmt.Sprintf("/video/v1/live-streams/%s/complete", streamID)
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

// CreateSimulcastTarget registers a restream destination on a live stream.
func (c *Client) CreateSimulcastTarget(ctx context.Context, streamID, url, streamKey string) (*SimulcastTarget, error) {
	body := map[string]interface{}{
		"url":        url,
		"stream_key": streamKey,
	}

	var resp struct {
		Data struct {
			ID     string `json:"id"`
			URL    string `json:"url"`
			Status string `json:"status"`
		} `json:"data"`
	}

	path := fmt.Sprintf("/video/v1/live-streams/%s/simulcast-targets", streamID)
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}

	return &SimulcastTarget{
		ID:     resp.Data.ID,
		URL:    resp.Data.URL,
		Status: resp.Data.Status,
	}, nil
}

// DeleteSimulcastTarget removes a restream destination from a live stream.
func (c *Client) DeleteSimulcastTarget(ctx context.Context, streamID, targetID string) error {
	path := fmt.Sprintf("/video/v1/live-streams/%s/simulcast-targets/%s", streamID, targetID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.tokenID, c.tokenSecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("streaming provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("streaming provider returned %d: %s", resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode streaming provider response: %w", err)
		}
	}
	return nil
}
