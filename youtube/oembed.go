package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"clipfinder/captions"
)

const (
	oembedURL = "https://www.youtube.com/oembed"
	videosAPI = "https://www.googleapis.com/youtube/v3/videos"
)

// Resolve looks up a video's title and channel name. Best effort with a
// fixed fallback order: cache, Data API (when a key is configured), oEmbed,
// then deterministic placeholders. It never fails.
func (c *Client) Resolve(ctx context.Context, videoID string) captions.Metadata {
	if c.cache != nil {
		if m, ok, err := c.cache.GetMetadata(ctx, videoID); err != nil {
			log.Printf("metadata cache get %s: %v", videoID, err)
		} else if ok {
			return m
		}
	}

	m, err := c.resolveAPI(ctx, videoID)
	if err != nil {
		if c.apiKey != "" {
			log.Printf("data api lookup %s: %v", videoID, err)
		}
		m, err = c.resolveOembed(ctx, videoID)
	}
	if err != nil {
		return captions.Metadata{
			Title:       fmt.Sprintf("Video %s", videoID),
			ChannelName: "Unknown Channel",
		}
	}

	if c.cache != nil {
		if err := c.cache.SetMetadata(ctx, videoID, m); err != nil {
			log.Printf("metadata cache set %s: %v", videoID, err)
		}
	}
	return m
}

func (c *Client) resolveAPI(ctx context.Context, videoID string) (captions.Metadata, error) {
	if c.apiKey == "" {
		return captions.Metadata{}, fmt.Errorf("no api key configured")
	}

	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("id", videoID)
	q.Set("key", c.apiKey)

	var out struct {
		Items []struct {
			Snippet struct {
				Title        string `json:"title"`
				ChannelTitle string `json:"channelTitle"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := c.getJSON(ctx, videosAPI+"?"+q.Encode(), &out); err != nil {
		return captions.Metadata{}, err
	}
	if len(out.Items) == 0 {
		return captions.Metadata{}, fmt.Errorf("video %s not found", videoID)
	}

	return captions.Metadata{
		Title:       out.Items[0].Snippet.Title,
		ChannelName: out.Items[0].Snippet.ChannelTitle,
	}, nil
}

func (c *Client) resolveOembed(ctx context.Context, videoID string) (captions.Metadata, error) {
	q := url.Values{}
	q.Set("url", "https://www.youtube.com/watch?v="+videoID)
	q.Set("format", "json")

	var out struct {
		Title      string `json:"title"`
		AuthorName string `json:"author_name"`
	}
	if err := c.getJSON(ctx, oembedURL+"?"+q.Encode(), &out); err != nil {
		return captions.Metadata{}, err
	}

	m := captions.Metadata{Title: out.Title, ChannelName: out.AuthorName}
	if m.Title == "" {
		m.Title = "Unknown Title"
	}
	if m.ChannelName == "" {
		m.ChannelName = "Unknown Channel"
	}
	return m, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d from %s", resp.StatusCode, rawURL)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
