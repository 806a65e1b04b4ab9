// Package youtube implements the transcript-source and metadata-resolver
// collaborators against YouTube's public endpoints.
package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"clipfinder/captions"
)

type (
	// Cache is an optional lookaside for resolved metadata. A nil Cache
	// disables caching.
	Cache interface {
		GetMetadata(ctx context.Context, videoID string) (captions.Metadata, bool, error)
		SetMetadata(ctx context.Context, videoID string, m captions.Metadata) error
	}

	Client struct {
		http   *http.Client
		apiKey string
		cache  Cache

		timedTextURL string
	}
)

var _ captions.TranscriptSource = (*Client)(nil)
var _ captions.MetadataResolver = (*Client)(nil)

// NewClient builds a YouTube client. apiKey may be empty, in which case the
// metadata resolver skips the Data API and goes straight to oEmbed.
func NewClient(apiKey string, cache Cache) *Client {
	return &Client{
		http:         &http.Client{Timeout: 10 * time.Second},
		apiKey:       apiKey,
		cache:        cache,
		timedTextURL: defaultTimedTextURL,
	}
}

// ExtractVideoID pulls the video ID out of a watch URL or a youtu.be short
// link. Anything else is assumed to already be a bare ID.
func ExtractVideoID(raw string) string {
	switch {
	case strings.Contains(raw, "youtube.com/watch"):
		u, err := url.Parse(raw)
		if err != nil {
			return raw
		}
		if v := u.Query().Get("v"); v != "" {
			return v
		}
		return raw
	case strings.Contains(raw, "youtu.be/"):
		id := raw[strings.LastIndex(raw, "/")+1:]
		if n := strings.IndexByte(id, '?'); n >= 0 {
			id = id[:n]
		}
		return id
	default:
		return raw
	}
}

// WatchURL deep-links to a video at a given offset in seconds.
func WatchURL(videoID string, start int64) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s&t=%ds", videoID, start)
}
