package youtube

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"clipfinder/captions"
)

// ErrNoTranscript reports that none of the preferred languages has a
// caption track for the video.
var ErrNoTranscript = errors.New("no transcript available")

const defaultTimedTextURL = "https://video.google.com/timedtext"

type (
	timedText struct {
		Texts []timedTextCue `xml:"text"`
	}

	timedTextCue struct {
		Start decimal.Decimal `xml:"start,attr"`
		Dur   decimal.Decimal `xml:"dur,attr"`
		Body  string          `xml:",chardata"`
	}
)

// Fetch pulls the caption track for a video, trying each language in
// preference order and keeping the first non-empty track. The raw response
// body is returned alongside the decoded cues so callers can fingerprint
// the payload.
func (c *Client) Fetch(ctx context.Context, videoID string, languages []string) ([]captions.Cue, []byte, error) {
	for _, lang := range languages {
		cues, payload, err := c.fetchTrack(ctx, videoID, lang)
		if err != nil {
			return nil, nil, fmt.Errorf("fetching %s transcript for %s: %w", lang, videoID, err)
		}
		if len(cues) > 0 {
			return cues, payload, nil
		}
	}
	return nil, nil, fmt.Errorf("transcript for %s: %w", videoID, ErrNoTranscript)
}

func (c *Client) fetchTrack(ctx context.Context, videoID, lang string) ([]captions.Cue, []byte, error) {
	q := url.Values{}
	q.Set("v", videoID)
	q.Set("lang", lang)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.timedTextURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("building timedtext request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("requesting timedtext: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("timedtext status %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("reading timedtext body: %w", err)
	}

	// An existing video with no track in this language answers 200 with
	// an empty body.
	if len(payload) == 0 {
		return nil, nil, nil
	}

	cues, err := decodeTimedText(payload)
	if err != nil {
		return nil, nil, err
	}
	return cues, payload, nil
}

func decodeTimedText(payload []byte) ([]captions.Cue, error) {
	var tt timedText
	if err := xml.Unmarshal(payload, &tt); err != nil {
		return nil, fmt.Errorf("decoding timedtext xml: %w", err)
	}

	cues := make([]captions.Cue, len(tt.Texts))
	for n, t := range tt.Texts {
		// Cue bodies arrive double-escaped ("&amp;#39;"), so a second
		// unescape after XML decoding is needed.
		cues[n] = captions.Cue{
			Text:     html.UnescapeString(t.Body),
			Start:    t.Start,
			Duration: t.Dur,
		}
	}
	return cues, nil
}
