package captions

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"clipfinder/b3"
)

type (
	repo interface {
		CountByVideo(ctx context.Context, videoID string) (int64, error)
		UpsertVideo(ctx context.Context, v Video) error
		InsertCaptions(ctx context.Context, videoID, title, channelName string, cs []Caption) (int64, error)
		Search(ctx context.Context, q SearchQuery) ([]SearchResult, error)
		Stats(ctx context.Context) (Stats, error)
		DeleteVideo(ctx context.Context, videoID string) (int64, error)
	}

	Service struct {
		r      repo
		source TranscriptSource
		meta   MetadataResolver
		opts   Options
	}

	Options struct {
		// Languages is the transcript preference list, most preferred
		// first.
		Languages []string
		Policy    ClassifierPolicy
		Limits    LimitPolicy
		// Mode feeds the limit policy ("interactive", "batch", ...).
		Mode string
		// QuotaUsed reports the current quota-used ratio for the limit
		// policy; nil means no quota pressure.
		QuotaUsed func() float64
	}

	CollectResult struct {
		VideoID          string `json:"video_id"`
		Saved            int64  `json:"saved"`
		Existing         int64  `json:"existing"`
		AlreadyCollected bool   `json:"already_collected"`
	}
)

// DefaultLanguages mirrors the transcript preference order the original
// collector used.
var DefaultLanguages = []string{"ko", "ko-KR", "ja", "ja-JP", "en", "en-US", "en-GB"}

func NewService(r repo, source TranscriptSource, meta MetadataResolver, opts Options) Service {
	if len(opts.Languages) == 0 {
		opts.Languages = DefaultLanguages
	}
	if opts.Policy == "" {
		opts.Policy = PolicyMaxRatio
	}
	if opts.Limits == nil {
		opts.Limits = DefaultLimitPolicy()
	}
	if opts.Mode == "" {
		opts.Mode = "interactive"
	}
	return Service{r: r, source: source, meta: meta, opts: opts}
}

// Collect ingests one video's captions. A video that already has stored
// captions is skipped wholesale: nothing is fetched and annotation never
// runs twice for the same source.
func (s Service) Collect(ctx context.Context, videoID string) (CollectResult, error) {
	existing, err := s.r.CountByVideo(ctx, videoID)
	if err != nil {
		return CollectResult{}, fmt.Errorf("collect %s: %w", videoID, err)
	}
	if existing > 0 {
		return CollectResult{VideoID: videoID, Existing: existing, AlreadyCollected: true}, nil
	}

	cues, payload, err := s.source.Fetch(ctx, videoID, s.opts.Languages)
	if err != nil {
		return CollectResult{}, fmt.Errorf("collect %s: %w", videoID, err)
	}

	meta := s.meta.Resolve(ctx, videoID)

	err = s.r.UpsertVideo(ctx, Video{
		ID:             videoID,
		Title:          meta.Title,
		ChannelName:    meta.ChannelName,
		TranscriptHash: b3.SumHex(payload),
	})
	if err != nil {
		return CollectResult{}, fmt.Errorf("collect %s: %w", videoID, err)
	}

	annotated := Annotate(cues, meta.ChannelName, s.opts.Policy)
	saved, err := s.r.InsertCaptions(ctx, videoID, meta.Title, meta.ChannelName, annotated)
	if err != nil {
		return CollectResult{}, fmt.Errorf("collect %s: %w", videoID, err)
	}

	return CollectResult{VideoID: videoID, Saved: saved}, nil
}

// CollectAll ingests several videos concurrently. Each run owns its own
// carried-speaker state, so the only shared resource is the database, whose
// insert-or-ignore discipline tolerates the concurrency. Results and errors
// line up with the input order.
func (s Service) CollectAll(ctx context.Context, videoIDs []string) ([]CollectResult, []error) {
	results := make([]CollectResult, len(videoIDs))
	errs := make([]error, len(videoIDs))

	var wg sync.WaitGroup
	for n, id := range videoIDs {
		wg.Add(1)
		go func(n int, id string) {
			defer wg.Done()
			results[n], errs[n] = s.Collect(ctx, id)
		}(n, id)
	}
	wg.Wait()

	return results, errs
}

// Search splits the query on whitespace: with two or more keywords the
// first narrows the speaker and the rest must all appear in the text, with
// one keyword it matches text or speaker. limit <= 0 defers to the
// configured limit policy.
func (s Service) Search(ctx context.Context, query string, lang Language, limit int) ([]SearchResult, error) {
	keywords := strings.Fields(query)

	q := SearchQuery{Language: lang}
	if len(keywords) >= 2 {
		q.SpeakerKeyword = keywords[0]
		q.TextKeywords = keywords[1:]
	} else {
		q.TextKeywords = keywords
	}

	if limit <= 0 {
		var quota float64
		if s.opts.QuotaUsed != nil {
			quota = s.opts.QuotaUsed()
		}
		limit = s.opts.Limits.Limit(s.opts.Mode, quota, len(keywords))
	}
	q.Limit = limit

	return s.r.Search(ctx, q)
}

func (s Service) Stats(ctx context.Context) (Stats, error) {
	return s.r.Stats(ctx)
}

// Forget removes everything stored for a video so a fresh Collect can
// re-ingest it.
func (s Service) Forget(ctx context.Context, videoID string) (int64, error) {
	removed, err := s.r.DeleteVideo(ctx, videoID)
	if err != nil {
		return 0, fmt.Errorf("forget %s: %w", videoID, err)
	}
	return removed, nil
}
