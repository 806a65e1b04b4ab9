package captions

import (
	"time"

	"github.com/shopspring/decimal"
)

// Language is a best-effort script-based tag, not a linguistic verdict.
type Language string

const (
	LangKorean     Language = "korean"
	LangEnglish    Language = "english"
	LangJapanese   Language = "japanese"
	LangMixed      Language = "mixed"
	LangMixedAsian Language = "mixed_asian"
	LangUnknown    Language = "unknown"
)

type (
	// Cue is one raw timed caption line as delivered by a transcript
	// source. Text may still carry a leading speaker marker.
	Cue struct {
		Text     string
		Start    decimal.Decimal
		Duration decimal.Decimal
	}

	// Caption is an annotated cue, the unit that gets persisted.
	Caption struct {
		Text      string          `json:"text"`
		Speaker   string          `json:"speaker"`
		Language  Language        `json:"language"`
		StartTime int64           `json:"start_time"`
		EndTime   int64           `json:"end_time"`
		Duration  decimal.Decimal `json:"duration"`
	}

	Video struct {
		ID             string    `json:"video_id"`
		Title          string    `json:"title"`
		ChannelName    string    `json:"channel_name"`
		TranscriptHash string    `json:"transcript_hash"`
		CollectedAt    time.Time `json:"collected_at"`
	}

	SearchResult struct {
		VideoID     string          `json:"video_id"`
		Title       string          `json:"title"`
		ChannelName string          `json:"channel_name"`
		Speaker     string          `json:"speaker"`
		Text        string          `json:"text"`
		StartTime   int64           `json:"start_time"`
		EndTime     int64           `json:"end_time"`
		Duration    decimal.Decimal `json:"duration"`
		Language    Language        `json:"language"`
		WatchURL    string          `json:"watch_url"`
	}

	Stats struct {
		TotalCaptions int64              `json:"total_captions"`
		TotalVideos   int64              `json:"total_videos"`
		TotalSpeakers int64              `json:"total_speakers"`
		Languages     map[Language]int64 `json:"languages"`
	}
)
