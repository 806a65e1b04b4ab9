package captions

import "context"

type (
	// TranscriptSource fetches one video's raw cue sequence. Payload is
	// the raw response body the cues were decoded from, kept so the
	// service can fingerprint it. Implementations return
	// youtube.ErrNoTranscript-style sentinel errors when no preferred
	// language has a track.
	TranscriptSource interface {
		Fetch(ctx context.Context, videoID string, languages []string) (cues []Cue, payload []byte, err error)
	}

	// MetadataResolver resolves a human-readable title and channel name.
	// Best effort: implementations fall back to deterministic
	// placeholders instead of failing.
	MetadataResolver interface {
		Resolve(ctx context.Context, videoID string) Metadata
	}

	Metadata struct {
		Title       string `json:"title"`
		ChannelName string `json:"channel_name"`
	}
)
