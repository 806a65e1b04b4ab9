package captions

import (
	"strings"
	"unicode/utf8"
)

// Annotate runs the classification pipeline over one video's cue sequence.
// Single pass, output order equals input order. seedSpeaker (normally the
// channel name) is the attribution carried into the first cue; each
// attributed speaker is carried forward to the next cue. Cues whose trimmed
// text is shorter than two runes are dropped and leave the carried speaker
// untouched. The carried speaker is local to one call; independent videos
// can be annotated concurrently.
func Annotate(cues []Cue, seedSpeaker string, policy ClassifierPolicy) []Caption {
	out := make([]Caption, 0, len(cues))
	currentSpeaker := seedSpeaker

	for _, cue := range cues {
		text := strings.TrimSpace(cue.Text)
		if utf8.RuneCountInString(text) < 2 {
			continue
		}

		startTime := cue.Start.IntPart()
		endTime := cue.Start.Add(cue.Duration).IntPart()

		lang := DetectLanguage(text, policy)
		speaker, residual := DetectSpeaker(text, currentSpeaker, lang)
		currentSpeaker = speaker

		out = append(out, Caption{
			Text:      residual,
			Speaker:   speaker,
			Language:  lang,
			StartTime: startTime,
			EndTime:   endTime,
			Duration:  cue.Duration,
		})
	}

	return out
}
