package captions

import (
	"regexp"
	"strings"
)

// Default attribution when no marker matched and no speaker is carried.
var defaultSpeakers = map[Language]string{
	LangKorean:   "화자",
	LangJapanese: "話者",
}

const defaultSpeaker = "Speaker"

// speakerPattern recognizes one syntactic convention for a leading speaker
// marker. Each regexp anchors at the start and captures the label; length
// bounds keep ordinary sentence-initial words from matching.
type speakerPattern struct {
	family string
	re     *regexp.Regexp
}

// Evaluation order is part of the contract: Hangul patterns first, then
// Latin, then Japanese, first match wins. Short ambiguous strings could
// satisfy patterns from more than one family.
var speakerPatterns = []speakerPattern{
	{"hangul", regexp.MustCompile(`^([가-힣]{2,4})\s*:`)},
	{"hangul", regexp.MustCompile(`^\(([가-힣]{2,4})\)`)},
	{"hangul", regexp.MustCompile(`^【([가-힣]{2,4})】`)},
	{"hangul", regexp.MustCompile(`^\[([가-힣]{2,4})\]`)},
	{"latin", regexp.MustCompile(`^([A-Z][a-z]+ [A-Z][a-z]+)\s*:`)},
	{"latin", regexp.MustCompile(`^([A-Z][a-z]+)\s*:`)},
	{"latin", regexp.MustCompile(`^([A-Z]{2,12})\s*:`)},
	{"latin", regexp.MustCompile(`^\(([A-Z][a-z]+)\)`)},
	{"latin", regexp.MustCompile(`^\[([A-Z][a-z]+)\]`)},
	{"japanese", regexp.MustCompile(`^([\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FAF}]{2,8})\s*:`)},
	{"japanese", regexp.MustCompile(`^\(([\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FAF}]{2,8})\)`)},
	{"japanese", regexp.MustCompile(`^【([\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FAF}]{2,8})】`)},
}

// DetectSpeaker attributes a caption line. When a leading marker matches,
// the captured label becomes the speaker and the whole marker is stripped
// from the text. Otherwise the carried previous speaker continues, falling
// back to a language-specific placeholder when there is none. Never fails.
func DetectSpeaker(text, previousSpeaker string, lang Language) (speaker, residual string) {
	text = strings.TrimSpace(text)

	for _, p := range speakerPatterns {
		m := p.re.FindStringSubmatchIndex(text)
		if m == nil {
			continue
		}
		speaker = text[m[2]:m[3]]
		residual = strings.TrimSpace(text[m[1]:])
		return speaker, residual
	}

	if previousSpeaker != "" {
		return previousSpeaker, text
	}
	if s, ok := defaultSpeakers[lang]; ok {
		return s, text
	}
	return defaultSpeaker, text
}
