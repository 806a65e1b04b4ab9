package captions

import "strings"

// ClassifierPolicy selects which threshold rule set DetectLanguage applies.
type ClassifierPolicy string

const (
	// PolicyMaxRatio picks the dominant script when its ratio clears 0.3
	// and can report mixed_asian for Hangul/Japanese-heavy text with no
	// single winner.
	PolicyMaxRatio ClassifierPolicy = "max_ratio"
	// PolicySimple is the legacy rule set: korean > 0.3, japanese > 0.3,
	// english > 0.5, otherwise mixed. Never reports mixed_asian.
	PolicySimple ClassifierPolicy = "simple"
)

const scriptRatioThreshold = 0.3

// Script classes are disjoint Unicode ranges, so each rune counts toward at
// most one class.
func isHangul(r rune) bool { return r >= 0xAC00 && r <= 0xD7A3 }

func isLatinLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Hiragana, Katakana and the CJK ideograph block. Ideographs count as
// Japanese here; Korean text is caught by the Hangul range first.
func isJapanese(r rune) bool {
	return (r >= 0x3040 && r <= 0x309F) ||
		(r >= 0x30A0 && r <= 0x30FF) ||
		(r >= 0x4E00 && r <= 0x9FAF)
}

// DetectLanguage tags text by counting script-class runes and applying the
// policy's ratio thresholds. Total, pure, order-independent: empty input
// (after space removal) is LangUnknown, ambiguous input LangMixed.
func DetectLanguage(text string, policy ClassifierPolicy) Language {
	var korean, english, japanese, total int
	for _, r := range strings.ReplaceAll(text, " ", "") {
		total++
		switch {
		case isHangul(r):
			korean++
		case isLatinLetter(r):
			english++
		case isJapanese(r):
			japanese++
		}
	}

	if total == 0 {
		return LangUnknown
	}

	koreanRatio := float64(korean) / float64(total)
	englishRatio := float64(english) / float64(total)
	japaneseRatio := float64(japanese) / float64(total)

	if policy == PolicySimple {
		switch {
		case koreanRatio > scriptRatioThreshold:
			return LangKorean
		case japaneseRatio > scriptRatioThreshold:
			return LangJapanese
		case englishRatio > 0.5:
			return LangEnglish
		default:
			return LangMixed
		}
	}

	maxRatio := koreanRatio
	maxLang := LangKorean
	if englishRatio > maxRatio {
		maxRatio = englishRatio
		maxLang = LangEnglish
	}
	if japaneseRatio > maxRatio {
		maxRatio = japaneseRatio
		maxLang = LangJapanese
	}

	if maxRatio > scriptRatioThreshold {
		return maxLang
	}
	if koreanRatio+japaneseRatio > scriptRatioThreshold {
		return LangMixedAsian
	}
	return LangMixed
}
