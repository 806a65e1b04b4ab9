package captions

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func cue(text string, start, duration float64) Cue {
	return Cue{
		Text:     text,
		Start:    decimal.NewFromFloat(start),
		Duration: decimal.NewFromFloat(duration),
	}
}

func TestAnnotateCarriesSpeakerForward(t *testing.T) {
	cues := []Cue{
		cue("유재석: 안녕", 0.0, 2.5),
		cue("반가워요", 2.5, 1.0),
	}

	got := Annotate(cues, "Channel", PolicyMaxRatio)
	want := []Caption{
		{Text: "안녕", Speaker: "유재석", Language: LangKorean, StartTime: 0, EndTime: 2, Duration: decimal.NewFromFloat(2.5)},
		{Text: "반가워요", Speaker: "유재석", Language: LangKorean, StartTime: 2, EndTime: 3, Duration: decimal.NewFromFloat(1.0)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Annotate = %+v, want %+v", got, want)
	}
}

func TestAnnotateSeedSpeaker(t *testing.T) {
	got := Annotate([]Cue{cue("no marker at all", 0, 1)}, "Channel", PolicyMaxRatio)
	if len(got) != 1 || got[0].Speaker != "Channel" {
		t.Fatalf("expected seed speaker on first unmarked cue, got %+v", got)
	}
}

func TestAnnotateSkipsShortCues(t *testing.T) {
	cues := []Cue{
		cue("민수: 안녕하세요", 0, 1),
		cue("  a ", 1, 1), // single rune after trimming
		cue("", 2, 1),
		cue("다음 문장", 3, 1),
	}

	got := Annotate(cues, "Channel", PolicyMaxRatio)
	if len(got) != 2 {
		t.Fatalf("expected 2 captions, got %d", len(got))
	}
	// Skipped cues must not touch the carried speaker.
	if got[1].Speaker != "민수" {
		t.Errorf("carried speaker = %q, want %q", got[1].Speaker, "민수")
	}
}

func TestAnnotatePreservesInputOrder(t *testing.T) {
	cues := []Cue{
		cue("셋째 문장", 30, 1),
		cue("첫째 문장", 10, 1),
		cue("둘째 문장", 20, 1),
	}

	got := Annotate(cues, "Channel", PolicyMaxRatio)
	if len(got) != 3 {
		t.Fatalf("expected 3 captions, got %d", len(got))
	}
	for n, want := range []int64{30, 10, 20} {
		if got[n].StartTime != want {
			t.Errorf("caption %d start = %d, want %d (order must match input)", n, got[n].StartTime, want)
		}
	}
}

func TestAnnotateTimeFlooring(t *testing.T) {
	got := Annotate([]Cue{cue("타임 코드", 0.6, 0.6)}, "Channel", PolicyMaxRatio)
	if len(got) != 1 {
		t.Fatalf("expected 1 caption, got %d", len(got))
	}
	if got[0].StartTime != 0 || got[0].EndTime != 1 {
		t.Errorf("times = (%d, %d), want (0, 1): end is floor(start+duration)", got[0].StartTime, got[0].EndTime)
	}
}

func TestAnnotateIdempotent(t *testing.T) {
	cues := []Cue{
		cue("유재석: 안녕", 0.0, 2.5),
		cue("반가워요", 2.5, 1.0),
		cue("HOST: welcome back", 3.5, 2.0),
	}

	first := Annotate(cues, "Channel", PolicyMaxRatio)
	second := Annotate(cues, "Channel", PolicyMaxRatio)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-running Annotate changed the output")
	}
}
