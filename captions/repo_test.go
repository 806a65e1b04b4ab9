package captions

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// A named shared in-memory database keeps every pool connection on
	// the same schema.
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := OpenDB(dsn)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testCaptions() []Caption {
	return []Caption{
		{Text: "안녕", Speaker: "유재석", Language: LangKorean, StartTime: 0, EndTime: 2, Duration: decimal.NewFromFloat(2.5)},
		{Text: "반가워요", Speaker: "유재석", Language: LangKorean, StartTime: 2, EndTime: 3, Duration: decimal.NewFromFloat(1.0)},
		{Text: "welcome back", Speaker: "HOST", Language: LangEnglish, StartTime: 3, EndTime: 5, Duration: decimal.NewFromFloat(2.0)},
	}
}

func TestInsertCaptionsAndCount(t *testing.T) {
	ctx := context.Background()
	r := NewSQLiteRepo(openTestDB(t))

	inserted, err := r.InsertCaptions(ctx, "vid1", "Title", "Channel", testCaptions())
	if err != nil {
		t.Fatal(err)
	}
	if inserted != 3 {
		t.Errorf("inserted = %d, want 3", inserted)
	}

	count, err := r.CountByVideo(ctx, "vid1")
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}

	// Same cues again: every row collides on (video_id, start_time) and
	// is ignored without aborting the batch.
	inserted, err = r.InsertCaptions(ctx, "vid1", "Title", "Channel", testCaptions())
	if err != nil {
		t.Fatal(err)
	}
	if inserted != 0 {
		t.Errorf("duplicate insert affected %d rows, want 0", inserted)
	}
}

func TestInsertCaptionsEmpty(t *testing.T) {
	r := NewSQLiteRepo(openTestDB(t))
	inserted, err := r.InsertCaptions(context.Background(), "vid1", "Title", "Channel", nil)
	if err != nil {
		t.Fatal(err)
	}
	if inserted != 0 {
		t.Errorf("inserted = %d, want 0", inserted)
	}
}

func TestSearchSpeakerAndTextKeywords(t *testing.T) {
	ctx := context.Background()
	r := NewSQLiteRepo(openTestDB(t))
	if _, err := r.InsertCaptions(ctx, "vid1", "Title", "Channel", testCaptions()); err != nil {
		t.Fatal(err)
	}

	results, err := r.Search(ctx, SearchQuery{
		SpeakerKeyword: "유재석",
		TextKeywords:   []string{"반가"},
		Limit:          10,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Text != "반가워요" {
		t.Fatalf("results = %+v, want the single 반가워요 row", results)
	}
	if !results[0].Duration.Equal(decimal.NewFromFloat(1.0)) {
		t.Errorf("duration = %s, want 1", results[0].Duration)
	}
}

func TestSearchSingleKeywordMatchesTextOrSpeaker(t *testing.T) {
	ctx := context.Background()
	r := NewSQLiteRepo(openTestDB(t))
	if _, err := r.InsertCaptions(ctx, "vid1", "Title", "Channel", testCaptions()); err != nil {
		t.Fatal(err)
	}

	// Matches by speaker even though no text contains HOST.
	results, err := r.Search(ctx, SearchQuery{TextKeywords: []string{"HOST"}, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Speaker != "HOST" {
		t.Fatalf("results = %+v, want the single HOST row", results)
	}
}

func TestSearchLanguageFilterAndOrder(t *testing.T) {
	ctx := context.Background()
	r := NewSQLiteRepo(openTestDB(t))

	// Insert a second video first so ordering has something to do.
	if _, err := r.InsertCaptions(ctx, "vid2", "Other", "Channel", []Caption{
		{Text: "안녕 여러분", Speaker: "화자", Language: LangKorean, StartTime: 5, EndTime: 6, Duration: decimal.NewFromFloat(1.0)},
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := r.InsertCaptions(ctx, "vid1", "Title", "Channel", testCaptions()); err != nil {
		t.Fatal(err)
	}

	results, err := r.Search(ctx, SearchQuery{TextKeywords: []string{"안녕"}, Language: LangKorean, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].VideoID != "vid1" || results[1].VideoID != "vid2" {
		t.Errorf("order = %s, %s; want vid1 then vid2", results[0].VideoID, results[1].VideoID)
	}

	// English filter must exclude all Korean rows.
	results, err = r.Search(ctx, SearchQuery{TextKeywords: []string{"안녕"}, Language: LangEnglish, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("language filter leaked %d rows", len(results))
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	r := NewSQLiteRepo(openTestDB(t))
	if _, err := r.InsertCaptions(ctx, "vid1", "Title", "Channel", testCaptions()); err != nil {
		t.Fatal(err)
	}

	s, err := r.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if s.TotalCaptions != 3 || s.TotalVideos != 1 || s.TotalSpeakers != 2 {
		t.Errorf("stats = %+v, want 3 captions, 1 video, 2 speakers", s)
	}
	if s.Languages[LangKorean] != 2 || s.Languages[LangEnglish] != 1 {
		t.Errorf("language stats = %+v", s.Languages)
	}
}

func TestUpsertVideoAndDelete(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	r := NewSQLiteRepo(db)

	if err := r.UpsertVideo(ctx, Video{ID: "vid1", Title: "Old", ChannelName: "Channel", TranscriptHash: "aaaa"}); err != nil {
		t.Fatal(err)
	}
	// Conflicting upsert refreshes the row instead of failing.
	if err := r.UpsertVideo(ctx, Video{ID: "vid1", Title: "New", ChannelName: "Channel", TranscriptHash: "bbbb"}); err != nil {
		t.Fatal(err)
	}

	var title, hash string
	if err := db.QueryRow("select title, transcript_hash from videos where video_id = 'vid1'").Scan(&title, &hash); err != nil {
		t.Fatal(err)
	}
	if title != "New" || hash != "bbbb" {
		t.Errorf("upsert kept (%q, %q), want refreshed values", title, hash)
	}

	if _, err := r.InsertCaptions(ctx, "vid1", "New", "Channel", testCaptions()); err != nil {
		t.Fatal(err)
	}

	removed, err := r.DeleteVideo(ctx, "vid1")
	if err != nil {
		t.Fatal(err)
	}
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}
	count, err := r.CountByVideo(ctx, "vid1")
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("count after delete = %d, want 0", count)
	}
}
