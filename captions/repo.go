package captions

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type (
	SQLiteRepo struct {
		db *sql.DB
	}

	// SearchQuery is the storage-level query shape: an optional speaker
	// keyword, text keywords that must all match, an optional language
	// filter and a row limit. Keyword splitting policy lives in the
	// service, not here.
	SearchQuery struct {
		SpeakerKeyword string
		TextKeywords   []string
		Language       Language
		Limit          int
	}
)

func NewSQLiteRepo(db *sql.DB) SQLiteRepo {
	return SQLiteRepo{db}
}

func (r SQLiteRepo) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	var count int64
	err := r.db.
		QueryRowContext(ctx, "select count(*) from captions where video_id = $1", videoID).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting captions for video: %w", err)
	}
	return count, nil
}

func (r SQLiteRepo) UpsertVideo(ctx context.Context, v Video) error {
	_, err := r.db.ExecContext(ctx, `
		insert into videos (video_id, title, channel_name, transcript_hash)
		values ($1, $2, $3, $4)
		on conflict (video_id) do update set
			title = excluded.title,
			channel_name = excluded.channel_name,
			transcript_hash = excluded.transcript_hash`,
		v.ID, v.Title, v.ChannelName, v.TranscriptHash,
	)
	if err != nil {
		return fmt.Errorf("persisting video into sqlite: %w", err)
	}
	return nil
}

// InsertCaptions appends one video's annotated captions in a single batch
// statement. Rows colliding on (video_id, start_time) are ignored, so
// repeated or concurrent inserts for the same cue never duplicate or abort
// the batch. Returns the number of rows actually inserted.
func (r SQLiteRepo) InsertCaptions(ctx context.Context, videoID, title, channelName string, cs []Caption) (int64, error) {
	if len(cs) == 0 {
		return 0, nil
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`insert or ignore into captions (
		video_id,
		title,
		channel_name,
		speaker,
		text,
		start_time,
		end_time,
		duration,
		language) values `)

	args := make([]any, 9*len(cs))
	for n, c := range cs {
		prefix := ", "
		if n == 0 {
			prefix = ""
		}
		suffix := ""
		if n == len(cs)-1 {
			suffix = ";"
		}
		b := n * 9
		queryBuilder.WriteString(fmt.Sprintf(`%s(
			$%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d
		)%s`, prefix, b+1, b+2, b+3, b+4, b+5, b+6, b+7, b+8, b+9, suffix))

		args[b] = videoID
		args[b+1] = title
		args[b+2] = channelName
		args[b+3] = c.Speaker
		args[b+4] = c.Text
		args[b+5] = c.StartTime
		args[b+6] = c.EndTime
		args[b+7] = c.Duration.String()
		args[b+8] = string(c.Language)
	}

	res, err := r.db.ExecContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return 0, fmt.Errorf("inserting captions: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("inserting captions: rows affected: %w", err)
	}
	return inserted, nil
}

// Search matches captions by keyword. All conditions are bound parameters;
// results come back ordered by (video_id, start_time) so clips from one
// video read in temporal order.
func (r SQLiteRepo) Search(ctx context.Context, q SearchQuery) ([]SearchResult, error) {
	limit := q.Limit
	if limit <= 0 || limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	var conds []string
	var args []any

	if q.SpeakerKeyword != "" && len(q.TextKeywords) > 0 {
		conds = append(conds, "speaker like $1")
		args = append(args, "%"+q.SpeakerKeyword+"%")
		for _, kw := range q.TextKeywords {
			conds = append(conds, fmt.Sprintf("text like $%d", len(args)+1))
			args = append(args, "%"+kw+"%")
		}
	} else {
		kw := q.SpeakerKeyword
		if kw == "" && len(q.TextKeywords) > 0 {
			kw = q.TextKeywords[0]
		}
		conds = append(conds, "(text like $1 or speaker like $2)")
		args = append(args, "%"+kw+"%", "%"+kw+"%")
	}

	if q.Language != "" {
		conds = append(conds, fmt.Sprintf("language = $%d", len(args)+1))
		args = append(args, string(q.Language))
	}

	args = append(args, limit)
	query := fmt.Sprintf(`
		select video_id, title, channel_name, speaker, text,
		       start_time, end_time, duration, language
		from captions
		where %s
		order by video_id, start_time
		limit $%d`, strings.Join(conds, " and "), len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching captions: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var res SearchResult
		var duration string
		err := rows.Scan(
			&res.VideoID, &res.Title, &res.ChannelName, &res.Speaker, &res.Text,
			&res.StartTime, &res.EndTime, &duration, &res.Language,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning search row: %w", err)
		}
		res.Duration, err = decimal.NewFromString(duration)
		if err != nil {
			return nil, fmt.Errorf("parsing stored duration: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("searching captions: %w", err)
	}
	return results, nil
}

func (r SQLiteRepo) Stats(ctx context.Context) (Stats, error) {
	s := Stats{Languages: map[Language]int64{}}

	err := r.db.QueryRowContext(ctx, `
		select count(*),
		       count(distinct video_id),
		       count(distinct speaker)
		from captions`).
		Scan(&s.TotalCaptions, &s.TotalVideos, &s.TotalSpeakers)
	if err != nil {
		return s, fmt.Errorf("reading caption stats: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		select language, count(*) as count
		from captions
		group by language
		order by count desc`)
	if err != nil {
		return s, fmt.Errorf("reading language stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var lang Language
		var count int64
		if err := rows.Scan(&lang, &count); err != nil {
			return s, fmt.Errorf("scanning language stats: %w", err)
		}
		s.Languages[lang] = count
	}
	if err := rows.Err(); err != nil {
		return s, fmt.Errorf("reading language stats: %w", err)
	}
	return s, nil
}

// DeleteVideo removes a video row and all its captions so the source can be
// collected fresh. Returns the number of captions removed.
func (r SQLiteRepo) DeleteVideo(ctx context.Context, videoID string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("deleting video: begin trx: %w", err)
	}

	res, err := tx.ExecContext(ctx, "delete from captions where video_id = $1", videoID)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("deleting captions: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("deleting captions: rows affected: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "delete from videos where video_id = $1", videoID); err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("deleting video row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("deleting video: commiting: %w", err)
	}
	return removed, nil
}
