package captions

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// OpenDB opens (or creates) the captions database and applies the schema.
// dsn is a go-sqlite3 DSN, e.g. "file:./captions.db" or ":memory:".
func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening captions db: %w", err)
	}

	_, err = db.Exec(`
	PRAGMA busy_timeout       = 10000;
	PRAGMA journal_mode       = WAL;
	PRAGMA journal_size_limit = 200000000;
	PRAGMA synchronous        = NORMAL;
	PRAGMA foreign_keys       = ON;
	PRAGMA temp_store         = MEMORY;
	PRAGMA cache_size         = -16000;

	create table if not exists videos (
		video_id        text primary key not null,
		title           text not null,
		channel_name    text not null,
		transcript_hash text not null,
		collected_at    timestamp default current_timestamp
	);

	create table if not exists captions (
		id           integer primary key autoincrement not null,
		video_id     text not null,
		title        text,
		channel_name text,
		speaker      text,
		text         text not null,
		start_time   integer not null,
		end_time     integer not null,
		duration     text not null,
		language     text default 'unknown',
		created_at   timestamp default current_timestamp,
		unique(video_id, start_time)
	);

	create index if not exists idx_captions_speaker  on captions(speaker);
	create index if not exists idx_captions_text     on captions(text);
	create index if not exists idx_captions_video_id on captions(video_id);
	create index if not exists idx_captions_language on captions(language);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("applying captions schema: %w", err)
	}

	return db, nil
}
