package sqlite

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	dir         TEXT NOT NULL,
	started_at  TEXT NOT NULL,
	finished_at TEXT NOT NULL DEFAULT '',
	files       INTEGER NOT NULL DEFAULT 0,
	variants    INTEGER NOT NULL DEFAULT 0,
	status      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_dir_started ON runs (dir, started_at);

CREATE TABLE IF NOT EXISTS entries (
	run_id    TEXT NOT NULL REFERENCES runs (id),
	seq       INTEGER NOT NULL,
	type_name TEXT NOT NULL,
	variant   TEXT NOT NULL DEFAULT '',
	template  TEXT NOT NULL,
	rewritten TEXT NOT NULL,
	fields    TEXT NOT NULL DEFAULT '[]',
	hash      TEXT NOT NULL,
	output    TEXT NOT NULL,
	PRIMARY KEY (run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_entries_variant ON entries (type_name, variant);
`
