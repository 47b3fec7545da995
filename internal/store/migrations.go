package store

const schema = `
CREATE TABLE IF NOT EXISTS colleges (
    code              TEXT PRIMARY KEY,
    position          INTEGER NOT NULL,
    name              TEXT NOT NULL DEFAULT '',
    type              TEXT NOT NULL DEFAULT '',
    autonomous_status TEXT NOT NULL DEFAULT '',
    fees              TEXT NOT NULL DEFAULT '',
    naac_grade        TEXT NOT NULL DEFAULT '',
    nirf_rank         TEXT NOT NULL DEFAULT '',
    location          TEXT NOT NULL DEFAULT '',
    district          TEXT NOT NULL DEFAULT '',
    website           TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_colleges_position ON colleges(position);

CREATE TABLE IF NOT EXISTS closing_ranks (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    college_code TEXT NOT NULL,
    college_name TEXT NOT NULL DEFAULT '',
    branch_code  TEXT NOT NULL DEFAULT '',
    branch_name  TEXT NOT NULL DEFAULT '',
    cutoffs      TEXT NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS idx_closing_ranks_college ON closing_ranks(college_code);

CREATE TABLE IF NOT EXISTS imports (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    source      TEXT NOT NULL,
    profiles    INTEGER NOT NULL,
    row_count   INTEGER NOT NULL,
    imported_at DATETIME NOT NULL
);
`
