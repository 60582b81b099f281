// ABOUTME: SQLite schema for the run ledger
// ABOUTME: One row per pipeline run, updated in place as the run advances
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    input_key TEXT NOT NULL,
    output_key TEXT NOT NULL,
    bucket TEXT NOT NULL DEFAULT '',
    species TEXT NOT NULL DEFAULT '',
    state TEXT NOT NULL,
    error_category TEXT NOT NULL DEFAULT '',
    error_message TEXT NOT NULL DEFAULT '',
    started_at TEXT NOT NULL,
    finished_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
CREATE INDEX IF NOT EXISTS idx_runs_state ON runs(state);
`

// SchemaVersion is stored in PRAGMA user_version; newer databases are refused
const SchemaVersion = 1
