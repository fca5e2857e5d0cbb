package repository

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv (
    key                  TEXT PRIMARY KEY,
    value                TEXT NOT NULL,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS calculations (
    id                   TEXT PRIMARY KEY,
    kind                 TEXT NOT NULL,
    inputs               TEXT NOT NULL,
    result               TEXT NOT NULL,
    created_at           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_calculations_created ON calculations(created_at);
`
