package storage

// Schema defines the SQL statements to create the ledger tables.
// Amounts are stored as exact decimal strings, never floats, so the
// balance invariant survives a round trip through storage.
const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
    code TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    normal_side TEXT NOT NULL,
    retired INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS transactions (
    id TEXT PRIMARY KEY,
    reverses TEXT NOT NULL DEFAULT '',
    posted_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS postings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    transaction_id TEXT NOT NULL REFERENCES transactions(id),
    account_code TEXT NOT NULL REFERENCES accounts(code),
    side TEXT NOT NULL,
    amount TEXT NOT NULL,
    posted_at TEXT NOT NULL,
    period TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_postings_period ON postings(period);
CREATE INDEX IF NOT EXISTS idx_postings_account ON postings(account_code);
`
