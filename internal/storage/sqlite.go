package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

const timeFormat = time.RFC3339

// SQLite is a ledger store backed by a SQLite database. Uniqueness of account
// codes and transaction IDs is enforced by primary-key constraints, and a
// transaction's postings are appended inside one SQL transaction, so readers
// observe whole transactions or nothing.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the ledger database at dbPath,
// enabling foreign keys and WAL mode, and initializes the schema.
func OpenSQLite(dbPath string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", dbPath)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &SQLite{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *SQLite) Path() string {
	return s.path
}

// InsertAccount adds an account, failing if the code is already taken.
func (s *SQLite) InsertAccount(a model.Account) error {
	_, err := s.db.Exec(
		`INSERT INTO accounts (code, name, type, normal_side, retired) VALUES (?, ?, ?, ?, ?)`,
		a.Code, a.Name, string(a.Type), string(a.NormalSide), boolToInt(a.Retired),
	)
	if isUniqueViolation(err) {
		return model.ErrDuplicateAccountCode
	}
	if err != nil {
		return fmt.Errorf("inserting account %s: %w", a.Code, err)
	}
	return nil
}

// GetAccount returns the account with the given code.
func (s *SQLite) GetAccount(code string) (model.Account, error) {
	row := s.db.QueryRow(
		`SELECT code, name, type, normal_side, retired FROM accounts WHERE code = ?`, code,
	)

	var a model.Account
	var typ, side string
	var retired int
	err := row.Scan(&a.Code, &a.Name, &typ, &side, &retired)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, model.ErrAccountNotFound
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("querying account %s: %w", code, err)
	}

	a.Type = model.AccountType(typ)
	a.NormalSide = model.Side(side)
	a.Retired = retired != 0
	return a, nil
}

// UpdateAccount replaces an existing account's attributes.
func (s *SQLite) UpdateAccount(a model.Account) error {
	res, err := s.db.Exec(
		`UPDATE accounts SET name = ?, type = ?, normal_side = ?, retired = ? WHERE code = ?`,
		a.Name, string(a.Type), string(a.NormalSide), boolToInt(a.Retired), a.Code,
	)
	if err != nil {
		return fmt.Errorf("updating account %s: %w", a.Code, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating account %s: %w", a.Code, err)
	}
	if n == 0 {
		return model.ErrAccountNotFound
	}
	return nil
}

// ListAccounts returns all accounts sorted by code.
func (s *SQLite) ListAccounts() ([]model.Account, error) {
	rows, err := s.db.Query(
		`SELECT code, name, type, normal_side, retired FROM accounts ORDER BY code`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		var typ, side string
		var retired int
		if err := rows.Scan(&a.Code, &a.Name, &typ, &side, &retired); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		a.Type = model.AccountType(typ)
		a.NormalSide = model.Side(side)
		a.Retired = retired != 0
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	return accounts, nil
}

// AccountHasPostings reports whether any posting references the account.
func (s *SQLite) AccountHasPostings(code string) (bool, error) {
	row := s.db.QueryRow(`SELECT COUNT(*) FROM postings WHERE account_code = ?`, code)
	var n int
	if err := row.Scan(&n); err != nil {
		return false, fmt.Errorf("counting postings for %s: %w", code, err)
	}
	return n > 0, nil
}

// AppendTransaction commits a transaction and its postings atomically. The
// primary-key insert on the transaction ID is the insert-if-absent check; a
// concurrent duplicate loses with ErrDuplicateTransaction and no postings of
// the losing call become visible.
func (s *SQLite) AppendTransaction(txn model.Transaction, postings []model.Posting) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO transactions (id, reverses, posted_at) VALUES (?, ?, ?)`,
		txn.ID, txn.Reverses, txn.PostedAt.Format(timeFormat),
	)
	if isUniqueViolation(err) {
		return model.ErrDuplicateTransaction
	}
	if err != nil {
		return fmt.Errorf("inserting transaction %s: %w", txn.ID, err)
	}

	for _, p := range postings {
		_, err := tx.Exec(
			`INSERT INTO postings (transaction_id, account_code, side, amount, posted_at, period)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			p.TransactionID, p.AccountCode, string(p.Side), p.Amount.String(),
			p.PostedAt.Format(timeFormat), p.Period.Key(),
		)
		if err != nil {
			return fmt.Errorf("inserting posting for %s: %w", p.AccountCode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction %s: %w", txn.ID, err)
	}
	return nil
}

// ForEachPosting streams postings in commit order, restricted to period when
// it is non-zero.
func (s *SQLite) ForEachPosting(period model.Period, fn func(model.Posting) error) error {
	query := `SELECT transaction_id, account_code, side, amount, posted_at, period FROM postings`
	var args []any
	if !period.IsZero() {
		query += ` WHERE period = ?`
		args = append(args, period.Key())
	}
	query += ` ORDER BY id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return fmt.Errorf("scanning postings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("scanning postings: %w", err)
	}
	return nil
}

func scanPosting(rows *sql.Rows) (model.Posting, error) {
	var p model.Posting
	var side, amount, postedAt, period string
	if err := rows.Scan(&p.TransactionID, &p.AccountCode, &side, &amount, &postedAt, &period); err != nil {
		return model.Posting{}, fmt.Errorf("scanning posting: %w", err)
	}

	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return model.Posting{}, fmt.Errorf("parsing amount %q: %w", amount, err)
	}

	ts, err := time.Parse(timeFormat, postedAt)
	if err != nil {
		return model.Posting{}, fmt.Errorf("parsing posted_at %q: %w", postedAt, err)
	}

	per, err := model.ParsePeriod(period)
	if err != nil {
		return model.Posting{}, fmt.Errorf("parsing period %q: %w", period, err)
	}

	p.Side = model.Side(side)
	p.Amount = amt
	p.PostedAt = ts
	p.Period = per
	return p, nil
}

func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	if !errors.As(err, &serr) {
		return false
	}
	return serr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
