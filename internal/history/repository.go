package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/scamradar/scamradar/internal/scoring"
)

const dbFileName = "scamradar.db"

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id TEXT PRIMARY KEY,
	description TEXT NOT NULL,
	is_scam INTEGER NOT NULL,
	confidence REAL NOT NULL,
	risk_level TEXT NOT NULL,
	reasons TEXT NOT NULL,
	indicators_found INTEGER NOT NULL,
	total_words INTEGER NOT NULL,
	ml_confidence REAL NOT NULL,
	rule_confidence REAL NOT NULL,
	confidence_source TEXT NOT NULL,
	client_ip TEXT,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
`

// Repository persists analyses in sqlite. It is append-only from the
// request path; reads happen at startup (Restore) and for totals.
type Repository struct {
	db *sql.DB
}

// NewRepository opens (or creates) the sqlite database under dataDir
// with the WAL pragmas the service runs with everywhere.
func NewRepository(dataDir string) (*Repository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)
	connStr := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close closes the underlying database.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Insert appends one analysis record.
func (r *Repository) Insert(e Entry) error {
	reasons, err := json.Marshal(e.Result.Reasons)
	if err != nil {
		return fmt.Errorf("failed to encode reasons: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO analyses (
			id, description, is_scam, confidence, risk_level, reasons,
			indicators_found, total_words, ml_confidence, rule_confidence,
			confidence_source, client_ip, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.ID, e.Description, e.Result.IsScam, e.Result.Confidence,
		string(e.Result.RiskLevel), string(reasons),
		e.Result.ScamIndicatorsFound, e.Result.TotalWords,
		e.Result.MLConfidence, e.Result.RuleBasedConfidence,
		string(e.Result.ConfidenceSource), e.ClientIP, e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}
	return nil
}

// RecentEntries returns the newest n records, oldest first.
func (r *Repository) RecentEntries(n int) ([]Entry, error) {
	rows, err := r.db.Query(`
		SELECT id, description, is_scam, confidence, risk_level, reasons,
			indicators_found, total_words, ml_confidence, rule_confidence,
			confidence_source, client_ip, created_at
		FROM analyses
		ORDER BY created_at DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e           Entry
			reasonsJSON string
			riskLevel   string
			source      string
			clientIP    sql.NullString
		)
		err := rows.Scan(
			&e.ID, &e.Description, &e.Result.IsScam, &e.Result.Confidence,
			&riskLevel, &reasonsJSON,
			&e.Result.ScamIndicatorsFound, &e.Result.TotalWords,
			&e.Result.MLConfidence, &e.Result.RuleBasedConfidence,
			&source, &clientIP, &e.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}

		e.Result.RiskLevel = scoring.RiskLevel(riskLevel)
		e.Result.ConfidenceSource = scoring.ConfidenceSource(source)
		e.ClientIP = clientIP.String
		if err := json.Unmarshal([]byte(reasonsJSON), &e.Result.Reasons); err != nil {
			return nil, fmt.Errorf("failed to decode reasons: %w", err)
		}

		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read analyses: %w", err)
	}

	// Newest-first from the query; the ring wants oldest-first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Count returns the all-time number of persisted analyses.
func (r *Repository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM analyses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}
	return n, nil
}

// PoolStats exposes connection pool statistics for the health endpoint.
func (r *Repository) PoolStats() map[string]interface{} {
	stats := r.db.Stats()
	return map[string]interface{}{
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
		"wait_count":       stats.WaitCount,
		"wait_duration_ms": stats.WaitDuration.Milliseconds(),
	}
}
