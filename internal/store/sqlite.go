package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/mercadoscope/mercadoscope/internal/analysis"
)

// Status is the record lifecycle: every row starts as processing and ends as
// completed or failed.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

var ErrNotFound = errors.New("analysis not found")

// Record is one persisted analysis: the request snapshot plus, once
// completed, the document sections.
type Record struct {
	ID        int64
	Request   analysis.Request
	Document  *analysis.Document
	Degraded  bool
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary is the list-view projection of a record.
type Summary struct {
	ID        int64     `json:"id"`
	Niche     string    `json:"nicho"`
	Product   string    `json:"produto"`
	Price     *float64  `json:"preco,omitempty"`
	Status    Status    `json:"status"`
	Degraded  bool      `json:"degraded"`
	CreatedAt time.Time `json:"created_at"`
}

// SQLiteStore persists analysis records to SQLite. Document sections are
// stored as one JSON column each so partial reads and per-section migrations
// stay cheap.
type SQLiteStore struct {
	db *sqlx.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id                       INTEGER PRIMARY KEY AUTOINCREMENT,
	niche                    TEXT NOT NULL,
	product                  TEXT NOT NULL DEFAULT '',
	description              TEXT NOT NULL DEFAULT '',
	price                    REAL,
	audience                 TEXT NOT NULL DEFAULT '',
	competitors              TEXT NOT NULL DEFAULT '',
	competitor_names         TEXT NOT NULL DEFAULT '[]',
	additional_data          TEXT NOT NULL DEFAULT '',
	revenue_goal             REAL,
	launch_timeline          TEXT NOT NULL DEFAULT '',
	marketing_budget         REAL,
	avatar_data              TEXT,
	positioning_data         TEXT,
	competition_data         TEXT,
	marketing_data           TEXT,
	metrics_data             TEXT,
	funnel_data              TEXT,
	market_intelligence_data TEXT,
	action_plan_data         TEXT,
	risk_analysis_data       TEXT,
	degraded                 INTEGER NOT NULL DEFAULT 0,
	status                   TEXT NOT NULL DEFAULT 'processing',
	created_at               TEXT NOT NULL,
	updated_at               TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analyses_niche ON analyses(niche);
CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
`

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Create inserts a processing row for the request and returns its id.
func (s *SQLiteStore) Create(ctx context.Context, req analysis.Request) (int64, error) {
	now := timeToString(time.Now())
	res, err := s.db.ExecContext(ctx, `INSERT INTO analyses
		(niche, product, description, price, audience, competitors, competitor_names,
		 additional_data, revenue_goal, launch_timeline, marketing_budget,
		 status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.Niche,
		req.Product,
		req.Description,
		nullableFloat(req.Price),
		req.Audience,
		req.Competitors,
		marshalJSON(req.CompetitorNames),
		req.AdditionalData,
		nullableFloat(req.RevenueGoal),
		req.LaunchTimeline,
		nullableFloat(req.MarketingBudget),
		string(StatusProcessing),
		now,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert analysis: %w", err)
	}
	return res.LastInsertId()
}

// Complete stores the document sections and flips the row to completed.
func (s *SQLiteStore) Complete(ctx context.Context, id int64, doc analysis.Document) error {
	res, err := s.db.ExecContext(ctx, `UPDATE analyses SET
		avatar_data = ?, positioning_data = ?, competition_data = ?,
		marketing_data = ?, metrics_data = ?, funnel_data = ?,
		market_intelligence_data = ?, action_plan_data = ?, risk_analysis_data = ?,
		degraded = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		marshalJSON(doc.Avatar),
		marshalJSON(doc.Positioning),
		marshalJSON(doc.Competition),
		marshalJSON(doc.Marketing),
		marshalJSON(doc.Metrics),
		marshalJSON(doc.Funnel),
		marshalJSON(doc.MarketIntelligence),
		marshalJSON(doc.ActionPlan),
		marshalJSON(doc.RiskAnalysis),
		boolToInt(doc.Degraded),
		string(StatusCompleted),
		timeToString(time.Now()),
		id,
	)
	if err != nil {
		return fmt.Errorf("complete analysis %d: %w", id, err)
	}
	return requireRow(res)
}

// Fail marks the row failed without touching any stored sections.
func (s *SQLiteStore) Fail(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE analyses SET status = ?, updated_at = ? WHERE id = ?`,
		string(StatusFailed), timeToString(time.Now()), id)
	if err != nil {
		return fmt.Errorf("fail analysis %d: %w", id, err)
	}
	return requireRow(res)
}

func (s *SQLiteStore) Get(ctx context.Context, id int64) (Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, niche, product, description, price, audience,
		competitors, competitor_names, additional_data, revenue_goal, launch_timeline, marketing_budget,
		avatar_data, positioning_data, competition_data, marketing_data, metrics_data,
		funnel_data, market_intelligence_data, action_plan_data, risk_analysis_data,
		degraded, status, created_at, updated_at
		FROM analyses WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

// ListFilter narrows List. Zero values mean no constraint; Limit defaults
// to 50.
type ListFilter struct {
	Niche string
	Since time.Time
	Limit int
}

func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]Summary, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, niche, product, price, status, degraded, created_at FROM analyses WHERE 1=1`
	args := []any{}
	if filter.Niche != "" {
		query += ` AND niche = ?`
		args = append(args, filter.Niche)
	}
	if !filter.Since.IsZero() {
		query += ` AND created_at >= ?`
		args = append(args, timeToString(filter.Since))
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sm Summary
		var price sql.NullFloat64
		var degraded int
		var createdAt string
		if err := rows.Scan(&sm.ID, &sm.Niche, &sm.Product, &price, &sm.Status, &degraded, &createdAt); err != nil {
			return nil, err
		}
		if price.Valid {
			sm.Price = &price.Float64
		}
		sm.Degraded = degraded != 0
		sm.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, sm)
	}
	return out, rows.Err()
}

// Niches returns the distinct niches analyzed so far, alphabetically.
func (s *SQLiteStore) Niches(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT niche FROM analyses ORDER BY niche`)
	if err != nil {
		return nil, fmt.Errorf("list niches: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// NicheCount aggregates volume and average ticket per niche.
type NicheCount struct {
	Niche    string   `json:"nicho"`
	Count    int      `json:"total"`
	AvgPrice *float64 `json:"ticket_medio,omitempty"`
}

// Performance aggregates completed analyses created on or after since.
func (s *SQLiteStore) Performance(ctx context.Context, since time.Time, topN int) (total int, top []NicheCount, err error) {
	if topN <= 0 {
		topN = 5
	}
	cutoff := timeToString(since)
	if err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM analyses WHERE created_at >= ?`, cutoff).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("count analyses: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT niche, COUNT(*) AS n, AVG(price)
		FROM analyses WHERE created_at >= ?
		GROUP BY niche ORDER BY n DESC, niche LIMIT ?`, cutoff, topN)
	if err != nil {
		return 0, nil, fmt.Errorf("aggregate niches: %w", err)
	}
	defer rows.Close()

	top = []NicheCount{}
	for rows.Next() {
		var nc NicheCount
		var avg sql.NullFloat64
		if err := rows.Scan(&nc.Niche, &nc.Count, &avg); err != nil {
			return 0, nil, err
		}
		if avg.Valid {
			nc.AvgPrice = &avg.Float64
		}
		top = append(top, nc)
	}
	return total, top, rows.Err()
}

func scanRecord(row *sql.Row) (Record, error) {
	var (
		rec      Record
		price    sql.NullFloat64
		revenue  sql.NullFloat64
		budget   sql.NullFloat64
		names    string
		sections [9]sql.NullString
		degraded int
		status   string
		created  string
		updated  string
	)
	err := row.Scan(&rec.ID, &rec.Request.Niche, &rec.Request.Product, &rec.Request.Description,
		&price, &rec.Request.Audience, &rec.Request.Competitors, &names,
		&rec.Request.AdditionalData, &revenue, &rec.Request.LaunchTimeline, &budget,
		&sections[0], &sections[1], &sections[2], &sections[3], &sections[4],
		&sections[5], &sections[6], &sections[7], &sections[8],
		&degraded, &status, &created, &updated)
	if err != nil {
		return Record{}, err
	}
	if price.Valid {
		rec.Request.Price = &price.Float64
	}
	if revenue.Valid {
		rec.Request.RevenueGoal = &revenue.Float64
	}
	if budget.Valid {
		rec.Request.MarketingBudget = &budget.Float64
	}
	_ = json.Unmarshal([]byte(names), &rec.Request.CompetitorNames)
	rec.Degraded = degraded != 0
	rec.Status = Status(status)
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)

	if rec.Status == StatusCompleted {
		doc := analysis.Document{Degraded: rec.Degraded}
		targets := []any{
			&doc.Avatar, &doc.Positioning, &doc.Competition, &doc.Marketing, &doc.Metrics,
			&doc.Funnel, &doc.MarketIntelligence, &doc.ActionPlan, &doc.RiskAnalysis,
		}
		for i, col := range sections {
			if col.Valid && col.String != "" {
				_ = json.Unmarshal([]byte(col.String), targets[i])
			}
		}
		rec.Document = &doc
	}
	return rec, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func timeToString(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func marshalJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

func nullableFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
