package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/elonfeng/collegeadvisor/pkg/dataset"
)

// ErrEmpty is returned by Fetch when nothing has been imported yet.
var ErrEmpty = errors.New("dataset snapshot is empty")

// Import records one dataset import.
type Import struct {
	ID         int64     `db:"id" json:"id"`
	Source     string    `db:"source" json:"source"`
	Profiles   int       `db:"profiles" json:"profiles"`
	Rows       int       `db:"row_count" json:"rows"`
	ImportedAt time.Time `db:"imported_at" json:"imported_at"`
}

type closingRankRecord struct {
	ID          int64  `db:"id"`
	CollegeCode string `db:"college_code"`
	CollegeName string `db:"college_name"`
	BranchCode  string `db:"branch_code"`
	BranchName  string `db:"branch_name"`
	Cutoffs     string `db:"cutoffs"`
}

// Store is the dataset snapshot interface. A Store is also a dataset source.
type Store interface {
	dataset.Source
	Import(ctx context.Context, source string, docs *dataset.Documents) (*Import, error)
	LastImport(ctx context.Context) (*Import, error)
	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// New opens a SQLite database and runs migrations.
func New(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Name() dataset.SourceType { return dataset.SourceSQLite }

// Import replaces the snapshot with docs. Records without a college code are
// skipped. Duplicate profile codes keep their first position and the last
// record's values, and are counted once.
func (s *SQLiteStore) Import(ctx context.Context, source string, docs *dataset.Documents) (*Import, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM colleges"); err != nil {
		return nil, fmt.Errorf("clear colleges: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM closing_ranks"); err != nil {
		return nil, fmt.Errorf("clear closing ranks: %w", err)
	}

	seen := make(map[string]bool, len(docs.Profiles))
	for i, p := range docs.Profiles {
		code := p.Code()
		if code == "" {
			continue
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO colleges (code, position, name, type, autonomous_status, fees, naac_grade, nirf_rank, location, district, website)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(code) DO UPDATE SET
				name = excluded.name,
				type = excluded.type,
				autonomous_status = excluded.autonomous_status,
				fees = excluded.fees,
				naac_grade = excluded.naac_grade,
				nirf_rank = excluded.nirf_rank,
				location = excluded.location,
				district = excluded.district,
				website = excluded.website
		`, code, i, string(p.Name), string(p.Type), string(p.AutonomousStatus), string(p.Fees),
			string(p.NAACGrade), string(p.NIRFRank), string(p.Location), string(p.District), string(p.Website))
		if err != nil {
			return nil, fmt.Errorf("insert college %s: %w", code, err)
		}
		seen[code] = true
	}
	profiles := len(seen)

	rows := 0
	for _, r := range docs.ClosingRanks {
		code := strings.TrimSpace(r.CollegeCode)
		if code == "" {
			continue
		}
		cutoffs, err := json.Marshal(r.Cutoffs)
		if err != nil {
			return nil, fmt.Errorf("encode cutoffs %s/%s: %w", code, r.BranchName, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO closing_ranks (college_code, college_name, branch_code, branch_name, cutoffs)
			VALUES (?, ?, ?, ?, ?)
		`, code, r.CollegeName, r.BranchCode, r.BranchName, string(cutoffs))
		if err != nil {
			return nil, fmt.Errorf("insert closing rank %s/%s: %w", code, r.BranchName, err)
		}
		rows++
	}

	imp := &Import{Source: source, Profiles: profiles, Rows: rows, ImportedAt: time.Now().UTC()}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO imports (source, profiles, row_count, imported_at) VALUES (?, ?, ?, ?)
	`, imp.Source, imp.Profiles, imp.Rows, imp.ImportedAt)
	if err != nil {
		return nil, fmt.Errorf("record import: %w", err)
	}
	imp.ID, _ = res.LastInsertId()

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}
	return imp, nil
}

// LastImport returns the most recent import, or nil when there is none.
func (s *SQLiteStore) LastImport(ctx context.Context) (*Import, error) {
	var imp Import
	err := s.db.GetContext(ctx, &imp, "SELECT * FROM imports ORDER BY id DESC LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last import: %w", err)
	}
	return &imp, nil
}

// Fetch reads the snapshot back as documents, in import order.
func (s *SQLiteStore) Fetch(ctx context.Context) (*dataset.Documents, error) {
	var docs dataset.Documents
	err := s.db.SelectContext(ctx, &docs.Profiles, `
		SELECT code, name, type, autonomous_status, fees, naac_grade, nirf_rank, location, district, website
		FROM colleges ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("list colleges: %w", err)
	}

	var records []closingRankRecord
	if err := s.db.SelectContext(ctx, &records, "SELECT * FROM closing_ranks ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list closing ranks: %w", err)
	}

	if len(docs.Profiles) == 0 && len(records) == 0 {
		return nil, ErrEmpty
	}

	docs.ClosingRanks = make([]dataset.ClosingRankRow, 0, len(records))
	for _, rec := range records {
		row := dataset.ClosingRankRow{
			CollegeCode: rec.CollegeCode,
			CollegeName: rec.CollegeName,
			BranchCode:  rec.BranchCode,
			BranchName:  rec.BranchName,
		}
		if err := json.Unmarshal([]byte(rec.Cutoffs), &row.Cutoffs); err != nil {
			return nil, fmt.Errorf("decode cutoffs of row %d: %w", rec.ID, err)
		}
		docs.ClosingRanks = append(docs.ClosingRanks, row)
	}
	return &docs, nil
}
