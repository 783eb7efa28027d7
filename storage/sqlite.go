package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"otomoto_scrooper/identity"
	"otomoto_scrooper/models"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS export_runs (
		id TEXT PRIMARY KEY,
		brand TEXT,
		pages INTEGER,
		started_at DATETIME,
		finished_at DATETIME,
		status TEXT,
		records INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS listings (
		id INTEGER PRIMARY KEY,
		run_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		fingerprint TEXT,
		image TEXT,
		title TEXT,
		price TEXT,
		currency TEXT,
		tank TEXT,
		power TEXT,
		equipment TEXT,
		mileage TEXT,
		fuel_type TEXT,
		gearbox TEXT,
		production_date TEXT,
		location TEXT,
		FOREIGN KEY (run_id) REFERENCES export_runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_listings_run ON listings(run_id, position);
	CREATE INDEX IF NOT EXISTS idx_listings_fingerprint ON listings(fingerprint);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) CreateRun(run *models.ExportRun) error {
	_, err := s.db.Exec(`
		INSERT INTO export_runs (id, brand, pages, started_at, status, records)
		VALUES (?, ?, ?, ?, ?, 0)`,
		run.ID.String(), run.Brand, run.Pages, run.StartedAt, run.Status)
	return err
}

func (s *SQLiteStore) UpdateRun(run *models.ExportRun) error {
	_, err := s.db.Exec(`
		UPDATE export_runs SET finished_at = ?, status = ?, records = ?
		WHERE id = ?`,
		run.FinishedAt, run.Status, run.Records, run.ID.String())
	return err
}

// GetRun and GetRecords read a finished report file back.
func (s *SQLiteStore) GetRun(id uuid.UUID) (*models.ExportRun, error) {
	row := s.db.QueryRow(`
		SELECT id, brand, pages, started_at, finished_at, status, records
		FROM export_runs WHERE id = ?`, id.String())

	var run models.ExportRun
	var rawID string
	var finished sql.NullTime
	err := row.Scan(&rawID, &run.Brand, &run.Pages, &run.StartedAt, &finished, &run.Status, &run.Records)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	run.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("run id %q: %w", rawID, err)
	}
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	return &run, nil
}

// InsertRecords writes records in order inside one transaction.
func (s *SQLiteStore) InsertRecords(ctx context.Context, runID uuid.UUID, records []models.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO listings (run_id, position, fingerprint, image, title, price, currency, tank, power,
			equipment, mileage, fuel_type, gearbox, production_date, location)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, runID.String(), i, identity.Fingerprint(r),
			r.Image, r.Title, r.Price, r.Currency, r.Tank, r.Power, r.Equipment,
			r.Mileage, r.FuelType, r.Gearbox, r.ProductionDate, r.Location); err != nil {
			return fmt.Errorf("insert listing %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetRecords(runID uuid.UUID) ([]models.Record, error) {
	rows, err := s.db.Query(`
		SELECT image, title, price, currency, tank, power, equipment, mileage, fuel_type,
			gearbox, production_date, location
		FROM listings WHERE run_id = ? ORDER BY position`, runID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var r models.Record
		if err := rows.Scan(&r.Image, &r.Title, &r.Price, &r.Currency, &r.Tank, &r.Power, &r.Equipment,
			&r.Mileage, &r.FuelType, &r.Gearbox, &r.ProductionDate, &r.Location); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) FinishRun(run *models.ExportRun, status models.RunStatus, records int) error {
	now := time.Now()
	run.FinishedAt = &now
	run.Status = status
	run.Records = records
	return s.UpdateRun(run)
}
