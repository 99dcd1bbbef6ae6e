package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Open creates the parent directory, opens the SQLite database at path with
// the pragmas the app relies on, and runs migrations.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open with DSN options for SQLite pragmas
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Initialize opens the database at path and installs it as DB.
func Initialize(path string) error {
	db, err := Open(path)
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// RunMigrations creates all necessary tables
func RunMigrations(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL DEFAULT '',
		skills TEXT NOT NULL DEFAULT '[]',
		location TEXT NOT NULL DEFAULT '',
		experience_years INTEGER NOT NULL DEFAULT 0,
		bio TEXT NOT NULL DEFAULT '',
		preferred_job_types TEXT NOT NULL DEFAULT '[]',
		salary_expectation TEXT NOT NULL DEFAULT '',
		verified BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		CHECK(experience_years >= 0)
	);

	CREATE TABLE IF NOT EXISTS postings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		company TEXT NOT NULL DEFAULT '',
		skills_required TEXT NOT NULL DEFAULT '[]',
		location TEXT NOT NULL DEFAULT '',
		experience_level TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		job_type TEXT NOT NULL DEFAULT '',
		salary_range TEXT NOT NULL DEFAULT '',
		employer_verified BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS skill_assessments (
		id TEXT PRIMARY KEY,
		profile_id INTEGER,
		category TEXT NOT NULL,
		question_index INTEGER NOT NULL,
		score INTEGER NOT NULL,
		max_score INTEGER NOT NULL,
		keywords_found INTEGER NOT NULL DEFAULT 0,
		total_keywords INTEGER NOT NULL DEFAULT 0,
		feedback TEXT NOT NULL DEFAULT '',
		completed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (profile_id) REFERENCES profiles(id) ON DELETE CASCADE,
		CHECK(score >= 0 AND score <= max_score)
	);

	CREATE INDEX IF NOT EXISTS idx_postings_company ON postings(company);
	CREATE INDEX IF NOT EXISTS idx_assessments_profile ON skill_assessments(profile_id);
	CREATE INDEX IF NOT EXISTS idx_assessments_category ON skill_assessments(category);
	`

	_, err := db.Exec(schema)
	return err
}
