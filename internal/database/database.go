// Package database is the sqlite-backed implementation of the console
// stores, selected with CONSOLE_STORE=sqlite. Data survives restarts;
// Reset() still returns it to the seed state.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"logipack-console/internal/store"
)

// DB is the global database connection
var DB *sql.DB

// events fans shipment changes out to feed subscribers.
var events = store.NewNotifier()

// Config holds database configuration
type Config struct {
	Path string
}

// Open initializes the database connection, runs migrations and seeds an
// empty database with the demo dataset.
func Open(cfg Config) error {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	var err error
	DB, err = sql.Open("sqlite", cfg.Path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	var shipments int
	if err := DB.QueryRow("SELECT COUNT(*) FROM shipments").Scan(&shipments); err != nil {
		return err
	}
	if shipments == 0 {
		if err := reseed(); err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
	}
	return nil
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// Stores exposes the sqlite repositories behind the store interfaces.
func Stores() *store.Stores {
	return &store.Stores{
		Shipments: &ShipmentRepo{},
		Offices:   &OfficeRepo{},
		Employees: &EmployeeRepo{},
	}
}

// migrate runs all database migrations
func migrate() error {
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if err := runMigration(m); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.name, err)
		}
	}
	return nil
}

type migration struct {
	name string
	up   string
}

func runMigration(m migration) error {
	var count int
	err := DB.QueryRow("SELECT COUNT(*) FROM migrations WHERE name = ?", m.name).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Already applied
	}

	if _, err := DB.Exec(m.up); err != nil {
		return err
	}

	_, err = DB.Exec("INSERT INTO migrations (name) VALUES (?)", m.name)
	return err
}

var migrations = []migration{
	{
		name: "001_create_offices",
		up: `
			CREATE TABLE offices (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				city TEXT NOT NULL,
				address TEXT NOT NULL,
				updated_at DATETIME NOT NULL
			);
			CREATE INDEX idx_offices_city ON offices(city);
		`,
	},
	{
		name: "002_create_shipments",
		up: `
			CREATE TABLE shipments (
				id TEXT PRIMARY KEY,
				client_id TEXT NOT NULL,
				status TEXT NOT NULL,
				current_office_id TEXT NOT NULL DEFAULT '',
				notes TEXT NOT NULL DEFAULT '',
				created_at DATETIME NOT NULL,
				updated_at DATETIME NOT NULL
			);
			CREATE INDEX idx_shipments_status ON shipments(status);
			CREATE INDEX idx_shipments_office ON shipments(current_office_id);
		`,
	},
	{
		name: "003_create_shipment_events",
		up: `
			CREATE TABLE shipment_events (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				shipment_id TEXT NOT NULL,
				seq INTEGER NOT NULL,
				event_type TEXT NOT NULL,
				notes TEXT NOT NULL DEFAULT '',
				created_at DATETIME NOT NULL,
				UNIQUE (shipment_id, seq),
				FOREIGN KEY (shipment_id) REFERENCES shipments(id) ON DELETE CASCADE
			);
			CREATE INDEX idx_shipment_events_shipment ON shipment_events(shipment_id);
		`,
	},
	{
		name: "004_create_employees",
		up: `
			CREATE TABLE employees (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				full_name TEXT NOT NULL,
				email TEXT NOT NULL UNIQUE,
				created_at DATETIME NOT NULL,
				updated_at DATETIME NOT NULL
			);
			CREATE TABLE employee_offices (
				employee_id TEXT NOT NULL,
				office_id TEXT NOT NULL,
				PRIMARY KEY (employee_id, office_id),
				FOREIGN KEY (employee_id) REFERENCES employees(id) ON DELETE CASCADE,
				FOREIGN KEY (office_id) REFERENCES offices(id) ON DELETE CASCADE
			);
		`,
	},
}

// reseed wipes every table and reloads the demo dataset.
func reseed() error {
	tx, err := DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"employee_offices", "employees", "shipment_events", "shipments", "offices"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	data := store.Seed(time.Now().UTC())
	for _, o := range data.Offices {
		_, err := tx.Exec(`INSERT INTO offices (id, name, city, address, updated_at) VALUES (?, ?, ?, ?, ?)`,
			o.ID, o.Name, o.City, o.Address, o.UpdatedAt)
		if err != nil {
			return err
		}
	}
	for _, s := range data.Shipments {
		_, err := tx.Exec(`
			INSERT INTO shipments (id, client_id, status, current_office_id, notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, s.ID, s.ClientID, string(s.Status), s.CurrentOfficeID, s.Notes, s.CreatedAt, s.UpdatedAt)
		if err != nil {
			return err
		}
		for _, ev := range data.Timelines[s.ID] {
			_, err := tx.Exec(`
				INSERT INTO shipment_events (shipment_id, seq, event_type, notes, created_at)
				VALUES (?, ?, ?, ?, ?)
			`, s.ID, ev.Seq, ev.EventType, ev.Notes, ev.CreatedAt)
			if err != nil {
				return err
			}
		}
	}
	for _, e := range data.Employees {
		_, err := tx.Exec(`
			INSERT INTO employees (id, user_id, full_name, email, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, e.ID, e.UserID, e.FullName, e.Email, e.CreatedAt, e.UpdatedAt)
		if err != nil {
			return err
		}
		for _, officeID := range e.OfficeIDs {
			if _, err := tx.Exec(`INSERT INTO employee_offices (employee_id, office_id) VALUES (?, ?)`, e.ID, officeID); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
