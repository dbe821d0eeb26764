package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"logipack-console/internal/models"
	"logipack-console/internal/store"
)

// ShipmentRepo handles shipment database operations
type ShipmentRepo struct{}

func (r *ShipmentRepo) List() []models.Shipment {
	rows, err := DB.Query(`
		SELECT id, client_id, status, current_office_id, notes, created_at, updated_at
		FROM shipments ORDER BY updated_at DESC
	`)
	if err != nil {
		log.Printf("database: list shipments: %v", err)
		return nil
	}
	defer rows.Close()

	var out []models.Shipment
	for rows.Next() {
		var s models.Shipment
		if err := rows.Scan(&s.ID, &s.ClientID, &s.Status, &s.CurrentOfficeID, &s.Notes, &s.CreatedAt, &s.UpdatedAt); err != nil {
			log.Printf("database: scan shipment: %v", err)
			return out
		}
		out = append(out, s)
	}
	return out
}

func (r *ShipmentRepo) Get(id string) (*models.Shipment, error) {
	return getShipment(DB, id)
}

type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

func getShipment(q querier, id string) (*models.Shipment, error) {
	s := &models.Shipment{}
	err := q.QueryRow(`
		SELECT id, client_id, status, current_office_id, notes, created_at, updated_at
		FROM shipments WHERE id = ?
	`, id).Scan(&s.ID, &s.ClientID, &s.Status, &s.CurrentOfficeID, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("shipment %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *ShipmentRepo) Create(in models.CreateShipmentInput) (*models.Shipment, error) {
	if strings.TrimSpace(in.ClientID) == "" {
		return nil, fmt.Errorf("client_id is required: %w", store.ErrValidation)
	}
	if in.CurrentOfficeID != "" {
		var count int
		if err := DB.QueryRow("SELECT COUNT(*) FROM offices WHERE id = ?", in.CurrentOfficeID).Scan(&count); err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, fmt.Errorf("office %s: %w", in.CurrentOfficeID, store.ErrNotFound)
		}
	}

	now := time.Now().UTC()
	s := models.Shipment{
		ID:              "SHP-" + uuid.NewString()[:8],
		ClientID:        strings.TrimSpace(in.ClientID),
		Status:          models.StatusNew,
		CurrentOfficeID: in.CurrentOfficeID,
		Notes:           strings.TrimSpace(in.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	tx, err := DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO shipments (id, client_id, status, current_office_id, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.ClientID, string(s.Status), s.CurrentOfficeID, s.Notes, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	for seq, eventType := range []string{"shipment_created", "status_new"} {
		notes := ""
		if eventType == "shipment_created" {
			notes = s.Notes
		}
		_, err = tx.Exec(`
			INSERT INTO shipment_events (shipment_id, seq, event_type, notes, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, s.ID, seq+1, eventType, notes, now)
		if err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	events.Publish(store.ShipmentEvent{ShipmentID: s.ID, EventType: "shipment_created", Status: s.Status, At: now})
	return &s, nil
}

func (r *ShipmentRepo) ChangeStatus(id string, in models.ChangeStatusInput) (*models.Shipment, error) {
	to, err := models.NormalizeStatus(in.ToStatus)
	if err != nil {
		return nil, err
	}

	tx, err := DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	s, err := getShipment(tx, id)
	if err != nil {
		return nil, err
	}

	officeChanged := in.ToOfficeID != "" && in.ToOfficeID != s.CurrentOfficeID
	if officeChanged {
		var count int
		if err := tx.QueryRow("SELECT COUNT(*) FROM offices WHERE id = ?", in.ToOfficeID).Scan(&count); err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, fmt.Errorf("office %s: %w", in.ToOfficeID, store.ErrNotFound)
		}
	}

	if err := models.ValidateTransition(s.Status, to, officeChanged); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	s.Status = to
	if in.ToOfficeID != "" {
		s.CurrentOfficeID = in.ToOfficeID
	}
	s.UpdatedAt = now

	_, err = tx.Exec(`
		UPDATE shipments SET status = ?, current_office_id = ?, updated_at = ? WHERE id = ?
	`, string(s.Status), s.CurrentOfficeID, s.UpdatedAt, id)
	if err != nil {
		return nil, err
	}

	var lastSeq int
	if err := tx.QueryRow("SELECT COALESCE(MAX(seq), 0) FROM shipment_events WHERE shipment_id = ?", id).Scan(&lastSeq); err != nil {
		return nil, err
	}
	_, err = tx.Exec(`
		INSERT INTO shipment_events (shipment_id, seq, event_type, notes, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, lastSeq+1, "status_"+string(to), strings.TrimSpace(in.Notes), now)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	events.Publish(store.ShipmentEvent{ShipmentID: id, EventType: "status_" + string(to), Status: to, At: now})
	return s, nil
}

func (r *ShipmentRepo) Timeline(id string) ([]models.TimelineEvent, error) {
	if _, err := getShipment(DB, id); err != nil {
		return nil, err
	}

	rows, err := DB.Query(`
		SELECT seq, event_type, notes, created_at
		FROM shipment_events WHERE shipment_id = ? ORDER BY seq
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TimelineEvent
	for rows.Next() {
		var ev models.TimelineEvent
		if err := rows.Scan(&ev.Seq, &ev.EventType, &ev.Notes, &ev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (r *ShipmentRepo) Subscribe() (<-chan store.ShipmentEvent, func()) {
	return events.Subscribe()
}

func (r *ShipmentRepo) Reset() {
	if err := reseed(); err != nil {
		log.Printf("database: reset: %v", err)
	}
}
