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

// OfficeRepo handles office database operations
type OfficeRepo struct{}

func (r *OfficeRepo) List() []models.Office {
	rows, err := DB.Query(`SELECT id, name, city, address, updated_at FROM offices ORDER BY name`)
	if err != nil {
		log.Printf("database: list offices: %v", err)
		return nil
	}
	defer rows.Close()

	var out []models.Office
	for rows.Next() {
		var o models.Office
		if err := rows.Scan(&o.ID, &o.Name, &o.City, &o.Address, &o.UpdatedAt); err != nil {
			log.Printf("database: scan office: %v", err)
			return out
		}
		out = append(out, o)
	}
	return out
}

func (r *OfficeRepo) Get(id string) (*models.Office, error) {
	o := &models.Office{}
	err := DB.QueryRow(`SELECT id, name, city, address, updated_at FROM offices WHERE id = ?`, id).
		Scan(&o.ID, &o.Name, &o.City, &o.Address, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("office %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OfficeRepo) Create(in models.OfficeInput) (*models.Office, error) {
	if err := validateOfficeInput(in); err != nil {
		return nil, err
	}

	o := models.Office{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		City:      strings.TrimSpace(in.City),
		Address:   strings.TrimSpace(in.Address),
		UpdatedAt: time.Now().UTC(),
	}
	_, err := DB.Exec(`INSERT INTO offices (id, name, city, address, updated_at) VALUES (?, ?, ?, ?, ?)`,
		o.ID, o.Name, o.City, o.Address, o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OfficeRepo) Update(id string, in models.OfficeInput) (*models.Office, error) {
	if err := validateOfficeInput(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res, err := DB.Exec(`UPDATE offices SET name = ?, city = ?, address = ?, updated_at = ? WHERE id = ?`,
		strings.TrimSpace(in.Name), strings.TrimSpace(in.City), strings.TrimSpace(in.Address), now, id)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("office %s: %w", id, store.ErrNotFound)
	}
	return r.Get(id)
}

func (r *OfficeRepo) Delete(id string) error {
	if _, err := r.Get(id); err != nil {
		return err
	}

	var active int
	err := DB.QueryRow(`
		SELECT COUNT(*) FROM shipments
		WHERE current_office_id = ? AND status NOT IN ('delivered', 'cancelled')
	`, id).Scan(&active)
	if err != nil {
		return err
	}
	if active > 0 {
		return fmt.Errorf("office %s still holds active shipments: %w", id, store.ErrValidation)
	}

	_, err = DB.Exec(`DELETE FROM offices WHERE id = ?`, id)
	return err
}

func (r *OfficeRepo) Reset() {
	if err := reseed(); err != nil {
		log.Printf("database: reset: %v", err)
	}
}

func validateOfficeInput(in models.OfficeInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.City) == "" || strings.TrimSpace(in.Address) == "" {
		return fmt.Errorf("name, city and address are required: %w", store.ErrValidation)
	}
	return nil
}
