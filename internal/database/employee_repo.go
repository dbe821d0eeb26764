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

// EmployeeRepo handles employee database operations
type EmployeeRepo struct{}

func (r *EmployeeRepo) List() []models.Employee {
	rows, err := DB.Query(`SELECT id, user_id, full_name, email, created_at, updated_at FROM employees ORDER BY id`)
	if err != nil {
		log.Printf("database: list employees: %v", err)
		return nil
	}
	defer rows.Close()

	var out []models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.UserID, &e.FullName, &e.Email, &e.CreatedAt, &e.UpdatedAt); err != nil {
			log.Printf("database: scan employee: %v", err)
			return out
		}
		out = append(out, e)
	}
	for i := range out {
		ids, err := officeIDs(out[i].ID)
		if err != nil {
			log.Printf("database: employee offices: %v", err)
			return out
		}
		out[i].OfficeIDs = ids
	}
	return out
}

func (r *EmployeeRepo) Get(id string) (*models.Employee, error) {
	e := &models.Employee{}
	err := DB.QueryRow(`SELECT id, user_id, full_name, email, created_at, updated_at FROM employees WHERE id = ?`, id).
		Scan(&e.ID, &e.UserID, &e.FullName, &e.Email, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("employee %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	e.OfficeIDs, err = officeIDs(id)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *EmployeeRepo) Create(in models.CreateEmployeeInput) (*models.Employee, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.FullName)
	if email == "" || !strings.Contains(email, "@") || name == "" {
		return nil, fmt.Errorf("full_name and a valid email are required: %w", store.ErrValidation)
	}

	var count int
	if err := DB.QueryRow("SELECT COUNT(*) FROM employees WHERE email = ?", email).Scan(&count); err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("email %s already assigned: %w", email, store.ErrValidation)
	}

	now := time.Now().UTC()
	e := models.Employee{
		ID:        "EMP-" + uuid.NewString()[:8],
		UserID:    "user-" + uuid.NewString()[:8],
		FullName:  name,
		Email:     email,
		OfficeIDs: []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := DB.Exec(`
		INSERT INTO employees (id, user_id, full_name, email, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.UserID, e.FullName, e.Email, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepo) Delete(id string) error {
	res, err := DB.Exec(`DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("employee %s: %w", id, store.ErrNotFound)
	}
	return nil
}

func (r *EmployeeRepo) AssignOffice(id, officeID string) (*models.Employee, error) {
	if _, err := r.Get(id); err != nil {
		return nil, err
	}
	var count int
	if err := DB.QueryRow("SELECT COUNT(*) FROM offices WHERE id = ?", officeID).Scan(&count); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("office %s: %w", officeID, store.ErrNotFound)
	}

	_, err := DB.Exec(`INSERT OR IGNORE INTO employee_offices (employee_id, office_id) VALUES (?, ?)`, id, officeID)
	if err != nil {
		return nil, err
	}
	if err := touchEmployee(id); err != nil {
		return nil, err
	}
	return r.Get(id)
}

func (r *EmployeeRepo) RemoveOffice(id, officeID string) (*models.Employee, error) {
	if _, err := r.Get(id); err != nil {
		return nil, err
	}

	_, err := DB.Exec(`DELETE FROM employee_offices WHERE employee_id = ? AND office_id = ?`, id, officeID)
	if err != nil {
		return nil, err
	}
	if err := touchEmployee(id); err != nil {
		return nil, err
	}
	return r.Get(id)
}

func (r *EmployeeRepo) Reset() {
	if err := reseed(); err != nil {
		log.Printf("database: reset: %v", err)
	}
}

func officeIDs(employeeID string) ([]string, error) {
	rows, err := DB.Query(`SELECT office_id FROM employee_offices WHERE employee_id = ? ORDER BY office_id`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func touchEmployee(id string) error {
	_, err := DB.Exec(`UPDATE employees SET updated_at = ? WHERE id = ?`, time.Now().UTC(), id)
	return err
}
