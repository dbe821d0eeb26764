package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"logipack-console/internal/models"
)

// Memory is an in-process implementation of the three stores, seeded with
// demo data. It is reset on restart and on Reset().
type Memory struct {
	mu        sync.Mutex
	shipments map[string]models.Shipment
	timelines map[string][]models.TimelineEvent
	offices   map[string]models.Office
	employees map[string]models.Employee
	events    *Notifier
}

// NewMemory builds a seeded in-memory store set.
func NewMemory() *Memory {
	m := &Memory{events: NewNotifier()}
	m.seed()
	return m
}

// Stores exposes the memory store behind the injected interfaces.
func (m *Memory) Stores() *Stores {
	return &Stores{
		Shipments: (*memoryShipments)(m),
		Offices:   (*memoryOffices)(m),
		Employees: (*memoryEmployees)(m),
	}
}

func (m *Memory) seed() {
	data := Seed(time.Now().UTC())

	m.shipments = make(map[string]models.Shipment, len(data.Shipments))
	for _, s := range data.Shipments {
		m.shipments[s.ID] = s
	}
	m.timelines = make(map[string][]models.TimelineEvent, len(data.Timelines))
	for id, events := range data.Timelines {
		m.timelines[id] = append([]models.TimelineEvent(nil), events...)
	}
	m.offices = make(map[string]models.Office, len(data.Offices))
	for _, o := range data.Offices {
		m.offices[o.ID] = o
	}
	m.employees = make(map[string]models.Employee, len(data.Employees))
	for _, e := range data.Employees {
		m.employees[e.ID] = e
	}
}

type memoryShipments Memory

func (m *memoryShipments) List() []models.Shipment {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Shipment, 0, len(m.shipments))
	for _, s := range m.shipments {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out
}

func (m *memoryShipments) Get(id string) (*models.Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.shipments[id]
	if !ok {
		return nil, fmt.Errorf("shipment %s: %w", id, ErrNotFound)
	}
	return &s, nil
}

func (m *memoryShipments) Create(in models.CreateShipmentInput) (*models.Shipment, error) {
	if strings.TrimSpace(in.ClientID) == "" {
		return nil, fmt.Errorf("client_id is required: %w", ErrValidation)
	}

	m.mu.Lock()
	if in.CurrentOfficeID != "" {
		if _, ok := m.offices[in.CurrentOfficeID]; !ok {
			m.mu.Unlock()
			return nil, fmt.Errorf("office %s: %w", in.CurrentOfficeID, ErrNotFound)
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
	m.shipments[s.ID] = s
	m.timelines[s.ID] = []models.TimelineEvent{
		{Seq: 1, EventType: "shipment_created", Notes: s.Notes, CreatedAt: now},
		{Seq: 2, EventType: "status_new", CreatedAt: now},
	}
	m.mu.Unlock()

	m.events.Publish(ShipmentEvent{ShipmentID: s.ID, EventType: "shipment_created", Status: s.Status, At: now})
	return &s, nil
}

func (m *memoryShipments) ChangeStatus(id string, in models.ChangeStatusInput) (*models.Shipment, error) {
	to, err := models.NormalizeStatus(in.ToStatus)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	s, ok := m.shipments[id]
	if !ok {
		m.mu.Unlock()
		return nil, fmt.Errorf("shipment %s: %w", id, ErrNotFound)
	}

	officeChanged := in.ToOfficeID != "" && in.ToOfficeID != s.CurrentOfficeID
	if officeChanged {
		if _, ok := m.offices[in.ToOfficeID]; !ok {
			m.mu.Unlock()
			return nil, fmt.Errorf("office %s: %w", in.ToOfficeID, ErrNotFound)
		}
	}

	if err := models.ValidateTransition(s.Status, to, officeChanged); err != nil {
		m.mu.Unlock()
		return nil, err
	}

	now := time.Now().UTC()
	s.Status = to
	if in.ToOfficeID != "" {
		s.CurrentOfficeID = in.ToOfficeID
	}
	s.UpdatedAt = now
	m.shipments[id] = s

	events := m.timelines[id]
	m.timelines[id] = append(events, models.TimelineEvent{
		Seq:       len(events) + 1,
		EventType: "status_" + string(to),
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
	})
	m.mu.Unlock()

	m.events.Publish(ShipmentEvent{ShipmentID: id, EventType: "status_" + string(to), Status: to, At: now})
	return &s, nil
}

func (m *memoryShipments) Timeline(id string) ([]models.TimelineEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	events, ok := m.timelines[id]
	if !ok {
		return nil, fmt.Errorf("shipment %s: %w", id, ErrNotFound)
	}
	return append([]models.TimelineEvent(nil), events...), nil
}

func (m *memoryShipments) Subscribe() (<-chan ShipmentEvent, func()) {
	return m.events.Subscribe()
}

func (m *memoryShipments) Reset() { (*Memory)(m).reset() }

type memoryOffices Memory

func (m *memoryOffices) List() []models.Office {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Office, 0, len(m.offices))
	for _, o := range m.offices {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (m *memoryOffices) Get(id string) (*models.Office, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.offices[id]
	if !ok {
		return nil, fmt.Errorf("office %s: %w", id, ErrNotFound)
	}
	return &o, nil
}

func (m *memoryOffices) Create(in models.OfficeInput) (*models.Office, error) {
	if err := validateOfficeInput(in); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	o := models.Office{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		City:      strings.TrimSpace(in.City),
		Address:   strings.TrimSpace(in.Address),
		UpdatedAt: time.Now().UTC(),
	}
	m.offices[o.ID] = o
	return &o, nil
}

func (m *memoryOffices) Update(id string, in models.OfficeInput) (*models.Office, error) {
	if err := validateOfficeInput(in); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.offices[id]
	if !ok {
		return nil, fmt.Errorf("office %s: %w", id, ErrNotFound)
	}
	o.Name = strings.TrimSpace(in.Name)
	o.City = strings.TrimSpace(in.City)
	o.Address = strings.TrimSpace(in.Address)
	o.UpdatedAt = time.Now().UTC()
	m.offices[id] = o
	return &o, nil
}

func (m *memoryOffices) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.offices[id]; !ok {
		return fmt.Errorf("office %s: %w", id, ErrNotFound)
	}
	for _, s := range m.shipments {
		if s.CurrentOfficeID == id && !s.Status.Terminal() {
			return fmt.Errorf("office %s still holds active shipments: %w", id, ErrValidation)
		}
	}
	delete(m.offices, id)
	return nil
}

func (m *memoryOffices) Reset() { (*Memory)(m).reset() }

func validateOfficeInput(in models.OfficeInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.City) == "" || strings.TrimSpace(in.Address) == "" {
		return fmt.Errorf("name, city and address are required: %w", ErrValidation)
	}
	return nil
}

type memoryEmployees Memory

func (m *memoryEmployees) List() []models.Employee {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryEmployees) Get(id string) (*models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.employees[id]
	if !ok {
		return nil, fmt.Errorf("employee %s: %w", id, ErrNotFound)
	}
	return &e, nil
}

func (m *memoryEmployees) Create(in models.CreateEmployeeInput) (*models.Employee, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.FullName)
	if email == "" || !strings.Contains(email, "@") || name == "" {
		return nil, fmt.Errorf("full_name and a valid email are required: %w", ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.employees {
		if e.Email == email {
			return nil, fmt.Errorf("email %s already assigned: %w", email, ErrValidation)
		}
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
	m.employees[e.ID] = e
	return &e, nil
}

func (m *memoryEmployees) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.employees[id]; !ok {
		return fmt.Errorf("employee %s: %w", id, ErrNotFound)
	}
	delete(m.employees, id)
	return nil
}

func (m *memoryEmployees) AssignOffice(id, officeID string) (*models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.employees[id]
	if !ok {
		return nil, fmt.Errorf("employee %s: %w", id, ErrNotFound)
	}
	if _, ok := m.offices[officeID]; !ok {
		return nil, fmt.Errorf("office %s: %w", officeID, ErrNotFound)
	}
	for _, existing := range e.OfficeIDs {
		if existing == officeID {
			return &e, nil
		}
	}
	e.OfficeIDs = append(append([]string(nil), e.OfficeIDs...), officeID)
	e.UpdatedAt = time.Now().UTC()
	m.employees[id] = e
	return &e, nil
}

func (m *memoryEmployees) RemoveOffice(id, officeID string) (*models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.employees[id]
	if !ok {
		return nil, fmt.Errorf("employee %s: %w", id, ErrNotFound)
	}

	kept := make([]string, 0, len(e.OfficeIDs))
	for _, existing := range e.OfficeIDs {
		if existing != officeID {
			kept = append(kept, existing)
		}
	}
	e.OfficeIDs = kept
	e.UpdatedAt = time.Now().UTC()
	m.employees[id] = e
	return &e, nil
}

func (m *memoryEmployees) Reset() { (*Memory)(m).reset() }

func (m *Memory) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seed()
}
