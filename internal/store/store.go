// Package store defines the console data layer as injected interfaces with
// explicit reset semantics, with an in-memory seeded implementation for
// development and a sqlite-backed one in internal/database.
package store

import (
	"errors"
	"sync"
	"time"

	"logipack-console/internal/models"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("invalid input")
)

// ShipmentEvent is broadcast whenever a shipment is created or transitions.
type ShipmentEvent struct {
	ShipmentID string                `json:"shipment_id"`
	EventType  string                `json:"event_type"`
	Status     models.ShipmentStatus `json:"status"`
	At         time.Time             `json:"at"`
}

// ShipmentStore manages shipments and their status history.
type ShipmentStore interface {
	List() []models.Shipment
	Get(id string) (*models.Shipment, error)
	Create(in models.CreateShipmentInput) (*models.Shipment, error)
	ChangeStatus(id string, in models.ChangeStatusInput) (*models.Shipment, error)
	Timeline(id string) ([]models.TimelineEvent, error)

	// Subscribe registers a listener for shipment events. The returned
	// function cancels the subscription.
	Subscribe() (<-chan ShipmentEvent, func())

	// Reset restores the store to its seed state.
	Reset()
}

// OfficeStore manages logistics offices.
type OfficeStore interface {
	List() []models.Office
	Get(id string) (*models.Office, error)
	Create(in models.OfficeInput) (*models.Office, error)
	Update(id string, in models.OfficeInput) (*models.Office, error)
	Delete(id string) error
	Reset()
}

// EmployeeStore manages console operators and their office assignments.
type EmployeeStore interface {
	List() []models.Employee
	Get(id string) (*models.Employee, error)
	Create(in models.CreateEmployeeInput) (*models.Employee, error)
	Delete(id string) error
	AssignOffice(id, officeID string) (*models.Employee, error)
	RemoveOffice(id, officeID string) (*models.Employee, error)
	Reset()
}

// Stores bundles the three store interfaces for wiring.
type Stores struct {
	Shipments ShipmentStore
	Offices   OfficeStore
	Employees EmployeeStore
}

// Notifier fans shipment events out to subscribers. Sends never block; a
// slow subscriber just misses events.
type Notifier struct {
	mu   sync.Mutex
	subs map[int]chan ShipmentEvent
	next int
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan ShipmentEvent)}
}

func (n *Notifier) Subscribe() (<-chan ShipmentEvent, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	ch := make(chan ShipmentEvent, 16)
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (n *Notifier) Publish(ev ShipmentEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
