package store

import (
	"errors"
	"testing"
	"time"

	"logipack-console/internal/models"
)

func TestMemorySeedData(t *testing.T) {
	st := NewMemory().Stores()

	if got := len(st.Shipments.List()); got != len(seedShipments) {
		t.Errorf("seeded %d shipments, want %d", got, len(seedShipments))
	}
	if got := len(st.Offices.List()); got != len(seedOffices) {
		t.Errorf("seeded %d offices, want %d", got, len(seedOffices))
	}
	if got := len(st.Employees.List()); got != len(seedEmployees) {
		t.Errorf("seeded %d employees, want %d", got, len(seedEmployees))
	}

	s, err := st.Shipments.Get("SHP-2104")
	if err != nil {
		t.Fatalf("Get seed shipment: %v", err)
	}
	if s.Status != models.StatusInTransit {
		t.Errorf("SHP-2104 status = %s, want in_transit", s.Status)
	}

	events, err := st.Shipments.Timeline("SHP-2104")
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	if len(events) == 0 || events[0].EventType != "shipment_created" {
		t.Errorf("unexpected seed timeline: %+v", events)
	}
}

func TestMemoryCreateAndTransitionShipment(t *testing.T) {
	st := NewMemory().Stores()
	offices := st.Offices.List()

	s, err := st.Shipments.Create(models.CreateShipmentInput{
		ClientID:        "client-acme",
		CurrentOfficeID: offices[0].ID,
		Notes:           "fragile",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.Status != models.StatusNew {
		t.Errorf("new shipment status = %s, want new", s.Status)
	}

	s, err = st.Shipments.ChangeStatus(s.ID, models.ChangeStatusInput{ToStatus: "accepted"})
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if s.Status != models.StatusAccepted {
		t.Errorf("status = %s, want accepted", s.Status)
	}

	// Skipping a state must be rejected.
	if _, err := st.Shipments.ChangeStatus(s.ID, models.ChangeStatusInput{ToStatus: "delivered"}); !errors.Is(err, models.ErrInvalidTransition) {
		t.Errorf("expected invalid transition, got %v", err)
	}

	// Office hop is only legal when moving into transit.
	if _, err := st.Shipments.ChangeStatus(s.ID, models.ChangeStatusInput{ToStatus: "processed", ToOfficeID: offices[1].ID}); !errors.Is(err, models.ErrOfficeHop) {
		t.Errorf("expected office hop error, got %v", err)
	}

	if _, err := st.Shipments.ChangeStatus(s.ID, models.ChangeStatusInput{ToStatus: "processed"}); err != nil {
		t.Fatalf("processed: %v", err)
	}
	s, err = st.Shipments.ChangeStatus(s.ID, models.ChangeStatusInput{ToStatus: "in_transit", ToOfficeID: offices[1].ID})
	if err != nil {
		t.Fatalf("in_transit with office hop: %v", err)
	}
	if s.CurrentOfficeID != offices[1].ID {
		t.Errorf("office not updated on hop: %s", s.CurrentOfficeID)
	}

	events, err := st.Shipments.Timeline(s.ID)
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	want := []string{"shipment_created", "status_new", "status_accepted", "status_processed", "status_in_transit"}
	if len(events) != len(want) {
		t.Fatalf("timeline has %d events, want %d: %+v", len(events), len(want), events)
	}
	for i, ev := range events {
		if ev.EventType != want[i] {
			t.Errorf("event %d = %s, want %s", i, ev.EventType, want[i])
		}
		if ev.Seq != i+1 {
			t.Errorf("event %d seq = %d, want %d", i, ev.Seq, i+1)
		}
	}
}

func TestMemoryStatusAliasAccepted(t *testing.T) {
	st := NewMemory().Stores()

	s, _ := st.Shipments.Create(models.CreateShipmentInput{ClientID: "client-acme"})
	if _, err := st.Shipments.ChangeStatus(s.ID, models.ChangeStatusInput{ToStatus: "Accepted"}); err != nil {
		t.Fatalf("alias status: %v", err)
	}
	if _, err := st.Shipments.ChangeStatus(s.ID, models.ChangeStatusInput{ToStatus: "pending"}); err != nil {
		t.Fatalf("pending alias for processed: %v", err)
	}
}

func TestMemorySubscribeReceivesEvents(t *testing.T) {
	st := NewMemory().Stores()

	ch, cancel := st.Shipments.Subscribe()
	defer cancel()

	s, err := st.Shipments.Create(models.CreateShipmentInput{ClientID: "client-acme"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	select {
	case ev := <-ch:
		if ev.ShipmentID != s.ID || ev.EventType != "shipment_created" {
			t.Errorf("unexpected event: %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}

	cancel()
	if _, ok := <-ch; ok {
		t.Error("expected channel closed after cancel")
	}
}

func TestMemoryResetRestoresSeed(t *testing.T) {
	st := NewMemory().Stores()

	if _, err := st.Shipments.Create(models.CreateShipmentInput{ClientID: "client-x"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := st.Offices.Create(models.OfficeInput{Name: "Ruse Depot", City: "Ruse", Address: "3 Pristanishtna St"}); err != nil {
		t.Fatalf("Create office: %v", err)
	}

	st.Shipments.Reset()

	if got := len(st.Shipments.List()); got != len(seedShipments) {
		t.Errorf("after reset %d shipments, want %d", got, len(seedShipments))
	}
	if got := len(st.Offices.List()); got != len(seedOffices) {
		t.Errorf("after reset %d offices, want %d", got, len(seedOffices))
	}
}

func TestMemoryOfficeLifecycle(t *testing.T) {
	st := NewMemory().Stores()

	o, err := st.Offices.Create(models.OfficeInput{Name: "Ruse Depot", City: "Ruse", Address: "3 Pristanishtna St"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	o, err = st.Offices.Update(o.ID, models.OfficeInput{Name: "Ruse Depot", City: "Ruse", Address: "5 Pristanishtna St"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if o.Address != "5 Pristanishtna St" {
		t.Errorf("address not updated: %s", o.Address)
	}

	if err := st.Offices.Delete(o.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Offices.Get(o.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}

	// Seed offices hold active shipments and must refuse deletion.
	if err := st.Offices.Delete(seedOffices[0].ID); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error deleting busy office, got %v", err)
	}

	if _, err := st.Offices.Create(models.OfficeInput{Name: "", City: "Ruse", Address: "x"}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestMemoryEmployeeLifecycle(t *testing.T) {
	st := NewMemory().Stores()
	offices := st.Offices.List()

	e, err := st.Employees.Create(models.CreateEmployeeInput{FullName: "Ivan Kolev", Email: "ivan.kolev@logipack.dev"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := st.Employees.Create(models.CreateEmployeeInput{FullName: "Dup", Email: "ivan.kolev@logipack.dev"}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected duplicate email rejection, got %v", err)
	}

	e, err = st.Employees.AssignOffice(e.ID, offices[0].ID)
	if err != nil {
		t.Fatalf("AssignOffice: %v", err)
	}
	if len(e.OfficeIDs) != 1 || e.OfficeIDs[0] != offices[0].ID {
		t.Errorf("unexpected office assignment: %v", e.OfficeIDs)
	}

	// Assigning twice is idempotent.
	e, _ = st.Employees.AssignOffice(e.ID, offices[0].ID)
	if len(e.OfficeIDs) != 1 {
		t.Errorf("assignment not idempotent: %v", e.OfficeIDs)
	}

	e, err = st.Employees.RemoveOffice(e.ID, offices[0].ID)
	if err != nil {
		t.Fatalf("RemoveOffice: %v", err)
	}
	if len(e.OfficeIDs) != 0 {
		t.Errorf("office not removed: %v", e.OfficeIDs)
	}

	if err := st.Employees.Delete(e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Employees.Get(e.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
