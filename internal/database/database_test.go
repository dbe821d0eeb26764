package database

import (
	"path/filepath"
	"testing"

	"logipack-console/internal/models"
)

func openTestDB(t *testing.T) {
	t.Helper()
	if err := Open(Config{Path: filepath.Join(t.TempDir(), "console.db")}); err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { Close() })
}

func TestSeedAndReset(t *testing.T) {
	openTestDB(t)
	st := Stores()

	if got := len(st.Shipments.List()); got != 12 {
		t.Fatalf("seed shipments = %d, want 12", got)
	}
	if got := len(st.Offices.List()); got != 4 {
		t.Fatalf("seed offices = %d, want 4", got)
	}
	if got := len(st.Employees.List()); got != 4 {
		t.Fatalf("seed employees = %d, want 4", got)
	}

	if _, err := st.Shipments.Create(models.CreateShipmentInput{ClientID: "client-extra"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	st.Shipments.Reset()
	if got := len(st.Shipments.List()); got != 12 {
		t.Fatalf("shipments after reset = %d, want 12", got)
	}
}

func TestShipmentTransitions(t *testing.T) {
	openTestDB(t)
	st := Stores()

	s, err := st.Shipments.Create(models.CreateShipmentInput{ClientID: "client-test", Notes: "fragile"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if s.Status != models.StatusNew {
		t.Fatalf("status = %q, want new", s.Status)
	}

	s, err = st.Shipments.ChangeStatus(s.ID, models.ChangeStatusInput{ToStatus: "accepted"})
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if s.Status != models.StatusAccepted {
		t.Fatalf("status = %q, want accepted", s.Status)
	}

	if _, err := st.Shipments.ChangeStatus(s.ID, models.ChangeStatusInput{ToStatus: "delivered"}); err == nil {
		t.Fatal("expected skipping states to fail")
	}

	events, err := st.Shipments.Timeline(s.ID)
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if len(events) != 3 || events[2].EventType != "status_accepted" {
		t.Fatalf("unexpected timeline: %+v", events)
	}
	if events[0].Notes != "fragile" {
		t.Fatalf("created notes = %q", events[0].Notes)
	}
}

func TestOfficeDeleteGuard(t *testing.T) {
	openTestDB(t)
	st := Stores()

	// Sofia HQ still holds moving shipments.
	if err := st.Offices.Delete("c2f4c5c1-2d59-4f05-8e0c-c3ef5f0c1fd3"); err == nil {
		t.Fatal("expected delete of busy office to fail")
	}

	o, err := st.Offices.Create(models.OfficeInput{Name: "Ruse Depot", City: "Ruse", Address: "3 Pristanishtna St"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := st.Offices.Delete(o.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestEmployeeOfficeAssignments(t *testing.T) {
	openTestDB(t)
	st := Stores()

	e, err := st.Employees.Create(models.CreateEmployeeInput{FullName: "Ivan Kolev", Email: "Ivan.Kolev@logipack.dev"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.Email != "ivan.kolev@logipack.dev" {
		t.Fatalf("email not normalized: %q", e.Email)
	}

	officeID := "74f26d91-9a2a-4a2d-894e-9e3cf58ea6c7"
	e, err = st.Employees.AssignOffice(e.ID, officeID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	// Assigning twice is idempotent.
	e, err = st.Employees.AssignOffice(e.ID, officeID)
	if err != nil {
		t.Fatalf("assign again: %v", err)
	}
	if len(e.OfficeIDs) != 1 {
		t.Fatalf("office ids = %v", e.OfficeIDs)
	}

	e, err = st.Employees.RemoveOffice(e.ID, officeID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(e.OfficeIDs) != 0 {
		t.Fatalf("office ids = %v", e.OfficeIDs)
	}

	if _, err := st.Employees.Create(models.CreateEmployeeInput{FullName: "Dup", Email: "ivan.kolev@logipack.dev"}); err == nil {
		t.Fatal("expected duplicate email to fail")
	}
}
