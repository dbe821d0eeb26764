package models

import (
	"errors"
	"testing"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want ShipmentStatus
	}{
		{"new", StatusNew},
		{"created", StatusNew},
		{"Accepted", StatusAccepted},
		{"pending", StatusProcessed},
		{"processed", StatusProcessed},
		{"in_transit", StatusInTransit},
		{"in-transit", StatusInTransit},
		{"In Transit", StatusInTransit},
		{"intransit", StatusInTransit},
		{"DELIVERED", StatusDelivered},
		{" cancelled ", StatusCancelled},
	}

	for _, tc := range cases {
		got, err := NormalizeStatus(tc.raw)
		if err != nil {
			t.Errorf("NormalizeStatus(%q) error: %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}

	if _, err := NormalizeStatus("lost"); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestForwardTransitionsAllowed(t *testing.T) {
	cases := [][2]ShipmentStatus{
		{StatusNew, StatusAccepted},
		{StatusAccepted, StatusProcessed},
		{StatusProcessed, StatusInTransit},
		{StatusInTransit, StatusDelivered},
	}

	for _, tc := range cases {
		if err := ValidateTransition(tc[0], tc[1], false); err != nil {
			t.Errorf("expected %s -> %s to be allowed, got %v", tc[0], tc[1], err)
		}
	}
}

func TestCancellationAllowedFromNonTerminalStates(t *testing.T) {
	for _, from := range []ShipmentStatus{StatusNew, StatusAccepted, StatusProcessed, StatusInTransit} {
		if err := ValidateTransition(from, StatusCancelled, false); err != nil {
			t.Errorf("expected %s -> cancelled to be allowed, got %v", from, err)
		}
	}
}

func TestTerminalStatesRejectAllTransitions(t *testing.T) {
	for _, from := range []ShipmentStatus{StatusDelivered, StatusCancelled} {
		err := ValidateTransition(from, StatusNew, false)
		if !errors.Is(err, ErrTerminalState) {
			t.Errorf("expected terminal state error for %s, got %v", from, err)
		}
	}
}

func TestOfficeHopOnlyAllowedIntoTransit(t *testing.T) {
	if err := ValidateTransition(StatusProcessed, StatusInTransit, true); err != nil {
		t.Errorf("expected office hop into in_transit to be allowed, got %v", err)
	}

	err := ValidateTransition(StatusNew, StatusAccepted, true)
	if !errors.Is(err, ErrOfficeHop) {
		t.Errorf("expected office hop error, got %v", err)
	}
}

func TestSkippingStatesRejected(t *testing.T) {
	cases := [][2]ShipmentStatus{
		{StatusNew, StatusProcessed},
		{StatusNew, StatusDelivered},
		{StatusAccepted, StatusInTransit},
		{StatusProcessed, StatusDelivered},
		{StatusInTransit, StatusNew},
	}

	for _, tc := range cases {
		err := ValidateTransition(tc[0], tc[1], false)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("expected invalid transition for %s -> %s, got %v", tc[0], tc[1], err)
		}
	}
}
