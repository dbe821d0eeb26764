package models

import (
	"errors"
	"fmt"
	"strings"
)

// ShipmentStatus is the canonical shipment lifecycle state.
type ShipmentStatus string

const (
	StatusNew       ShipmentStatus = "new"
	StatusAccepted  ShipmentStatus = "accepted"
	StatusProcessed ShipmentStatus = "processed"
	StatusInTransit ShipmentStatus = "in_transit"
	StatusDelivered ShipmentStatus = "delivered"
	StatusCancelled ShipmentStatus = "cancelled"
)

var (
	ErrUnknownStatus     = errors.New("unknown shipment status")
	ErrTerminalState     = errors.New("shipment is in a terminal state")
	ErrOfficeHop         = errors.New("office change is only allowed when moving to in_transit")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// statusAliases maps accepted spellings onto canonical statuses.
var statusAliases = map[string]ShipmentStatus{
	"new":        StatusNew,
	"created":    StatusNew,
	"accepted":   StatusAccepted,
	"processed":  StatusProcessed,
	"pending":    StatusProcessed,
	"in_transit": StatusInTransit,
	"intransit":  StatusInTransit,
	"delivered":  StatusDelivered,
	"cancelled":  StatusCancelled,
}

// NormalizeStatus coerces an arbitrary spelling into a canonical status.
func NormalizeStatus(raw string) (ShipmentStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)

	if s, ok := statusAliases[normalized]; ok {
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
}

// Terminal reports whether no further transitions are allowed.
func (s ShipmentStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// allowed forward progression; cancellation is handled separately.
var forwardTransitions = map[ShipmentStatus]ShipmentStatus{
	StatusNew:       StatusAccepted,
	StatusAccepted:  StatusProcessed,
	StatusProcessed: StatusInTransit,
	StatusInTransit: StatusDelivered,
}

// ValidateTransition checks one status change. Office hops are only allowed
// when the shipment moves to in_transit.
func ValidateTransition(from, to ShipmentStatus, officeChanged bool) error {
	if from.Terminal() {
		return fmt.Errorf("%w: %s", ErrTerminalState, from)
	}
	if officeChanged && to != StatusInTransit {
		return fmt.Errorf("%w: %s -> %s", ErrOfficeHop, from, to)
	}
	if to == StatusCancelled {
		return nil
	}
	if next, ok := forwardTransitions[from]; ok && next == to {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
