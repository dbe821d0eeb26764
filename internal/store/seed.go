package store

import (
	"time"

	"logipack-console/internal/models"
)

// SeedData is the demo dataset every store implementation starts from.
type SeedData struct {
	Offices   []models.Office
	Shipments []models.Shipment
	Timelines map[string][]models.TimelineEvent
	Employees []models.Employee
}

// Fixed seed office identities, stable across resets.
var seedOffices = []models.Office{
	{ID: "c2f4c5c1-2d59-4f05-8e0c-c3ef5f0c1fd3", Name: "Sofia HQ", City: "Sofia", Address: "12 Vitosha Blvd"},
	{ID: "74f26d91-9a2a-4a2d-894e-9e3cf58ea6c7", Name: "Plovdiv DC", City: "Plovdiv", Address: "45 Tsar Boris III Obedinitel Blvd"},
	{ID: "15b3a4f0-50f4-4de8-b9e3-35d88c2c1d46", Name: "Varna Port", City: "Varna", Address: "8 Primorski Blvd"},
	{ID: "9f9a45f8-e2ce-4699-a00f-889b4d6dd1ca", Name: "Burgas Hub", City: "Burgas", Address: "19 Transportna St"},
}

type seedShipment struct {
	id                string
	status            models.ShipmentStatus
	officeIdx         int
	clientID          string
	updatedMinutesAgo int
	createdMinutesAgo int
}

var seedShipments = []seedShipment{
	{"SHP-2104", models.StatusInTransit, 0, "client-acme", 4, 420},
	{"SHP-2103", models.StatusProcessed, 1, "client-techparts", 13, 480},
	{"SHP-2102", models.StatusDelivered, 2, "client-greenline", 22, 560},
	{"SHP-2101", models.StatusAccepted, 3, "client-nova", 38, 610},
	{"SHP-2100", models.StatusNew, 0, "client-acme", 58, 710},
	{"SHP-2099", models.StatusInTransit, 1, "client-techparts", 95, 820},
	{"SHP-2098", models.StatusCancelled, 2, "client-nova", 138, 930},
	{"SHP-2097", models.StatusProcessed, 3, "client-greenline", 185, 1020},
	{"SHP-2096", models.StatusAccepted, 0, "client-acme", 272, 1210},
	{"SHP-2095", models.StatusDelivered, 1, "client-techparts", 360, 1360},
	{"SHP-2094", models.StatusNew, 2, "client-nova", 430, 1480},
	{"SHP-2093", models.StatusInTransit, 3, "client-greenline", 525, 1620},
}

var seedEmployees = []models.Employee{
	{ID: "EMP-1001", UserID: "user-emil-ivanov", FullName: "Emil Ivanov", Email: "emil.ivanov@logipack.dev", OfficeIDs: []string{seedOffices[0].ID}},
	{ID: "EMP-1002", UserID: "user-maria-petrova", FullName: "Maria Petrova", Email: "maria.petrova@logipack.dev", OfficeIDs: []string{seedOffices[1].ID}},
	{ID: "EMP-1003", UserID: "user-georgi-dimitrov", FullName: "Georgi Dimitrov", Email: "georgi.dimitrov@logipack.dev", OfficeIDs: []string{seedOffices[2].ID}},
	{ID: "EMP-1004", UserID: "user-radostina-stoyanova", FullName: "Radostina Stoyanova", Email: "radostina.stoyanova@logipack.dev", OfficeIDs: []string{seedOffices[3].ID}},
}

// Seed materializes the demo dataset with timestamps anchored at now.
func Seed(now time.Time) *SeedData {
	data := &SeedData{
		Timelines: make(map[string][]models.TimelineEvent, len(seedShipments)),
	}

	for _, s := range seedShipments {
		created := now.Add(-time.Duration(s.createdMinutesAgo) * time.Minute)
		updated := now.Add(-time.Duration(s.updatedMinutesAgo) * time.Minute)
		data.Shipments = append(data.Shipments, models.Shipment{
			ID:              s.id,
			ClientID:        s.clientID,
			Status:          s.status,
			CurrentOfficeID: seedOffices[s.officeIdx].ID,
			CreatedAt:       created,
			UpdatedAt:       updated,
		})
		data.Timelines[s.id] = seedTimeline(s.status, created, updated)
	}

	for _, o := range seedOffices {
		o.UpdatedAt = now
		data.Offices = append(data.Offices, o)
	}

	for _, e := range seedEmployees {
		e.CreatedAt = now
		e.UpdatedAt = now
		e.OfficeIDs = append([]string(nil), e.OfficeIDs...)
		data.Employees = append(data.Employees, e)
	}
	return data
}

// seedTimeline reconstructs a plausible event history for the seed status.
func seedTimeline(status models.ShipmentStatus, created, updated time.Time) []models.TimelineEvent {
	chain := []models.ShipmentStatus{models.StatusNew}
	switch status {
	case models.StatusAccepted:
		chain = append(chain, models.StatusAccepted)
	case models.StatusProcessed:
		chain = append(chain, models.StatusAccepted, models.StatusProcessed)
	case models.StatusInTransit:
		chain = append(chain, models.StatusAccepted, models.StatusProcessed, models.StatusInTransit)
	case models.StatusDelivered:
		chain = append(chain, models.StatusAccepted, models.StatusProcessed, models.StatusInTransit, models.StatusDelivered)
	case models.StatusCancelled:
		chain = append(chain, models.StatusCancelled)
	}

	events := []models.TimelineEvent{{Seq: 1, EventType: "shipment_created", CreatedAt: created}}
	step := updated.Sub(created) / time.Duration(len(chain)+1)
	for i, s := range chain {
		events = append(events, models.TimelineEvent{
			Seq:       i + 2,
			EventType: "status_" + string(s),
			CreatedAt: created.Add(time.Duration(i+1) * step),
		})
	}
	return events
}
