// Package model defines domain entities shared by the session store, the API
// client and the views.
package model

// User is the account returned by the backend auth exchange. It lives for
// the session and is persisted between runs.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
}

// CategoryTag is the cosmetic color label assigned to a vehicle card.
// It carries no business meaning.
type CategoryTag string

const (
	CategoryBlue   CategoryTag = "blue"
	CategoryPink   CategoryTag = "pink"
	CategoryPurple CategoryTag = "purple"
	CategoryGreen  CategoryTag = "green"
	CategoryOrange CategoryTag = "orange"
)

// Valid reports whether the tag belongs to the fixed vocabulary.
func (c CategoryTag) Valid() bool {
	switch c {
	case CategoryBlue, CategoryPink, CategoryPurple, CategoryGreen, CategoryOrange:
		return true
	}
	return false
}

// Vehicle is a single vehicle owned by a user. The backend is authoritative;
// the client never derives vehicle state locally.
type Vehicle struct {
	ID           string      `json:"id"`
	UUID         string      `json:"uuid"` // addresses the vehicle's jobs
	UserID       string      `json:"user_id"`
	Make         string      `json:"make"`
	Model        string      `json:"model"`
	Year         int         `json:"year"`
	Color        string      `json:"color"`
	LicensePlate string      `json:"license_plate"`
	LastUpdate   string      `json:"lastUpdate"`
	Category     CategoryTag `json:"category"`
}

// PartType is the work classification of a single part line item.
type PartType string

const (
	PartTypeRepair      PartType = "repair"
	PartTypeMaintenance PartType = "maintenance"
	PartTypeReplacement PartType = "replacement"
	PartTypeInspection  PartType = "inspection"
)

// Valid reports whether the type belongs to the fixed vocabulary.
func (p PartType) Valid() bool {
	switch p {
	case PartTypeRepair, PartTypeMaintenance, PartTypeReplacement, PartTypeInspection:
		return true
	}
	return false
}

// Part is one line item inside a job. ID is nil until persisted.
type Part struct {
	ID           *int64  `json:"id,omitempty"`
	JobID        *int64  `json:"job_id,omitempty"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Cost         float64 `json:"cost"`
	Observations string  `json:"observations"`
}

// Job is a recorded maintenance event. TotalCost is computed server-side
// and treated as opaque; Parts keep insertion order.
type Job struct {
	ID                  *int64   `json:"id,omitempty"`
	Name                string   `json:"name"`
	Date                string   `json:"date"`
	UserID              string   `json:"user_id"`
	LaborCost           float64  `json:"labor_cost"`
	TotalCost           *float64 `json:"total_cost,omitempty"`
	GeneralObservations string   `json:"general_observations"`
	Parts               []Part   `json:"parts"`
}

// PartPayload is a part inside a job write request. ID is set only on
// updates, to let the backend tell part updates from insertions.
type PartPayload struct {
	ID           *int64  `json:"id,omitempty"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Cost         float64 `json:"cost"`
	Observations string  `json:"observations"`
}

// JobCreateRequest is the body of POST /jobs. Parts carry no identifiers.
type JobCreateRequest struct {
	Name                string        `json:"name"`
	Date                string        `json:"date"`
	UserID              string        `json:"userId"`
	LaborCost           float64       `json:"laborCost"`
	GeneralObservations string        `json:"generalObservations"`
	Parts               []PartPayload `json:"parts"`
}

// JobUpdateRequest is the body of PUT /jobs/{id}.
type JobUpdateRequest struct {
	ID                  int64         `json:"id"`
	Name                string        `json:"name"`
	Date                string        `json:"date"`
	UserID              string        `json:"userId"`
	LaborCost           float64       `json:"laborCost"`
	GeneralObservations string        `json:"generalObservations"`
	Parts               []PartPayload `json:"parts"`
}

// VehiclePayload is the body of POST /vehicles and PUT /vehicles/{id}.
type VehiclePayload struct {
	UserID       string      `json:"user_id"`
	Make         string      `json:"make"`
	Model        string      `json:"model"`
	Year         int         `json:"year"`
	Color        string      `json:"color"`
	LicensePlate string      `json:"license_plate"`
	Category     CategoryTag `json:"category"`
}
