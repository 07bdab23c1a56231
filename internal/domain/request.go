package domain

import (
	"time"

	"github.com/google/uuid"
)

// RequestType classifies what a site request asks for.
type RequestType string

const (
	RequestMaterial  RequestType = "material"
	RequestEquipment RequestType = "equipment"
	RequestLeave     RequestType = "leave"
)

// Valid reports whether t is one of the known request types.
func (t RequestType) Valid() bool {
	return t == RequestMaterial || t == RequestEquipment || t == RequestLeave
}

// RequestStatus is the review state of a request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// Request is a site request (materials, equipment, leave) raised against a
// project. Requests start pending and are approved or rejected exactly once.
type Request struct {
	ID          uuid.UUID     `json:"id"`
	ProjectID   uuid.UUID     `json:"project_id"`
	RequesterID uuid.UUID     `json:"requester_id"`
	Type        RequestType   `json:"type"`
	Status      RequestStatus `json:"status"`
	Description string        `json:"description,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
