package domain

import (
	"time"

	"github.com/google/uuid"
)

// Team is a named group of members that can be assigned to projects.
// Teams are global; a team may serve several projects over time.
type Team struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
