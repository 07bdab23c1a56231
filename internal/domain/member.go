package domain

import (
	"time"

	"github.com/google/uuid"
)

// Member is a person on a team roster. Members author work-log updates and
// are the row labels of the aggregated project report.
type Member struct {
	ID        uuid.UUID `json:"id"`
	TeamID    uuid.UUID `json:"team_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MemberRef is a reference to a member that may or may not be resolved to the
// full record. The API historically returned author fields as either a bare
// id or an embedded object; modeling the union as a tagged variant keeps
// callers from doing runtime type checks.
type MemberRef struct {
	id       uuid.UUID
	resolved *Member
}

// UnresolvedMember returns a reference carrying only the member id.
func UnresolvedMember(id uuid.UUID) MemberRef {
	return MemberRef{id: id}
}

// ResolvedMember returns a reference carrying the full member record.
func ResolvedMember(m Member) MemberRef {
	return MemberRef{id: m.ID, resolved: &m}
}

// ID returns the member id, available in both variants.
func (r MemberRef) ID() uuid.UUID {
	return r.id
}

// Member returns the full record and true if the reference is resolved.
func (r MemberRef) Member() (Member, bool) {
	if r.resolved == nil {
		return Member{}, false
	}
	return *r.resolved, true
}
