package handler

import (
	"net/http"
	"time"

	"github.com/sitecrew/sitelog/internal/domain"
)

// TeamRequest is the JSON body for creating or renaming a team.
type TeamRequest struct {
	Name string `json:"name"`
}

// TeamResponse is the JSON shape of a team.
type TeamResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// MemberRequest is the JSON body for adding a roster member.
type MemberRequest struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// MemberResponse is the JSON shape of a roster member.
type MemberResponse struct {
	ID     string `json:"id"`
	TeamID string `json:"team_id"`
	Name   string `json:"name"`
	Role   string `json:"role,omitempty"`
}

// CreateTeam handles POST /teams.
func (s *Server) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var body TeamRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body is required"))
		return
	}

	created, err := s.teams.Create(r.Context(), domain.Team{Name: body.Name})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, teamToResponse(created))
}

// ListTeams handles GET /teams.
func (s *Server) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.teams.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	data := make([]TeamResponse, len(teams))
	for i, t := range teams {
		data[i] = teamToResponse(t)
	}
	writeJSON(w, http.StatusOK, data)
}

// GetTeam handles GET /teams/{teamID}.
func (s *Server) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "teamID")
	if !ok {
		writeError(w, domain.ErrNotFound)
		return
	}

	team, err := s.teams.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, teamToResponse(team))
}

// UpdateTeam handles PUT /teams/{teamID}.
func (s *Server) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "teamID")
	if !ok {
		writeError(w, domain.ErrNotFound)
		return
	}

	var body TeamRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body is required"))
		return
	}

	updated, err := s.teams.Update(r.Context(), domain.Team{ID: id, Name: body.Name})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, teamToResponse(updated))
}

// DeleteTeam handles DELETE /teams/{teamID}.
func (s *Server) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "teamID")
	if !ok {
		writeError(w, domain.ErrNotFound)
		return
	}

	if err := s.teams.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddMember handles POST /teams/{teamID}/members.
func (s *Server) AddMember(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathUUID(r, "teamID")
	if !ok {
		writeError(w, domain.ErrNotFound)
		return
	}

	var body MemberRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body is required"))
		return
	}

	member, err := s.teams.AddMember(r.Context(), domain.Member{TeamID: teamID, Name: body.Name, Role: body.Role})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, memberToResponse(member))
}

// ListMembers handles GET /teams/{teamID}/members.
func (s *Server) ListMembers(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathUUID(r, "teamID")
	if !ok {
		writeError(w, domain.ErrNotFound)
		return
	}

	members, err := s.teams.ListMembers(r.Context(), teamID)
	if err != nil {
		writeError(w, err)
		return
	}

	data := make([]MemberResponse, len(members))
	for i, m := range members {
		data[i] = memberToResponse(m)
	}
	writeJSON(w, http.StatusOK, data)
}

// RemoveMember handles DELETE /teams/{teamID}/members/{memberID}.
func (s *Server) RemoveMember(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathUUID(r, "teamID")
	if !ok {
		writeError(w, domain.ErrNotFound)
		return
	}
	memberID, ok := pathUUID(r, "memberID")
	if !ok {
		writeError(w, domain.ErrNotFound)
		return
	}

	if err := s.teams.RemoveMember(r.Context(), teamID, memberID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// teamToResponse converts a domain.Team into its wire shape.
func teamToResponse(t domain.Team) TeamResponse {
	return TeamResponse{ID: t.ID.String(), Name: t.Name, CreatedAt: t.CreatedAt}
}

// memberToResponse converts a domain.Member into its wire shape.
func memberToResponse(m domain.Member) MemberResponse {
	return MemberResponse{ID: m.ID.String(), TeamID: m.TeamID.String(), Name: m.Name, Role: m.Role}
}
