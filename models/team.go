package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Team is a workspace-scoped group of people working in cycles.
type Team struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspaceId"`
	Name        string    `json:"name"`
	Key         string    `json:"key"` // short uppercase code, e.g. "MATH"
	CreatedAt   time.Time `json:"createdAt"`
}

// Cycle is a time-boxed iteration for a team.
type Cycle struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"teamId"`
	Number    int       `json:"number"`
	Name      string    `json:"name"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateTeamRequest is the POST /api/admin/teams payload.
type CreateTeamRequest struct {
	WorkspaceID string `json:"workspaceId"`
	Name        string `json:"name"`
	Key         string `json:"key"`
}

// Validate normalizes and checks the payload.
// Key: 2-6 uppercase letters, the prefix used for issue identifiers.
func (r *CreateTeamRequest) Validate() error {
	if strings.TrimSpace(r.WorkspaceID) == "" {
		return fmt.Errorf("workspaceId is required")
	}

	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 2 || nameLen > 64 {
		return fmt.Errorf("team name must be between 2 and 64 characters")
	}

	r.Key = strings.ToUpper(strings.TrimSpace(r.Key))
	if len(r.Key) < 2 || len(r.Key) > 6 {
		return fmt.Errorf("team key must be between 2 and 6 characters")
	}
	for _, ch := range r.Key {
		if ch < 'A' || ch > 'Z' {
			return fmt.Errorf("team key can only contain letters")
		}
	}

	return nil
}
