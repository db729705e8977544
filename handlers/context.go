// Package handlers holds the HTTP layer: request parsing, response
// shaping, nothing else. Business rules live in services.
package handlers

// contextKey is a private type for context values.
//
// Why not a plain string? context.WithValue keys are compared by type
// AND value; a private type makes collisions with other packages
// impossible.
type contextKey string

// UserIDContextKey carries the authenticated user's ID, set by the auth
// middleware. Only the ID travels in the context — handlers that need
// the full profile load it themselves. The authenticated hot path stays
// free of database reads.
const UserIDContextKey contextKey = "userID"

// RoleContextKey carries the caller's workspace role, set by the role
// middleware on role-gated routes.
const RoleContextKey contextKey = "workspaceRole"
