// Package pkg holds project-wide shared utilities.
// This file defines the domain-level error taxonomy.
//
// Errors are sentinel values compared with errors.Is, so wrapped errors
// still match:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
//
// The service layer returns these; the handler layer maps them to HTTP
// status codes in response.go.
package pkg

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
)
