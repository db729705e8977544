// Package database embed file — bakes the migration SQL into the binary,
// so a deployed binary needs no migration files next to it.
package database

import "embed"

// EmbeddedMigrations holds the SQL files under migrations/.
// Use fs.Sub(EmbeddedMigrations, "migrations") to reach the subtree.
//
//go:embed migrations/*.sql
var EmbeddedMigrations embed.FS
