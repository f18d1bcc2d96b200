// Package migrations embeds the goose SQL migrations for the PostgreSQL
// storage backend. The composition root applies them at startup.
package migrations

import "embed"

// FS holds the embedded migration files.
//
//go:embed *.sql
var FS embed.FS
