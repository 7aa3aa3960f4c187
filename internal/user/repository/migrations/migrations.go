package migrations

import "embed"

// FS holds the goose migrations for the users store.
//
//go:embed *.sql
var FS embed.FS
