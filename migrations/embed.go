// Package migrations holds the SQL schema, embedded at compile time.
package migrations

import "embed"

// FS contains all SQL migration files at its root.
//
//go:embed *.sql
var FS embed.FS
