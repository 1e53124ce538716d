// Package migrations embeds the SQL migration files for the sqlite
// content store.
package migrations

import "embed"

// FS contains the *.up.sql migration files.
//
//go:embed *.sql
var FS embed.FS
