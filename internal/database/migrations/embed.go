// Package migrations embeds the SQL schema so the server can apply it with
// the goose programmatic API at startup.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
