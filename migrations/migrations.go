package migrations

import "embed"

// FS holds postgres schema migrations in golang-migrate naming format
//
//go:embed *.sql
var FS embed.FS
