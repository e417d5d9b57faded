// Package migrations embeds the schema migrations of every supported store.
package migrations

import "embed"

// FS holds one directory of golang-migrate files per driver.
//
//go:embed postgres sqlite
var FS embed.FS

const (
	PostgresDir = "postgres"
	SQLiteDir   = "sqlite"
)
