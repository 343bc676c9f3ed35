// Package migrations embeds the schema for each supported database.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

// SQLite returns the sqlite migrations as a flat filesystem.
func SQLite() (fs.FS, error) {
	return fs.Sub(FS, "sqlite")
}

// Postgres returns the postgres migrations as a flat filesystem.
func Postgres() (fs.FS, error) {
	return fs.Sub(FS, "postgres")
}
