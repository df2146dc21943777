// Package assets embeds the default film catalog and the SQLite schema.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed films.json sql/*.sql
var FS embed.FS

// DefaultFilms returns the raw JSON of the bundled film catalog.
func DefaultFilms() ([]byte, error) {
	return FS.ReadFile("films.json")
}

// Migrations returns the SQL migration files rooted at "sql".
func Migrations() (fs.FS, error) {
	return fs.Sub(FS, "sql")
}
