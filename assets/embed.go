// assets/embed.go
//
// Embedded data shipped with the server binary:
//   - content.json: every question, puzzle and word list the games read.
//   - sql/*.sql:    schema migrations applied at startup.

package assets

import (
	"embed"
	"io/fs"
)

//go:embed content.json sql/*.sql
var FS embed.FS

// Content returns the raw embedded content document.
func Content() ([]byte, error) {
	return FS.ReadFile("content.json")
}

// Migrations returns the embedded sql directory rooted at its files.
func Migrations() (fs.FS, error) {
	return fs.Sub(FS, "sql")
}
