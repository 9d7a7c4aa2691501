// assets/embed.go
//
// Files compiled into the binary:
//   - sql/*.sql: schema migrations, applied in lexical order.
//   - phrases.yaml: the built-in Hangman phrase bank.

package assets

import (
	"embed"
	"io/fs"
)

//go:embed sql/*.sql phrases.yaml
var FS embed.FS

// Migrations returns the migration files rooted at sql/.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// the embed pattern guarantees the directory exists
		panic(err)
	}
	return sub
}

// PhraseBank returns the raw YAML phrase bank.
func PhraseBank() ([]byte, error) {
	return FS.ReadFile("phrases.yaml")
}
