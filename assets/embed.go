// Package assets embeds the shipped dictionary and the SQLite migrations.
package assets

import (
	"bufio"
	"embed"
	"io"
	"io/fs"
	"strings"
)

//go:embed words.txt
var wordsFile string

//go:embed sql/*.sql
var migrations embed.FS

// ReadLines returns the non-empty, non-comment lines of r, trimmed and
// uppercased.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToUpper(s))
	}
	return out, sc.Err()
}

// WordList returns the embedded dictionary lines.
func WordList() ([]string, error) {
	return ReadLines(strings.NewReader(wordsFile))
}

// Migrations exposes the embedded sql/*.sql files rooted at "sql".
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "sql")
	if err != nil {
		// fs.Sub only fails on an invalid path, and "sql" is a constant.
		panic(err)
	}
	return sub
}
