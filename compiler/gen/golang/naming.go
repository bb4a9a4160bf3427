package golang

import (
	"go/token"
	"strings"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	titleCaser = cases.Title(language.English, cases.NoLower)
	acronyms   = map[string]string{
		"id":   "ID",
		"ids":  "IDs",
		"url":  "URL",
		"uri":  "URI",
		"http": "HTTP",
		"json": "JSON",
		"api":  "API",
		"uuid": "UUID",
		"ip":   "IP",
	}
)

func words(name string) []string {
	var out []string
	for _, w := range strings.Split(inflect.Underscore(name), "_") {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// Exported returns the exported Go identifier of a schema name.
func Exported(name string) string {
	var b strings.Builder
	for _, w := range words(name) {
		if a, ok := acronyms[w]; ok {
			b.WriteString(a)
			continue
		}
		b.WriteString(titleCaser.String(w))
	}
	return b.String()
}

// Unexported returns the unexported Go identifier of a schema name. Go
// keywords get a trailing underscore.
func Unexported(name string) string {
	ws := words(name)
	if len(ws) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(ws[0]))
	for _, w := range ws[1:] {
		if a, ok := acronyms[w]; ok {
			b.WriteString(a)
			continue
		}
		b.WriteString(titleCaser.String(w))
	}
	s := b.String()
	if token.IsKeyword(s) {
		s += "_"
	}
	return s
}

// FileName returns the file a structure renders to.
func FileName(name string) string {
	return inflect.Underscore(name) + ".go"
}
