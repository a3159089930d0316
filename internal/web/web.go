// Package web holds the server-rendered views.
package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates parses every view with the helper functions they use.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"date":     formatDate,
		"contains": contains,
	}).ParseFS(templateFS, "templates/*.tmpl")
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func contains(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
