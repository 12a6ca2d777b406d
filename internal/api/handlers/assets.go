package handlers

import (
	"embed"
	"html/template"
	"io/fs"

	"github.com/Ayash-Bera/highlights/internal/chat"
)

//go:embed templates/*.tmpl static/*
var assets embed.FS

// Templates parses the page templates with their helper functions.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"seconds": chat.Seconds,
	}).ParseFS(assets, "templates/*.tmpl"))
}

// Static is the stylesheet and script served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
