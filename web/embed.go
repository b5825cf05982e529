// Package web holds the page template and static assets of the expense
// tracker frontend, compiled into the binary.
package web

import "embed"

//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS holds app.js (print button, filter autosubmit) and style.css.
//
//go:embed static/*
var StaticFS embed.FS
