// Package web holds the templates and static assets of the website, embedded in the binary.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS

//go:embed static
var Static embed.FS

//go:embed help/*.html
var Help embed.FS
