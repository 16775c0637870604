package web

import "embed"

// Templates holds the server-rendered search page.
//
//go:embed templates/*.html
var Templates embed.FS

// Static holds stylesheets served under /static/.
//
//go:embed static
var Static embed.FS
