// Package web embeds the single-page client so the server ships as one binary.
package web

import "embed"

//go:embed static
var StaticFS embed.FS
