// Package templates holds the HTML pages shipped inside the binary.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
