// Package web holds the embedded single-page UI served at /.
package web

import "embed"

//go:embed index.html
var FS embed.FS
