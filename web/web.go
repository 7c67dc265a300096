// Package web contiene las plantillas y recursos estáticos embebidos en el binario.
package web

import "embed"

// FS plantillas (templates/) y estáticos (static/).
//
//go:embed templates static
var FS embed.FS
