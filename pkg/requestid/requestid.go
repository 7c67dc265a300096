// Package requestid propaga el id de la petición entrante hacia las llamadas salientes.
package requestid

import "context"

// Header cabecera con la que viaja el id de petición.
const Header = "X-Request-ID"

type key struct{}

// WithID devuelve un contexto que lleva el id de petición.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, key{}, id)
}

// FromContext id de petición del contexto, o "" si no hay.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(key{}).(string)
	return id
}
