package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	pkgrequestid "github.com/jhoicas/inventario-rapido/pkg/requestid"
)

const localRequestID = "requestid"

// RequestID asigna un id (uuid) a cada petición y lo deja en el contexto de usuario
// para que el cliente de la API de inventario lo propague.
func RequestID() []fiber.Handler {
	return []fiber.Handler{
		requestid.New(requestid.Config{
			Header:     pkgrequestid.Header,
			Generator:  uuid.NewString,
			ContextKey: localRequestID,
		}),
		func(c *fiber.Ctx) error {
			id, _ := c.Locals(localRequestID).(string)
			c.SetUserContext(pkgrequestid.WithID(c.UserContext(), id))
			return c.Next()
		},
	}
}
