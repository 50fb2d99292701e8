package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *IdentityHandler) {
	identity := app.Group("/identity")
	identity.Post("/register", h.Register)
	identity.Post("/issue-credential", h.IssueCredential)
}
