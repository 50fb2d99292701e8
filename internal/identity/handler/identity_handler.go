package handler

import (
	"fmt"
	"log/slog"

	autherror "github.com/abdulhaleem7/identity-credential-service/internal/errors"
	"github.com/abdulhaleem7/identity-credential-service/internal/identity/dto"
	"github.com/abdulhaleem7/identity-credential-service/internal/identity/service"
	"github.com/abdulhaleem7/identity-credential-service/pkg/response"
	"github.com/gofiber/fiber/v2"
)

type IdentityHandler struct {
	userService *service.UserService
	log         *slog.Logger
}

func NewIdentityHandler(userService *service.UserService, log *slog.Logger) *IdentityHandler {
	return &IdentityHandler{userService: userService, log: log}
}

// Register creates a new user account. The password is hashed before the
// record is stored.
func (h *IdentityHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.BadRequest("Invalid request body."))
	}

	h.log.Info("user registration attempt", "email", input.Email)

	id, err := h.userService.CreateUser(c.Context(), input)
	if err != nil {
		if autherror.IsClientError(err) {
			h.log.Warn("user registration rejected", "email", input.Email, "reason", err.Error())
			return c.Status(fiber.StatusBadRequest).JSON(response.BadRequest(err.Error()))
		}

		h.log.Error("user registration failed", "email", input.Email, "error", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(response.InternalServerError(fmt.Sprintf("Failed to create user: %v", err)))
	}

	h.log.Info("user registered", "user_id", id)

	return c.JSON(response.Ok(dto.RegisterOutput{ID: id}, "User created successfully."))
}

// IssueCredential exchanges a valid email/password pair for a signed
// access token and an opaque refresh token.
func (h *IdentityHandler) IssueCredential(c *fiber.Ctx) error {
	var input dto.IssueCredentialInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.BadRequest("Invalid request body."))
	}

	h.log.Info("credential issuance attempt", "email", input.Email)

	credential, err := h.userService.IssueCredential(c.Context(), input)
	if err != nil {
		if autherror.IsClientError(err) {
			h.log.Warn("credential issuance rejected", "email", input.Email, "reason", err.Error())
			return c.Status(fiber.StatusBadRequest).JSON(response.BadRequest(err.Error()))
		}

		h.log.Error("credential issuance failed", "email", input.Email, "error", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(response.InternalServerError(fmt.Sprintf("Failed to issue credential: %v", err)))
	}

	h.log.Info("credential issued", "email", input.Email)

	return c.JSON(response.Ok(credential, "Credential issued successfully."))
}
