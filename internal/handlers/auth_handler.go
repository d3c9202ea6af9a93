package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-reviewer/internal/models"
	"alfredoptarigan/resume-reviewer/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// HandleSignup handles POST /signup
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req models.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "All fields are required")
	}

	if err := h.authService.Signup(c.UserContext(), req); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(models.MessageResponse{Message: "Signup successful"})
}

// HandleLogin handles POST /login
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	token, err := h.authService.Login(c.UserContext(), req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(models.LoginResponse{AccessToken: token})
}
