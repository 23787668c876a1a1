package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/courtsys/judiciary-backend/internal/dto"
	"github.com/courtsys/judiciary-backend/internal/middleware"
	"github.com/courtsys/judiciary-backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		return respondError(c, err)
	}
	return dto.OKMessage(c, "Login successful", resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.authService.Refresh(&req)
	if err != nil {
		return respondError(c, err)
	}
	return dto.OK(c, resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.authService.Logout(&req); err != nil {
		return respondError(c, err)
	}
	return dto.OKMessage(c, "Logged out", nil)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	user, err := h.authService.Me(p.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return dto.OK(c, dto.NewUserResponse(user))
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.authService.ChangePassword(p.UserID, &req); err != nil {
		return respondError(c, err)
	}
	return dto.OKMessage(c, "Password changed", nil)
}
