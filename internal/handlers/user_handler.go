package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/courtsys/judiciary-backend/internal/dto"
	"github.com/courtsys/judiciary-backend/internal/middleware"
	"github.com/courtsys/judiciary-backend/internal/models"
	"github.com/courtsys/judiciary-backend/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	role := models.Role(c.Query("role"))
	search := c.Query("search")

	users, err := h.userService.List(role, search)
	if err != nil {
		return respondError(c, err)
	}
	return dto.List(c, users, len(users))
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.userService.Get(p, id)
	if err != nil {
		return respondError(c, err)
	}
	return dto.OK(c, user)
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.userService.Create(p, &req)
	if err != nil {
		return respondError(c, err)
	}
	return dto.Created(c, "User created successfully", user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.userService.Update(id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return dto.OKMessage(c, "User updated successfully", user)
}

func (h *UserHandler) ResetPassword(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.userService.ResetPassword(id, &req); err != nil {
		return respondError(c, err)
	}
	return dto.OKMessage(c, "Password reset successfully", nil)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	if err := h.userService.Delete(p, id); err != nil {
		return respondError(c, err)
	}
	return dto.OKMessage(c, "User deleted successfully", nil)
}

func (h *UserHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.userService.Stats()
	if err != nil {
		return respondError(c, err)
	}
	return dto.OK(c, stats)
}
