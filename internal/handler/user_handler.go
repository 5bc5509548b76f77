package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"absence-tracker/internal/models"
	"absence-tracker/internal/service"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type UserRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=64"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin manager daily_reporter"`
	Group    string `json:"group"`
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	p, ok := PrincipalFrom(c)
	if !ok {
		return JsonError(c, fiber.StatusUnauthorized, "missing principal")
	}

	users, err := h.users.List(p)
	if err != nil {
		return jsonFromError(c, err)
	}
	return JsonOK(c, users)
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	p, ok := PrincipalFrom(c)
	if !ok {
		return JsonError(c, fiber.StatusUnauthorized, "missing principal")
	}

	var req UserRequest
	if err := c.BodyParser(&req); err != nil {
		return JsonError(c, fiber.StatusBadRequest, "invalid request format")
	}
	if err := validate.Struct(req); err != nil {
		return JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := h.users.Create(service.UserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.Role(req.Role),
		Group:    req.Group,
	}, p)
	if err != nil {
		return jsonFromError(c, err)
	}
	return JsonCreated(c, user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	p, ok := PrincipalFrom(c)
	if !ok {
		return JsonError(c, fiber.StatusUnauthorized, "missing principal")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return JsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var req UserRequest
	if err := c.BodyParser(&req); err != nil {
		return JsonError(c, fiber.StatusBadRequest, "invalid request format")
	}
	if err := validate.Struct(req); err != nil {
		return JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := h.users.Update(id, service.UserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.Role(req.Role),
		Group:    req.Group,
	}, p)
	if err != nil {
		return jsonFromError(c, err)
	}
	return JsonOK(c, user)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	p, ok := PrincipalFrom(c)
	if !ok {
		return JsonError(c, fiber.StatusUnauthorized, "missing principal")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return JsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	if err := h.users.Delete(id, p); err != nil {
		return jsonFromError(c, err)
	}
	return JsonOK(c, fiber.Map{"message": "user deleted successfully"})
}
