package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"absence-tracker/internal/models"
	"absence-tracker/internal/service"
)

var validate = validator.New()

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=manager daily_reporter"`
	Group    string `json:"group"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return JsonError(c, fiber.StatusBadRequest, "invalid request format")
	}
	if err := validate.Struct(req); err != nil {
		return JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	user, token, err := h.auth.Register(service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.Role(req.Role),
		Group:    req.Group,
	})
	if err != nil {
		return jsonFromError(c, err)
	}

	return JsonCreated(c, fiber.Map{"token": token, "user": user})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return JsonError(c, fiber.StatusBadRequest, "invalid request format")
	}
	if err := validate.Struct(req); err != nil {
		return JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	user, token, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		return jsonFromError(c, err)
	}

	return JsonOK(c, fiber.Map{"token": token, "user": user})
}
