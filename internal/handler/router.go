package handler

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes wires the HTTP surface. Auth endpoints are public; everything
// else sits behind the auth middleware, with per-action authorization decided
// by the policy package inside the services.
func SetupRoutes(app *fiber.App, authMW fiber.Handler, authH *AuthHandler, userH *UserHandler, absenceH *AbsenceHandler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authH.Register)
	auth.Post("/login", authH.Login)

	absences := api.Group("/absences", authMW)
	absences.Get("/", absenceH.List)
	absences.Get("/my-reports", absenceH.MyReports)
	absences.Get("/stats", absenceH.Stats)
	absences.Post("/", absenceH.Create)
	absences.Put("/:id", absenceH.Update)
	absences.Delete("/:id", absenceH.Delete)

	users := api.Group("/users", authMW)
	users.Get("/", userH.List)
	users.Post("/", userH.Create)
	users.Put("/:id", userH.Update)
	users.Delete("/:id", userH.Delete)
}
