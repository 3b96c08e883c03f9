package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Mayur79/ecommercebackend/controller"
	"github.com/Mayur79/ecommercebackend/middleware"
	"github.com/Mayur79/ecommercebackend/model"
)

func RegisterAuthRoutes(app *fiber.App, ac *controller.AuthController, auth fiber.Handler) {
	a := app.Group("/api/v1/auth")
	admin := middleware.RoleRequired(model.RoleAdmin)

	a.Post("/register", ac.Register)
	a.Post("/login", ac.Login)
	a.Post("/forgot-password", ac.ForgotPassword)

	// probe routes for the client's route guards
	a.Get("/user-auth", auth, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	a.Get("/admin-auth", auth, admin, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	a.Put("/profile", auth, ac.UpdateProfile)
	a.Get("/orders", auth, ac.Orders)
	a.Get("/all-orders", auth, admin, ac.AllOrders)
	a.Put("/order-status/:orderId", auth, admin, ac.OrderStatus)
}
