package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Mayur79/ecommercebackend/controller"
	"github.com/Mayur79/ecommercebackend/middleware"
	"github.com/Mayur79/ecommercebackend/model"
)

func RegisterCategoryRoutes(app *fiber.App, cc *controller.CategoryController, auth fiber.Handler) {
	cat := app.Group("/api/v1/category")
	admin := middleware.RoleRequired(model.RoleAdmin)

	cat.Post("/create-category", auth, admin, cc.Create)
	cat.Put("/update-category/:id", auth, admin, cc.Update)
	cat.Delete("/delete-category/:id", auth, admin, cc.Delete)

	cat.Get("/get-category", cc.List)
	cat.Get("/single-category/:slug", cc.GetBySlug)
}
