package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Mayur79/ecommercebackend/controller"
	"github.com/Mayur79/ecommercebackend/middleware"
	"github.com/Mayur79/ecommercebackend/model"
)

func RegisterProductRoutes(app *fiber.App, pc *controller.ProductController, auth fiber.Handler) {
	p := app.Group("/api/v1/product")
	admin := middleware.RoleRequired(model.RoleAdmin)

	p.Post("/create-product", auth, admin, pc.Create)
	p.Put("/update-product/:pid", auth, admin, pc.Update)
	p.Delete("/delete-product/:pid", auth, admin, pc.Delete)

	p.Get("/get-product", pc.List)
	p.Get("/get-product/:slug", pc.GetBySlug)
	p.Get("/product-photo/:pid", pc.Photo)
	p.Post("/product-filters", pc.Filters)
	p.Get("/product-count", pc.Count)
	p.Get("/product-list/:page", pc.ListPage)
	p.Get("/search/:keyword", pc.Search)
	p.Get("/related-product/:pid/:cid", pc.Related)
	p.Get("/product-category/:slug", pc.ByCategory)

	p.Get("/braintree/token", pc.BraintreeToken)
	p.Post("/braintree/payment", auth, pc.BraintreePayment)
}
