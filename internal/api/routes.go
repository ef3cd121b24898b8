package api

import "github.com/gofiber/fiber/v2"

func (s *Server) routes(app *fiber.App) {
	app.Get("/healthz", s.health)

	app.Get("/products", s.listProducts)
	app.Get("/search", s.search)
	app.Get("/suggest", s.suggest)

	cart := app.Group("/cart")
	cart.Get("", s.getCart)
	cart.Get("/count", s.cartCount)
	cart.Post("/items", s.addToCart)
	cart.Delete("/items/:index", s.removeFromCart)
	cart.Delete("/entries/:entryID", s.removeCartEntry)
	cart.Post("/checkout", s.checkout)

	wishlist := app.Group("/wishlist")
	wishlist.Get("", s.getWishlist)
	wishlist.Post("/items", s.addToWishlist)
	wishlist.Delete("/items/:index", s.removeFromWishlist)
	wishlist.Delete("/entries/:entryID", s.removeWishlistEntry)
	wishlist.Post("/items/:index/move", s.moveToCart)

	account := app.Group("/account")
	account.Get("", s.currentAccount)
	account.Post("/register", s.register)
	account.Post("/login", s.login)
	account.Post("/logout", s.logout)

	app.Get("/tools", s.listTools)
	app.Post("/tools/:name", s.invokeTool)
}
