package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
)

type Handlers struct {
	Users      *UserHandler
	Products   *ProductHandler
	Variants   *VariantHandler
	Brands     *BrandHandler
	Categories *CategoryHandler
	Reviews    *ReviewHandler
	Sections   *SectionHandler
	Carts      *CartHandler
	Orders     *OrderHandler
	Stats      *StatsHandler
}

// Register wires every route. Catalog reads are public, carts and
// checkout accept guests, catalog writes and stats are admin only.
func Register(e *echo.Echo, h Handlers, jwtSecret string) {
	auth := RequireJWT(jwtSecret)
	optionalAuth := OptionalJWT(jwtSecret)
	admin := RequireRoles(entity.RoleAdmin, entity.RoleSuperAdmin)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	e.POST("/users/register", h.Users.Register)
	e.POST("/users/login", h.Users.Login)
	e.POST("/users/logout", h.Users.Logout, auth)
	e.GET("/users/me", h.Users.Me, auth)
	e.GET("/users", h.Users.List, auth, admin)
	e.GET("/users/:id", h.Users.GetByID, auth, admin)

	e.GET("/products", h.Products.List)
	e.GET("/products/best-sellers", h.Products.BestSellers)
	e.GET("/products/slug/:slug", h.Products.GetBySlug)
	e.GET("/products/:id", h.Products.GetByID)
	e.GET("/products/:id/reviews", h.Products.Reviews)
	e.POST("/products", h.Products.Create, auth, admin)
	e.PUT("/products/:id", h.Products.Update, auth, admin)
	e.DELETE("/products/:id", h.Products.Delete, auth, admin)

	e.GET("/variants", h.Variants.List)
	e.GET("/variants/low-stock", h.Variants.LowStock, auth, admin)
	e.GET("/variants/:id", h.Variants.GetByID)
	e.POST("/variants", h.Variants.Create, auth, admin)
	e.PUT("/variants/:id", h.Variants.Update, auth, admin)
	e.DELETE("/variants/:id", h.Variants.Delete, auth, admin)

	e.GET("/brands", h.Brands.List)
	e.GET("/brands/slug/:slug", h.Brands.GetBySlug)
	e.GET("/brands/slug/:slug/products", h.Products.ListByBrand)
	e.GET("/brands/:id", h.Brands.GetByID)
	e.POST("/brands", h.Brands.Create, auth, admin)
	e.PUT("/brands/:id", h.Brands.Update, auth, admin)
	e.DELETE("/brands/:id", h.Brands.Delete, auth, admin)

	e.GET("/categories", h.Categories.List)
	e.GET("/categories/slug/:slug", h.Categories.GetBySlug)
	e.GET("/categories/slug/:slug/products", h.Products.ListByCategory)
	e.GET("/categories/:id", h.Categories.GetByID)
	e.POST("/categories", h.Categories.Create, auth, admin)
	e.PUT("/categories/:id", h.Categories.Update, auth, admin)
	e.DELETE("/categories/:id", h.Categories.Delete, auth, admin)

	e.GET("/reviews", h.Reviews.List)
	e.POST("/reviews", h.Reviews.Create, auth)
	e.PUT("/reviews/:id", h.Reviews.Update, auth)
	e.DELETE("/reviews/:id", h.Reviews.Delete, auth)

	e.GET("/sections", h.Sections.List)
	e.GET("/sections/:id", h.Sections.GetByID)
	e.POST("/sections", h.Sections.Create, auth, admin)
	e.PUT("/sections/:id", h.Sections.Update, auth, admin)
	e.DELETE("/sections/:id", h.Sections.Delete, auth, admin)

	e.GET("/cart", h.Carts.Get, optionalAuth)
	e.POST("/cart/items", h.Carts.AddItem, optionalAuth)
	e.PUT("/cart/items/:variantId", h.Carts.UpdateItem, optionalAuth)
	e.DELETE("/cart/items/:variantId", h.Carts.RemoveItem, optionalAuth)

	e.POST("/orders/checkout", h.Orders.Checkout, optionalAuth)
	e.GET("/orders/my", h.Orders.ListMine, optionalAuth)
	e.GET("/orders", h.Orders.List, auth, admin)
	e.GET("/orders/:id", h.Orders.GetByID, optionalAuth)
	e.PATCH("/orders/:id/status", h.Orders.UpdateStatus, auth, admin)
	e.POST("/orders/:id/cancel", h.Orders.Cancel, optionalAuth)
	e.DELETE("/orders/:id", h.Orders.Delete, auth)

	e.GET("/stats/orders", h.Stats.Orders, auth, admin)
	e.GET("/stats/users", h.Stats.Users, auth, admin)
}
