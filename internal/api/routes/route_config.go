package routes

import (
	"Cucina-Backend/internal/api/handlers"
	"Cucina-Backend/internal/middleware"
	"Cucina-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	IngredientHandler handlers.IngredientHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Ingredients()
	c.GuestRoute()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group(
		"/api/v1/ingredients",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.AdminMiddleware(),
	)

	// Basic CRUD operations
	ingredients.Post("", c.IngredientHandler.AddIngredient)
	ingredients.Get("", c.IngredientHandler.GetIngredients)
	ingredients.Get("/:id", c.IngredientHandler.GetIngredientDetails)
	ingredients.Put("/:id", c.IngredientHandler.UpdateIngredient)
	ingredients.Delete("/:id", c.IngredientHandler.DeleteIngredient)
	ingredients.Get("/:id/prices", c.IngredientHandler.GetPriceHistory)

	// Two-phase bulk import
	ingredients.Post("/import/preview", c.IngredientHandler.PreviewImport)
	ingredients.Get("/import/:batchId", c.IngredientHandler.GetImportPreview)
	ingredients.Post("/import/:batchId/resolve", c.IngredientHandler.ResolveImportItem)
	ingredients.Post("/import/:batchId/commit", c.IngredientHandler.CommitImport)
}
