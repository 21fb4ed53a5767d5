package config

import (
	"Cucina-Backend/internal/api/handlers"
	"Cucina-Backend/internal/api/routes"
	"Cucina-Backend/internal/middleware"
	"Cucina-Backend/internal/utils"
	"Cucina-Backend/internal/utils/storage"
	"Cucina-Backend/pkg/ingredient"
	"Cucina-Backend/pkg/jwt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Europe/Rome",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	ingredientRepository := ingredient.NewIngredientRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	ingredientService := ingredient.NewIngredientService(ingredientRepository)
	importService := ingredient.NewImportService(ingredientRepository, s3)

	// Handler
	ingredientHandler := handlers.NewIngredientHandler(
		ingredientService,
		importService,
		validator,
	)

	// routes
	routesConfig := routes.Config{
		App:               app,
		IngredientHandler: ingredientHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
